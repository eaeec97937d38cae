package dto

import (
	"time"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

// CreatePublisherRequest is the organization half of publisher registration.
type CreatePublisherRequest struct {
	CompanyName      string `json:"companyName" binding:"required"`
	OrganizationType string `json:"organizationType" binding:"required"`
	PublisherTypeID  string `json:"publisherTypeID" binding:"required"`
}

// UpdatePublisherRequest updates a publisher's own profile. Pointers
// differentiate omitted fields from zero values.
type UpdatePublisherRequest struct {
	CompanyName      *string `json:"companyName"`
	OrganizationType *string `json:"organizationType"`
	PublisherTypeID  *string `json:"publisherTypeID"`
}

// ExtendSubscriptionRequest carries exactly one of the three extension
// modes; providing none or more than one fails validation.
type ExtendSubscriptionRequest struct {
	Months    *int    `json:"months"`    // add to max(now, current expiry)
	Days      *int    `json:"days"`      // add to max(now, current expiry)
	SetExpiry *string `json:"setExpiry"` // RFC3339 or YYYY-MM-DD, overwrites outright
}

// SetSuspendedRequest toggles the administrative suspension override.
type SetSuspendedRequest struct {
	Suspended bool `json:"suspended"`
}

// SetServicePlanRequest toggles the yearly add-on entitlement.
type SetServicePlanRequest struct {
	Active bool `json:"active"`
}

// SetBlockedRequest toggles the administrative hard lock.
type SetBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

// ListPublishersParams are the query parameters of the admin publisher list.
type ListPublishersParams struct {
	Query string `form:"q"`
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
}

// PublisherResponse is a publisher profile plus the entitlement computed
// from its stored fields at response time.
type PublisherResponse struct {
	PublisherID        string             `json:"publisherID"`
	UserID             string             `json:"userID"`
	CompanyName        string             `json:"companyName"`
	OrganizationType   string             `json:"organizationType"`
	PublisherTypeID    string             `json:"publisherTypeID"`
	SubscriptionExpiry *time.Time         `json:"subscriptionExpiry,omitempty"`
	Suspended          bool               `json:"suspended"`
	ServicePlanActive  bool               `json:"servicePlanActive"`
	Blocked            bool               `json:"blocked"`
	Entitlement        domain.Entitlement `json:"entitlement"`
}

// ToPublisherResponse builds the response DTO, computing the entitlement at
// the given instant.
func ToPublisherResponse(p domain.Publisher, now time.Time) PublisherResponse {
	return PublisherResponse{
		PublisherID:        p.PublisherID,
		UserID:             p.UserID,
		CompanyName:        p.CompanyName,
		OrganizationType:   p.OrganizationType,
		PublisherTypeID:    p.PublisherTypeID,
		SubscriptionExpiry: p.SubscriptionExpiry,
		Suspended:          p.Suspended,
		ServicePlanActive:  p.ServicePlanActive,
		Blocked:            p.Blocked,
		Entitlement:        domain.ComputeEntitlement(p, now),
	}
}
