package dto

import (
	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

// CreateListingRequest is the publisher's submission of a new listing. Any
// status field smuggled into the payload is rejected by descriptor
// validation; the persisted status is always pending.
type CreateListingRequest struct {
	TypeTag domain.ListingType `json:"typeTag" binding:"required"`
	Payload map[string]any     `json:"payload" binding:"required"`
}

// UpdateListingRequest replaces a listing's payload. Updating an already
// decided listing resubmits it for review.
type UpdateListingRequest struct {
	Payload map[string]any `json:"payload" binding:"required"`
}

// RejectListingRequest carries the mandatory rejection reason.
type RejectListingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SetActiveRequest flips the owner's visibility toggle.
type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// ListListingsParams are the query parameters of the listing list endpoints.
type ListListingsParams struct {
	Status   string `form:"status"`
	TypeTag  string `form:"typeTag"`
	Query    string `form:"q"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
	Sort     string `form:"sort,default=newest"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
}

// PublisherSummary is the publisher detail embedded in a listing response.
type PublisherSummary struct {
	PublisherID  string `json:"publisherID"`
	CompanyName  string `json:"companyName"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

// ListingDetail is a single listing with its publisher details populated.
type ListingDetail struct {
	domain.Listing
	Publisher PublisherSummary `json:"publisher"`
}
