package domain

import (
	"math"
	"time"
)

// Publisher is a publishing organization owned by a user account.
// SubscriptionExpiry and Suspended are the source of truth for the
// publisher's entitlement; the persisted subscription status column is only
// a cache and must never be read directly, see ComputeEntitlement.
type Publisher struct {
	PublisherID       string     `json:"publisherID"`
	UserID            string     `json:"userID"`
	CompanyName       string     `json:"companyName"`
	OrganizationType  string     `json:"organizationType"`
	PublisherTypeID   string     `json:"publisherTypeID"` // taxonomy reference
	SubscriptionExpiry *time.Time `json:"subscriptionExpiry,omitempty"`
	Suspended         bool       `json:"suspended"` // administrative override, beats an unexpired date
	ServicePlanActive bool       `json:"servicePlanActive"`
	Blocked           bool       `json:"blocked"` // hard lock, distinct from suspension
	AuditFields
}

// EntitlementState is the computed subscription state of a publisher.
type EntitlementState string

const (
	EntitlementActive    EntitlementState = "active"
	EntitlementExpired   EntitlementState = "expired"
	EntitlementSuspended EntitlementState = "suspended"
)

// Entitlement is the publisher's current subscription state plus days
// remaining. DaysLeft is never negative.
type Entitlement struct {
	State    EntitlementState `json:"state"`
	DaysLeft int              `json:"daysLeft"`
}

// ComputeEntitlement derives a publisher's entitlement from its stored
// fields at the given instant. It is a pure function: identical inputs
// always yield identical results. Every subscription-gated read path must
// consult this instead of any cached status column.
func ComputeEntitlement(p Publisher, now time.Time) Entitlement {
	if p.Suspended {
		return Entitlement{State: EntitlementSuspended, DaysLeft: 0}
	}
	if p.SubscriptionExpiry == nil {
		return Entitlement{State: EntitlementExpired, DaysLeft: 0}
	}
	daysLeft := int(math.Ceil(p.SubscriptionExpiry.Sub(now).Hours() / 24))
	if daysLeft <= 0 {
		return Entitlement{State: EntitlementExpired, DaysLeft: 0}
	}
	return Entitlement{State: EntitlementActive, DaysLeft: daysLeft}
}

// ExtensionBase picks the date a months/days extension adds to. Extending
// from the stored expiry would under-credit a publisher whose subscription
// lapsed long ago, so a lapsed or missing expiry extends from now instead.
func ExtensionBase(now time.Time, current *time.Time) time.Time {
	if current != nil && current.After(now) {
		return *current
	}
	return now
}
