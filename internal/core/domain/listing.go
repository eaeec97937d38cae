package domain

import (
	"strings"

	"github.com/unlockhq/unlock-backend/internal/apperrors"
)

// ListingType identifies which of the six listing variants a listing is.
// The type determines the required payload fields, see fields.go.
type ListingType string

const (
	ListingTypeEvent           ListingType = "event"
	ListingTypeJob             ListingType = "job"
	ListingTypeFunding         ListingType = "funding"
	ListingTypeInvestorProgram ListingType = "investorProgram"
	ListingTypeCompetition     ListingType = "competition"
	ListingTypeWorkshop        ListingType = "workshop"
)

// ListingTypes lists every known listing type, in display order.
var ListingTypes = []ListingType{
	ListingTypeEvent,
	ListingTypeJob,
	ListingTypeFunding,
	ListingTypeInvestorProgram,
	ListingTypeCompetition,
	ListingTypeWorkshop,
}

// IsValid reports whether the type is one of the six known listing types.
func (t ListingType) IsValid() bool {
	for _, known := range ListingTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ListingStatus is the moderation status of a listing.
type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
)

// Listing is the shared envelope for all six listing types. Type-specific
// fields live in Payload and are validated against the type's field
// descriptors before persisting.
type Listing struct {
	ListingID       string         `json:"listingID"`
	PublisherID     string         `json:"publisherID"` // immutable after creation
	Type            ListingType    `json:"type"`
	Status          ListingStatus  `json:"status"`
	RejectionReason string         `json:"rejectionReason,omitempty"` // set only while Status is rejected
	IsActive        bool           `json:"isActive"`                  // owner visibility toggle, independent of Status
	Payload         map[string]any `json:"payload"`
	AuditFields
}

// Approve transitions a pending listing to approved and clears any stale
// rejection reason. Any other current status is an invalid transition.
func (l *Listing) Approve() error {
	if l.Status != StatusPending {
		return apperrors.ErrInvalidTransition
	}
	l.Status = StatusApproved
	l.RejectionReason = ""
	return nil
}

// Reject transitions a pending listing to rejected, recording the reason.
// A blank reason fails validation before any state change.
func (l *Listing) Reject(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewValidationError(apperrors.FieldError{
			Field:   "reason",
			Message: "rejection reason must not be blank",
		})
	}
	if l.Status != StatusPending {
		return apperrors.ErrInvalidTransition
	}
	l.Status = StatusRejected
	l.RejectionReason = reason
	return nil
}

// Resubmit returns an edited listing to the review queue. Editing a
// previously approved or rejected listing is treated as a resubmission, so
// the status resets to pending and the old rejection reason is cleared.
// Returns true when the status actually changed.
func (l *Listing) Resubmit() bool {
	if l.Status == StatusPending {
		return false
	}
	l.Status = StatusPending
	l.RejectionReason = ""
	return true
}
