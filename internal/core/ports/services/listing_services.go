package services

import (
	"context"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// ListingReaderSvc defines read operations over listings. Scoping is the
// caller's: publisher endpoints pass their own publisher ID in the filter,
// admin endpoints leave it empty.
type ListingReaderSvc interface {
	// GetListingByID retrieves a listing with its publisher details populated.
	GetListingByID(ctx context.Context, listingID string) (*dto.ListingDetail, error)

	// ListListings retrieves one page of listings matching the filter.
	ListListings(ctx context.Context, filter portsrepo.ListingFilter, params pagination.Params) (pagination.Page[domain.Listing], error)
}

// ListingWriterSvc defines publisher-side listing mutations.
type ListingWriterSvc interface {
	// CreateListing creates a listing for the publisher. The persisted status
	// is always pending regardless of caller input.
	CreateListing(ctx context.Context, publisherID string, typeTag domain.ListingType, payload map[string]any, actorID string) (*domain.Listing, error)

	// UpdateListing replaces the payload of a listing owned by publisherID.
	// Editing an approved or rejected listing resubmits it (status resets to
	// pending, rejection reason cleared).
	UpdateListing(ctx context.Context, listingID string, publisherID string, payload map[string]any, actorID string) (*domain.Listing, error)

	// SetListingActive flips the visibility toggle of a listing owned by
	// publisherID. Allowed regardless of moderation status.
	SetListingActive(ctx context.Context, listingID string, publisherID string, isActive bool, actorID string) error

	// DeleteListing permanently removes a listing owned by publisherID.
	DeleteListing(ctx context.Context, listingID string, publisherID string) error
}

// ListingModerationSvc defines the admin decision operations.
type ListingModerationSvc interface {
	// ApproveListing approves a pending listing and clears any rejection
	// reason. A non-pending listing fails with apperrors.ErrInvalidTransition.
	ApproveListing(ctx context.Context, listingID string, actorID string) (*domain.Listing, error)

	// RejectListing rejects a pending listing with a non-blank reason.
	RejectListing(ctx context.Context, listingID string, reason string, actorID string) (*domain.Listing, error)
}

// ListingSvcFacade combines all listing service interfaces.
type ListingSvcFacade interface {
	ListingReaderSvc
	ListingWriterSvc
	ListingModerationSvc
}
