package repositories

import (
	"context"
	"time"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// ListingSort orders listing results by creation time.
type ListingSort string

const (
	SortNewest ListingSort = "newest"
	SortOldest ListingSort = "oldest"
)

// ListingFilter narrows a listing query. Zero values mean "no constraint";
// an empty PublisherID is the admin scope (all publishers).
type ListingFilter struct {
	PublisherID string
	Status      *domain.ListingStatus
	Type        *domain.ListingType
	Query       string // case-insensitive substring over title/location/description
	DateFrom    *time.Time
	DateTo      *time.Time
	Sort        ListingSort
}

// ListingReader defines read operations for listings.
type ListingReader interface {
	// FindListingByID retrieves a single listing or apperrors.ErrNotFound.
	FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error)

	// FindListings retrieves one page of listings matching the filter plus
	// the total match count.
	FindListings(ctx context.Context, filter ListingFilter, params pagination.Params) ([]domain.Listing, int, error)
}

// ListingWriter defines write operations for listings.
type ListingWriter interface {
	// SaveListing persists a new listing.
	SaveListing(ctx context.Context, listing domain.Listing) error

	// UpdateListing replaces the mutable fields of an existing listing.
	UpdateListing(ctx context.Context, listing domain.Listing) error

	// TransitionStatus atomically moves a pending listing to the given
	// status, persisting status, rejection reason and audit fields together.
	// The UPDATE is guarded on the current status still being pending, so a
	// concurrent decision surfaces as apperrors.ErrInvalidTransition.
	TransitionStatus(ctx context.Context, listing domain.Listing) error

	// SetListingActive flips the owner's visibility toggle.
	SetListingActive(ctx context.Context, listingID string, isActive bool, updatedAt time.Time, updatedBy string) error

	// DeleteListing permanently removes a listing, apperrors.ErrNotFound if absent.
	DeleteListing(ctx context.Context, listingID string) error
}

// ListingRepositoryFacade combines all listing repository interfaces.
type ListingRepositoryFacade interface {
	ListingReader
	ListingWriter
}
