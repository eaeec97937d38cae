package repositories

import (
	"context"
	"time"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

// ReportingRepository serves the read-only counts behind the admin and
// publisher dashboards.
type ReportingRepository interface {
	// CountListingsByStatus counts listings per moderation status, scoped to
	// one publisher when publisherID is non-empty.
	CountListingsByStatus(ctx context.Context, publisherID string) (map[domain.ListingStatus]int, error)

	// CountListingsByType counts all listings per listing type.
	CountListingsByType(ctx context.Context) (map[domain.ListingType]int, error)

	// CountPublishers counts all publisher profiles.
	CountPublishers(ctx context.Context) (int, error)

	// CountActiveSubscriptions counts publishers whose subscription is
	// unexpired and not suspended at the given instant.
	CountActiveSubscriptions(ctx context.Context, now time.Time) (int, error)
}
