package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new repository for dashboard counts.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// CountListingsByStatus counts listings per moderation status, scoped to one
// publisher when publisherID is non-empty. Statuses with no listings are
// reported as zero so dashboards always show all three buckets.
func (r *PgxReportingRepository) CountListingsByStatus(ctx context.Context, publisherID string) (map[domain.ListingStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM listings`
	var args []any
	if publisherID != "" {
		query += ` WHERE publisher_id = $1`
		args = append(args, publisherID)
	}
	query += ` GROUP BY status;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count listings by status: %w", err)
	}
	defer rows.Close()

	counts := map[domain.ListingStatus]int{
		domain.StatusPending:  0,
		domain.StatusApproved: 0,
		domain.StatusRejected: 0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count row: %w", err)
		}
		counts[domain.ListingStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status count rows: %w", err)
	}
	return counts, nil
}

// CountListingsByType counts all listings per listing type.
func (r *PgxReportingRepository) CountListingsByType(ctx context.Context) (map[domain.ListingType]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT listing_type, COUNT(*) FROM listings GROUP BY listing_type;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count listings by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ListingType]int, len(domain.ListingTypes))
	for _, t := range domain.ListingTypes {
		counts[t] = 0
	}
	for rows.Next() {
		var listingType string
		var count int
		if err := rows.Scan(&listingType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan type count row: %w", err)
		}
		counts[domain.ListingType(listingType)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate type count rows: %w", err)
	}
	return counts, nil
}

// CountPublishers counts all publisher profiles.
func (r *PgxReportingRepository) CountPublishers(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM publishers;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count publishers: %w", err)
	}
	return count, nil
}

// CountActiveSubscriptions counts publishers whose subscription is unexpired
// and not suspended at the given instant. The check runs against the source
// fields, not the cached status column.
func (r *PgxReportingRepository) CountActiveSubscriptions(ctx context.Context, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM publishers
		WHERE suspended = FALSE AND subscription_expiry IS NOT NULL AND subscription_expiry > $1;
	`
	var count int
	if err := r.pool.QueryRow(ctx, query, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	return count, nil
}
