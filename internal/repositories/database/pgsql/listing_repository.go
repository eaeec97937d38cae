package pgsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	"github.com/unlockhq/unlock-backend/internal/models"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

type PgxListingRepository struct {
	pool *pgxpool.Pool
}

// newPgxListingRepository creates a new repository for listing data.
func newPgxListingRepository(pool *pgxpool.Pool) portsrepo.ListingRepositoryFacade {
	return &PgxListingRepository{pool: pool}
}

// Ensure PgxListingRepository implements portsrepo.ListingRepositoryFacade
var _ portsrepo.ListingRepositoryFacade = (*PgxListingRepository)(nil)

// Helper to convert domain.Listing to models.Listing for DB storage
func toModelListing(d domain.Listing) (models.Listing, error) {
	payload, err := json.Marshal(d.Payload)
	if err != nil {
		return models.Listing{}, fmt.Errorf("failed to marshal listing payload: %w", err)
	}
	var reason sql.NullString
	if d.RejectionReason != "" {
		reason = sql.NullString{String: d.RejectionReason, Valid: true}
	}
	return models.Listing{
		ListingID:       d.ListingID,
		PublisherID:     d.PublisherID,
		ListingType:     string(d.Type),
		Status:          string(d.Status),
		RejectionReason: reason,
		IsActive:        d.IsActive,
		Payload:         payload,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

// Helper to convert models.Listing from DB to domain.Listing
func toDomainListing(m models.Listing) (domain.Listing, error) {
	var payload map[string]any
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			return domain.Listing{}, fmt.Errorf("failed to unmarshal listing payload: %w", err)
		}
	}
	return domain.Listing{
		ListingID:       m.ListingID,
		PublisherID:     m.PublisherID,
		Type:            domain.ListingType(m.ListingType),
		Status:          domain.ListingStatus(m.Status),
		RejectionReason: m.RejectionReason.String,
		IsActive:        m.IsActive,
		Payload:         payload,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

const listingColumns = `listing_id, publisher_id, listing_type, status, rejection_reason, is_active, payload, created_at, created_by, last_updated_at, last_updated_by`

func scanListing(row pgx.Row) (domain.Listing, error) {
	var m models.Listing
	err := row.Scan(
		&m.ListingID,
		&m.PublisherID,
		&m.ListingType,
		&m.Status,
		&m.RejectionReason,
		&m.IsActive,
		&m.Payload,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Listing{}, err
	}
	return toDomainListing(m)
}

// SaveListing inserts a new listing.
func (r *PgxListingRepository) SaveListing(ctx context.Context, listing domain.Listing) error {
	m, err := toModelListing(listing)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = r.pool.Exec(ctx, query,
		m.ListingID,
		m.PublisherID,
		m.ListingType,
		m.Status,
		m.RejectionReason,
		m.IsActive,
		m.Payload,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: listing with ID %s already exists", apperrors.ErrDuplicate, m.ListingID)
		}
		return fmt.Errorf("failed to save listing %s: %w", m.ListingID, err)
	}
	return nil
}

// FindListingByID retrieves a listing by its ID.
func (r *PgxListingRepository) FindListingByID(ctx context.Context, listingID string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE listing_id = $1;`

	listing, err := scanListing(r.pool.QueryRow(ctx, query, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find listing by ID %s: %w", listingID, err)
	}
	return &listing, nil
}

// FindListings retrieves one page of listings matching the filter plus the
// total match count.
func (r *PgxListingRepository) FindListings(ctx context.Context, filter portsrepo.ListingFilter, params pagination.Params) ([]domain.Listing, int, error) {
	var conditions []string
	var args []any

	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.PublisherID != "" {
		conditions = append(conditions, "publisher_id = "+addArg(filter.PublisherID))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = "+addArg(string(*filter.Status)))
	}
	if filter.Type != nil {
		conditions = append(conditions, "listing_type = "+addArg(string(*filter.Type)))
	}
	if filter.Query != "" {
		pattern := addArg("%" + filter.Query + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(payload->>'title' ILIKE %s OR payload->>'location' ILIKE %s OR payload->>'description' ILIKE %s)",
			pattern, pattern, pattern))
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "created_at >= "+addArg(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "created_at <= "+addArg(*filter.DateTo))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM listings" + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	order := "created_at DESC"
	if filter.Sort == portsrepo.SortOldest {
		order = "created_at ASC"
	}

	query := fmt.Sprintf("SELECT %s FROM listings%s ORDER BY %s LIMIT %s OFFSET %s",
		listingColumns, whereClause, order, addArg(params.Limit), addArg(params.Offset()))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0, params.Limit)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate listing rows: %w", err)
	}
	return listings, total, nil
}

// UpdateListing replaces the mutable fields of an existing listing.
func (r *PgxListingRepository) UpdateListing(ctx context.Context, listing domain.Listing) error {
	m, err := toModelListing(listing)
	if err != nil {
		return err
	}

	query := `
		UPDATE listings
		SET status = $2, rejection_reason = $3, is_active = $4, payload = $5, last_updated_at = $6, last_updated_by = $7
		WHERE listing_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.ListingID,
		m.Status,
		m.RejectionReason,
		m.IsActive,
		m.Payload,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", m.ListingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TransitionStatus persists a moderation decision. The update is guarded on
// the row still being pending, so whichever concurrent decision commits first
// wins and the loser observes ErrInvalidTransition.
func (r *PgxListingRepository) TransitionStatus(ctx context.Context, listing domain.Listing) error {
	var reason sql.NullString
	if listing.RejectionReason != "" {
		reason = sql.NullString{String: listing.RejectionReason, Valid: true}
	}

	query := `
		UPDATE listings
		SET status = $2, rejection_reason = $3, last_updated_at = $4, last_updated_by = $5
		WHERE listing_id = $1 AND status = 'pending';
	`
	tag, err := r.pool.Exec(ctx, query,
		listing.ListingID,
		string(listing.Status),
		reason,
		listing.LastUpdatedAt,
		listing.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to transition listing %s: %w", listing.ListingID, err)
	}
	if tag.RowsAffected() == 0 {
		// either the listing vanished or someone else decided first
		var exists bool
		if checkErr := r.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM listings WHERE listing_id = $1)", listing.ListingID).Scan(&exists); checkErr == nil && !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrInvalidTransition
	}
	return nil
}

// SetListingActive flips the owner's visibility toggle.
func (r *PgxListingRepository) SetListingActive(ctx context.Context, listingID string, isActive bool, updatedAt time.Time, updatedBy string) error {
	query := `
		UPDATE listings
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE listing_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, listingID, isActive, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set listing %s active=%t: %w", listingID, isActive, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteListing permanently removes a listing.
func (r *PgxListingRepository) DeleteListing(ctx context.Context, listingID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE listing_id = $1;`, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", listingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
