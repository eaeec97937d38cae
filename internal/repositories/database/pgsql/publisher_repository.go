package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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

type PgxPublisherRepository struct {
	BaseRepository
	userRepo portsrepo.UserRepositoryFacade
}

// newPgxPublisherRepository creates a new repository for publisher data. The
// user repository is injected for the transactional onboarding write.
func newPgxPublisherRepository(pool *pgxpool.Pool, userRepo portsrepo.UserRepositoryFacade) portsrepo.PublisherRepositoryFacade {
	return &PgxPublisherRepository{
		BaseRepository: BaseRepository{Pool: pool},
		userRepo:       userRepo,
	}
}

// Ensure PgxPublisherRepository implements portsrepo.PublisherRepositoryFacade
var _ portsrepo.PublisherRepositoryFacade = (*PgxPublisherRepository)(nil)

// cachedStatus derives the subscription_status cache column from the source
// fields at write time. Reads never trust it; see domain.ComputeEntitlement.
func cachedStatus(d domain.Publisher, now time.Time) string {
	return string(domain.ComputeEntitlement(d, now).State)
}

func toModelPublisher(d domain.Publisher) models.Publisher {
	var typeID sql.NullString
	if d.PublisherTypeID != "" {
		typeID = sql.NullString{String: d.PublisherTypeID, Valid: true}
	}
	var expiry sql.NullTime
	if d.SubscriptionExpiry != nil {
		expiry = sql.NullTime{Time: *d.SubscriptionExpiry, Valid: true}
	}
	return models.Publisher{
		PublisherID:        d.PublisherID,
		UserID:             d.UserID,
		CompanyName:        d.CompanyName,
		OrganizationType:   d.OrganizationType,
		PublisherTypeID:    typeID,
		SubscriptionExpiry: expiry,
		SubscriptionStatus: cachedStatus(d, time.Now()),
		Suspended:          d.Suspended,
		ServicePlanActive:  d.ServicePlanActive,
		Blocked:            d.Blocked,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainPublisher(m models.Publisher) domain.Publisher {
	var expiry *time.Time
	if m.SubscriptionExpiry.Valid {
		t := m.SubscriptionExpiry.Time
		expiry = &t
	}
	return domain.Publisher{
		PublisherID:        m.PublisherID,
		UserID:             m.UserID,
		CompanyName:        m.CompanyName,
		OrganizationType:   m.OrganizationType,
		PublisherTypeID:    m.PublisherTypeID.String,
		SubscriptionExpiry: expiry,
		Suspended:          m.Suspended,
		ServicePlanActive:  m.ServicePlanActive,
		Blocked:            m.Blocked,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const publisherColumns = `publisher_id, user_id, company_name, organization_type, publisher_type_id, subscription_expiry, subscription_status, suspended, service_plan_active, blocked, created_at, created_by, last_updated_at, last_updated_by`

func scanPublisher(row pgx.Row) (domain.Publisher, error) {
	var m models.Publisher
	err := row.Scan(
		&m.PublisherID,
		&m.UserID,
		&m.CompanyName,
		&m.OrganizationType,
		&m.PublisherTypeID,
		&m.SubscriptionExpiry,
		&m.SubscriptionStatus,
		&m.Suspended,
		&m.ServicePlanActive,
		&m.Blocked,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Publisher{}, err
	}
	return toDomainPublisher(m), nil
}

// SavePublisher inserts a new publisher profile.
func (r *PgxPublisherRepository) SavePublisher(ctx context.Context, publisher domain.Publisher) error {
	return insertPublisher(ctx, r.Pool, publisher)
}

// SavePublisherWithUser inserts the user account and its publisher profile in
// one transaction, so a failed profile insert never leaves behind a
// publisher-role account with no profile.
func (r *PgxPublisherRepository) SavePublisherWithUser(ctx context.Context, user domain.User, publisher domain.Publisher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.userRepo.SaveUserInTx(ctx, tx, user); err != nil {
		return err
	}
	if err := insertPublisher(ctx, tx, publisher); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertPublisher(ctx context.Context, exec pgxExecutor, publisher domain.Publisher) error {
	m := toModelPublisher(publisher)

	query := `
		INSERT INTO publishers (` + publisherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := exec.Exec(ctx, query,
		m.PublisherID,
		m.UserID,
		m.CompanyName,
		m.OrganizationType,
		m.PublisherTypeID,
		m.SubscriptionExpiry,
		m.SubscriptionStatus,
		m.Suspended,
		m.ServicePlanActive,
		m.Blocked,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: publisher profile for user %s already exists", apperrors.ErrDuplicate, m.UserID)
		}
		return fmt.Errorf("failed to save publisher %s: %w", m.PublisherID, err)
	}
	return nil
}

// FindPublisherByID retrieves a publisher by its ID.
func (r *PgxPublisherRepository) FindPublisherByID(ctx context.Context, publisherID string) (*domain.Publisher, error) {
	query := `SELECT ` + publisherColumns + ` FROM publishers WHERE publisher_id = $1;`

	publisher, err := scanPublisher(r.Pool.QueryRow(ctx, query, publisherID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find publisher by ID %s: %w", publisherID, err)
	}
	return &publisher, nil
}

// FindPublisherByUserID retrieves the publisher profile owned by a user.
func (r *PgxPublisherRepository) FindPublisherByUserID(ctx context.Context, userID string) (*domain.Publisher, error) {
	query := `SELECT ` + publisherColumns + ` FROM publishers WHERE user_id = $1;`

	publisher, err := scanPublisher(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find publisher by user ID %s: %w", userID, err)
	}
	return &publisher, nil
}

// FindPublishers retrieves one page of publishers plus the total count.
func (r *PgxPublisherRepository) FindPublishers(ctx context.Context, query string, params pagination.Params) ([]domain.Publisher, int, error) {
	whereClause := ""
	var args []any
	if query != "" {
		whereClause = " WHERE company_name ILIKE $1"
		args = append(args, "%"+query+"%")
	}

	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM publishers"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count publishers: %w", err)
	}

	listQuery := fmt.Sprintf("SELECT %s FROM publishers%s ORDER BY company_name ASC LIMIT $%d OFFSET $%d",
		publisherColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list publishers: %w", err)
	}
	defer rows.Close()

	publishers := make([]domain.Publisher, 0, params.Limit)
	for rows.Next() {
		publisher, err := scanPublisher(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan publisher row: %w", err)
		}
		publishers = append(publishers, publisher)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate publisher rows: %w", err)
	}
	return publishers, total, nil
}

// UpdatePublisher replaces the mutable fields of a publisher, rewriting the
// derived subscription_status cache column.
func (r *PgxPublisherRepository) UpdatePublisher(ctx context.Context, publisher domain.Publisher) error {
	m := toModelPublisher(publisher)

	query := `
		UPDATE publishers
		SET company_name = $2, organization_type = $3, publisher_type_id = $4,
			subscription_expiry = $5, subscription_status = $6, suspended = $7,
			service_plan_active = $8, blocked = $9, last_updated_at = $10, last_updated_by = $11
		WHERE publisher_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PublisherID,
		m.CompanyName,
		m.OrganizationType,
		m.PublisherTypeID,
		m.SubscriptionExpiry,
		m.SubscriptionStatus,
		m.Suspended,
		m.ServicePlanActive,
		m.Blocked,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update publisher %s: %w", m.PublisherID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
