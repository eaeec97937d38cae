package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	"github.com/unlockhq/unlock-backend/internal/models"
)

// pricingConfigRowID is the primary key of the singleton pricing row.
const pricingConfigRowID = 1

type PgxPricingRepository struct {
	pool *pgxpool.Pool
}

// newPgxPricingRepository creates a new repository for the pricing config.
func newPgxPricingRepository(pool *pgxpool.Pool) portsrepo.PricingConfigRepository {
	return &PgxPricingRepository{pool: pool}
}

// Ensure PgxPricingRepository implements portsrepo.PricingConfigRepository
var _ portsrepo.PricingConfigRepository = (*PgxPricingRepository)(nil)

func toModelPricing(d domain.PricingConfig) models.PricingConfig {
	return models.PricingConfig{
		ID:                      pricingConfigRowID,
		Currency:                d.Currency,
		PlanPrice3M:             d.Plans[3],
		PlanPrice6M:             d.Plans[6],
		PlanPrice9M:             d.Plans[9],
		ServiceListingYearlyFee: d.ServiceListingYearlyFee,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainPricing(m models.PricingConfig) domain.PricingConfig {
	return domain.PricingConfig{
		Currency: m.Currency,
		Plans: map[int]decimal.Decimal{
			3: m.PlanPrice3M,
			6: m.PlanPrice6M,
			9: m.PlanPrice9M,
		},
		ServiceListingYearlyFee: m.ServiceListingYearlyFee,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// GetPricingConfig retrieves the singleton pricing row.
func (r *PgxPricingRepository) GetPricingConfig(ctx context.Context) (*domain.PricingConfig, error) {
	query := `
		SELECT id, currency, plan_price_3m, plan_price_6m, plan_price_9m, service_listing_yearly_fee,
			created_at, created_by, last_updated_at, last_updated_by
		FROM pricing_config
		WHERE id = $1;
	`
	var m models.PricingConfig
	err := r.pool.QueryRow(ctx, query, pricingConfigRowID).Scan(
		&m.ID,
		&m.Currency,
		&m.PlanPrice3M,
		&m.PlanPrice6M,
		&m.PlanPrice9M,
		&m.ServiceListingYearlyFee,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load pricing config: %w", err)
	}
	config := toDomainPricing(m)
	return &config, nil
}

// SavePricingConfig fully replaces the stored config via an upsert on the
// singleton row.
func (r *PgxPricingRepository) SavePricingConfig(ctx context.Context, config domain.PricingConfig) error {
	m := toModelPricing(config)

	query := `
		INSERT INTO pricing_config (id, currency, plan_price_3m, plan_price_6m, plan_price_9m, service_listing_yearly_fee,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET currency = EXCLUDED.currency,
			plan_price_3m = EXCLUDED.plan_price_3m,
			plan_price_6m = EXCLUDED.plan_price_6m,
			plan_price_9m = EXCLUDED.plan_price_9m,
			service_listing_yearly_fee = EXCLUDED.service_listing_yearly_fee,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Currency,
		m.PlanPrice3M,
		m.PlanPrice6M,
		m.PlanPrice9M,
		m.ServiceListingYearlyFee,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save pricing config: %w", err)
	}
	return nil
}
