package repositories

import (
	"context"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

// PricingConfigRepository persists the singleton pricing record. Readers
// always see the latest committed snapshot; a rejected update never touches
// the stored row.
type PricingConfigRepository interface {
	// GetPricingConfig retrieves the current config or apperrors.ErrNotFound
	// when no config has been saved yet.
	GetPricingConfig(ctx context.Context) (*domain.PricingConfig, error)

	// SavePricingConfig fully replaces the stored config.
	SavePricingConfig(ctx context.Context, config domain.PricingConfig) error
}
