package services

import (
	"context"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	"github.com/unlockhq/unlock-backend/internal/dto"
)

// PricingSvcFacade manages the singleton pricing configuration.
type PricingSvcFacade interface {
	// GetConfig retrieves the current pricing snapshot.
	GetConfig(ctx context.Context) (*domain.PricingConfig, error)

	// UpdateConfig validates and fully replaces the pricing record. On a
	// validation failure the stored config is untouched.
	UpdateConfig(ctx context.Context, req dto.UpdatePricingConfigRequest, actorID string) (*domain.PricingConfig, error)
}
