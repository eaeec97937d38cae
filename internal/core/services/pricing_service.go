package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
)

// pricingService implements the PricingSvcFacade interface.
type pricingService struct {
	BaseService
	pricingRepo portsrepo.PricingConfigRepository
}

// NewPricingService creates a new pricing config service.
func NewPricingService(pricingRepo portsrepo.PricingConfigRepository) portssvc.PricingSvcFacade {
	return &pricingService{pricingRepo: pricingRepo}
}

// Ensure pricingService implements the PricingSvcFacade interface.
var _ portssvc.PricingSvcFacade = (*pricingService)(nil)

func (s *pricingService) GetConfig(ctx context.Context) (*domain.PricingConfig, error) {
	config, err := s.pricingRepo.GetPricingConfig(ctx)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func (s *pricingService) UpdateConfig(ctx context.Context, req dto.UpdatePricingConfigRequest, actorID string) (*domain.PricingConfig, error) {
	plans := make(map[int]decimal.Decimal, len(req.Plans))
	for key, price := range req.Plans {
		months, err := strconv.Atoi(key)
		if err != nil {
			return nil, apperrors.NewValidationError(apperrors.FieldError{
				Field:   "plans." + key,
				Message: "plan key must be a duration in months",
			})
		}
		plans[months] = price
	}

	now := time.Now()
	config := domain.PricingConfig{
		Currency:                req.Currency,
		Plans:                   plans,
		ServiceListingYearlyFee: req.ServiceListingYearlyFee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	config.Normalize()
	// the stored row is only touched once the whole replacement validates
	if err := config.Validate(); err != nil {
		s.LogWarn(ctx, "Pricing update failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.pricingRepo.SavePricingConfig(ctx, config); err != nil {
		s.LogError(ctx, err, "Failed to save pricing config")
		return nil, fmt.Errorf("failed to save pricing config: %w", err)
	}
	s.LogInfo(ctx, "Pricing config replaced", slog.String("admin_id", actorID))
	return &config, nil
}
