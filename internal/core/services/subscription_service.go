package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/utils"
)

// subscriptionService implements the SubscriptionSvcFacade interface.
type subscriptionService struct {
	BaseService
	pricingRepo   portsrepo.PricingConfigRepository
	publisherRepo portsrepo.PublisherRepositoryFacade
	payments      portssvc.PaymentProvider
}

// NewSubscriptionService creates a new subscription purchase service.
func NewSubscriptionService(pricingRepo portsrepo.PricingConfigRepository, publisherRepo portsrepo.PublisherRepositoryFacade, payments portssvc.PaymentProvider) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		pricingRepo:   pricingRepo,
		publisherRepo: publisherRepo,
		payments:      payments,
	}
}

// Ensure subscriptionService implements the SubscriptionSvcFacade interface.
var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

func (s *subscriptionService) GetPlans(ctx context.Context) (*dto.SubscriptionPlansResponse, error) {
	config, err := s.pricingRepo.GetPricingConfig(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load pricing config for plans")
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	plans := make([]dto.SubscriptionPlan, 0, len(domain.PlanDurations))
	for _, months := range domain.PlanDurations {
		plans = append(plans, dto.SubscriptionPlan{
			DurationInMonths: months,
			Price:            config.Plans[months],
		})
	}
	return &dto.SubscriptionPlansResponse{
		Currency:                config.Currency,
		Plans:                   plans,
		ServiceListingYearlyFee: config.ServiceListingYearlyFee,
	}, nil
}

func (s *subscriptionService) CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	publisher, err := s.publisherRepo.FindPublisherByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	config, err := s.pricingRepo.GetPricingConfig(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load pricing config for order")
		return nil, fmt.Errorf("failed to load pricing: %w", err)
	}

	amount, err := orderAmount(*config, req.Kind, req.DurationInMonths)
	if err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("unlock-%s-%s", req.Kind, uuid.NewString())
	order, err := s.payments.CreateOrder(ctx, amount, config.Currency, receipt)
	if err != nil {
		s.LogError(ctx, err, "Payment provider rejected order",
			slog.String("publisher_id", publisher.PublisherID),
			slog.String("kind", string(req.Kind)))
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	s.LogInfo(ctx, "Payment order created",
		slog.String("publisher_id", publisher.PublisherID),
		slog.String("order_id", order.OrderID),
		slog.String("kind", string(req.Kind)),
		slog.String("amount", utils.FormatAmount(order.Amount, order.Currency)))
	return &dto.CreateOrderResponse{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}

func (s *subscriptionService) VerifyAndApply(ctx context.Context, userID string, confirmation dto.PaymentConfirmation) (*dto.PublisherResponse, error) {
	publisher, err := s.publisherRepo.FindPublisherByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.payments.VerifyPayment(ctx, confirmation); err != nil {
		s.LogWarn(ctx, "Payment verification failed",
			slog.String("publisher_id", publisher.PublisherID),
			slog.String("order_id", confirmation.OrderID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("payment verification failed: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	switch confirmation.Kind {
	case dto.OrderKindBasePlan:
		if !validPlanDuration(confirmation.DurationInMonths) {
			return nil, apperrors.NewValidationError(apperrors.FieldError{
				Field:   "durationInMonths",
				Message: fmt.Sprintf("must be one of %v", domain.PlanDurations),
			})
		}
		expiry := domain.ExtensionBase(now, publisher.SubscriptionExpiry).AddDate(0, confirmation.DurationInMonths, 0)
		publisher.SubscriptionExpiry = &expiry
	case dto.OrderKindServicePlan:
		publisher.ServicePlanActive = true
	default:
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown order kind %q", confirmation.Kind),
		})
	}

	publisher.LastUpdatedAt = now
	publisher.LastUpdatedBy = userID
	if err := s.publisherRepo.UpdatePublisher(ctx, *publisher); err != nil {
		s.LogError(ctx, err, "Failed to apply verified payment",
			slog.String("publisher_id", publisher.PublisherID),
			slog.String("order_id", confirmation.OrderID))
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	s.LogInfo(ctx, "Payment verified and applied",
		slog.String("publisher_id", publisher.PublisherID),
		slog.String("order_id", confirmation.OrderID),
		slog.String("kind", string(confirmation.Kind)))
	resp := dto.ToPublisherResponse(*publisher, now)
	return &resp, nil
}

// orderAmount resolves what a given order kind costs under the config.
func orderAmount(config domain.PricingConfig, kind dto.OrderKind, months int) (decimal.Decimal, error) {
	switch kind {
	case dto.OrderKindBasePlan:
		if !validPlanDuration(months) {
			return decimal.Zero, apperrors.NewValidationError(apperrors.FieldError{
				Field:   "durationInMonths",
				Message: fmt.Sprintf("must be one of %v", domain.PlanDurations),
			})
		}
		return config.Plans[months], nil
	case dto.OrderKindServicePlan:
		return config.ServiceListingYearlyFee, nil
	default:
		return decimal.Zero, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown order kind %q", kind),
		})
	}
}

func validPlanDuration(months int) bool {
	for _, d := range domain.PlanDurations {
		if months == d {
			return true
		}
	}
	return false
}
