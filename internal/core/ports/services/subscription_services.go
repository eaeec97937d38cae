package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/unlockhq/unlock-backend/internal/dto"
)

// PaymentOrder is an order registered with the external payment provider.
type PaymentOrder struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
}

// PaymentProvider is the opaque off-box checkout collaborator. The core only
// registers orders and verifies confirmations; payment mechanics live behind
// this interface.
type PaymentProvider interface {
	// CreateOrder registers an order for the amount and returns the
	// provider's order reference.
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, receipt string) (*PaymentOrder, error)

	// VerifyPayment checks a payment confirmation against the provider.
	// A failed signature or unknown order returns an error; the entitlement
	// is only extended after this succeeds.
	VerifyPayment(ctx context.Context, confirmation dto.PaymentConfirmation) error
}

// SubscriptionSvcFacade is the publisher-facing purchase flow: plans are
// read from the pricing config, orders go through the payment provider, and
// a verified payment extends the publisher's subscription.
type SubscriptionSvcFacade interface {
	// GetPlans lists the purchasable plans from the current pricing config.
	GetPlans(ctx context.Context) (*dto.SubscriptionPlansResponse, error)

	// CreateOrder registers a payment order for the base plan of the given
	// duration, or for the yearly service-listing fee.
	CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)

	// VerifyAndApply verifies a payment confirmation and applies the
	// resulting entitlement change to the caller's publisher profile.
	VerifyAndApply(ctx context.Context, userID string, confirmation dto.PaymentConfirmation) (*dto.PublisherResponse, error)
}
