package dto

import (
	"github.com/shopspring/decimal"
)

// SubscriptionPlan is one purchasable plan as shown to publishers.
type SubscriptionPlan struct {
	DurationInMonths int             `json:"durationInMonths"`
	Price            decimal.Decimal `json:"price"`
}

// SubscriptionPlansResponse lists the purchasable plans plus the yearly
// service-listing add-on fee.
type SubscriptionPlansResponse struct {
	Currency                string             `json:"currency"`
	Plans                   []SubscriptionPlan `json:"plans"`
	ServiceListingYearlyFee decimal.Decimal    `json:"serviceListingYearlyFee"`
}

// OrderKind distinguishes what a payment order buys.
type OrderKind string

const (
	OrderKindBasePlan    OrderKind = "basePlan"
	OrderKindServicePlan OrderKind = "servicePlan"
)

// CreateOrderRequest registers a payment order. DurationInMonths is
// required for base plan orders and ignored for the service-plan fee.
type CreateOrderRequest struct {
	Kind             OrderKind `json:"kind" binding:"required"`
	DurationInMonths int       `json:"durationInMonths"`
}

// CreateOrderResponse returns the provider order the client checks out with.
type CreateOrderResponse struct {
	OrderID  string          `json:"orderId"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// PaymentConfirmation is the provider's callback payload after checkout.
// The signature is verified by the payment provider collaborator, not here.
type PaymentConfirmation struct {
	OrderID          string    `json:"orderId" binding:"required"`
	PaymentID        string    `json:"paymentId" binding:"required"`
	Signature        string    `json:"signature" binding:"required"`
	Kind             OrderKind `json:"kind" binding:"required"`
	DurationInMonths int       `json:"durationInMonths"`
}
