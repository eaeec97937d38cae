package dto

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

// UpdatePricingConfigRequest fully replaces the pricing configuration.
// Plan prices are keyed by duration in months ("3", "6", "9").
type UpdatePricingConfigRequest struct {
	Currency                string                     `json:"currency" binding:"required"`
	Plans                   map[string]decimal.Decimal `json:"plans" binding:"required"`
	ServiceListingYearlyFee decimal.Decimal            `json:"serviceListingYearlyFee"`
}

// PricingConfigResponse is the stored pricing snapshot.
type PricingConfigResponse struct {
	Currency                string                     `json:"currency"`
	Plans                   map[string]decimal.Decimal `json:"plans"`
	ServiceListingYearlyFee decimal.Decimal            `json:"serviceListingYearlyFee"`
}

// ToPricingConfigResponse converts the domain config to its wire shape.
func ToPricingConfigResponse(c domain.PricingConfig) PricingConfigResponse {
	plans := make(map[string]decimal.Decimal, len(c.Plans))
	for months, price := range c.Plans {
		plans[strconv.Itoa(months)] = price
	}
	return PricingConfigResponse{
		Currency:                c.Currency,
		Plans:                   plans,
		ServiceListingYearlyFee: c.ServiceListingYearlyFee,
	}
}
