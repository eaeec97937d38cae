package models

import "github.com/shopspring/decimal"

// PricingConfig is the singleton pricing row. Plan prices are stored as
// discrete columns rather than JSON so the monotonicity constraint reads
// naturally in SQL tooling.
type PricingConfig struct {
	ID                      int             `db:"id"` // always 1
	Currency                string          `db:"currency"`
	PlanPrice3M             decimal.Decimal `db:"plan_price_3m"`
	PlanPrice6M             decimal.Decimal `db:"plan_price_6m"`
	PlanPrice9M             decimal.Decimal `db:"plan_price_9m"`
	ServiceListingYearlyFee decimal.Decimal `db:"service_listing_yearly_fee"`
	AuditFields
}
