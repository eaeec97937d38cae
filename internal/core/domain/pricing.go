package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
)

// PlanDurations are the base subscription plan lengths sold, in months.
var PlanDurations = []int{3, 6, 9}

// PricingConfig is the singleton admin-editable pricing record: base plan
// prices keyed by duration in months plus the yearly service-listing fee.
// Updates replace the whole record; there is no partial merge.
type PricingConfig struct {
	Currency                string                  `json:"currency"`
	Plans                   map[int]decimal.Decimal `json:"plans"`
	ServiceListingYearlyFee decimal.Decimal         `json:"serviceListingYearlyFee"`
	AuditFields
}

// Normalize rounds every price to integer currency units, the granularity
// the payment provider accepts.
func (c *PricingConfig) Normalize() {
	for months, price := range c.Plans {
		c.Plans[months] = price.Round(0)
	}
	c.ServiceListingYearlyFee = c.ServiceListingYearlyFee.Round(0)
}

// Validate enforces the pricing invariants at the edit boundary: every plan
// duration priced, all amounts >= 0, and price non-decreasing with duration.
// A monotonicity violation names the offending pair rather than silently
// reordering.
func (c PricingConfig) Validate() error {
	var problems []apperrors.FieldError

	for _, months := range PlanDurations {
		price, ok := c.Plans[months]
		if !ok {
			problems = append(problems, apperrors.FieldError{
				Field:   fmt.Sprintf("plans.%d", months),
				Message: "price is required",
			})
			continue
		}
		if price.IsNegative() {
			problems = append(problems, apperrors.FieldError{
				Field:   fmt.Sprintf("plans.%d", months),
				Message: "price must be >= 0",
			})
		}
	}
	if c.ServiceListingYearlyFee.IsNegative() {
		problems = append(problems, apperrors.FieldError{
			Field:   "serviceListingYearlyFee",
			Message: "fee must be >= 0",
		})
	}
	if len(problems) > 0 {
		return apperrors.NewValidationError(problems...)
	}

	for i := 1; i < len(PlanDurations); i++ {
		shorter, longer := PlanDurations[i-1], PlanDurations[i]
		if c.Plans[longer].LessThan(c.Plans[shorter]) {
			return apperrors.NewValidationError(apperrors.FieldError{
				Field:   fmt.Sprintf("plans.%d", longer),
				Message: fmt.Sprintf("%d-month price must be >= %d-month price", longer, shorter),
			})
		}
	}
	return nil
}
