package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

func plans(p3, p6, p9 int64) map[int]decimal.Decimal {
	return map[int]decimal.Decimal{
		3: decimal.NewFromInt(p3),
		6: decimal.NewFromInt(p6),
		9: decimal.NewFromInt(p9),
	}
}

func TestPricingConfig_Validate(t *testing.T) {
	t.Run("monotonic config passes", func(t *testing.T) {
		cfg := domain.PricingConfig{Currency: "INR", Plans: plans(1000, 1800, 2500)}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("equal prices are allowed", func(t *testing.T) {
		cfg := domain.PricingConfig{Currency: "INR", Plans: plans(1000, 1000, 1000)}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("6-month below 3-month names the pair", func(t *testing.T) {
		cfg := domain.PricingConfig{Currency: "INR", Plans: plans(2000, 1000, 3000)}

		err := cfg.Validate()

		require.ErrorIs(t, err, apperrors.ErrValidation)
		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "plans.6", vErr.Fields[0].Field)
		assert.Contains(t, vErr.Fields[0].Message, "3-month")
	})

	t.Run("9-month below 6-month names the pair", func(t *testing.T) {
		cfg := domain.PricingConfig{Currency: "INR", Plans: plans(1000, 2000, 1500)}

		err := cfg.Validate()

		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "plans.9", vErr.Fields[0].Field)
	})

	t.Run("missing and negative prices are aggregated", func(t *testing.T) {
		cfg := domain.PricingConfig{
			Currency: "INR",
			Plans: map[int]decimal.Decimal{
				3: decimal.NewFromInt(-5),
				6: decimal.NewFromInt(100),
			},
			ServiceListingYearlyFee: decimal.NewFromInt(-1),
		}

		err := cfg.Validate()

		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		fields := make([]string, len(vErr.Fields))
		for i, f := range vErr.Fields {
			fields[i] = f.Field
		}
		assert.ElementsMatch(t, []string{"plans.3", "plans.9", "serviceListingYearlyFee"}, fields)
	})
}

func TestPricingConfig_Normalize(t *testing.T) {
	cfg := domain.PricingConfig{
		Plans: map[int]decimal.Decimal{
			3: decimal.NewFromFloat(999.6),
			6: decimal.NewFromFloat(1800.4),
			9: decimal.NewFromInt(2500),
		},
		ServiceListingYearlyFee: decimal.NewFromFloat(4999.5),
	}

	cfg.Normalize()

	assert.True(t, cfg.Plans[3].Equal(decimal.NewFromInt(1000)))
	assert.True(t, cfg.Plans[6].Equal(decimal.NewFromInt(1800)))
	assert.True(t, cfg.Plans[9].Equal(decimal.NewFromInt(2500)))
	assert.True(t, cfg.ServiceListingYearlyFee.Equal(decimal.NewFromInt(5000)))
}
