package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/unlockhq/unlock-backend/internal/utils"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "INR 4999", utils.FormatAmount(decimal.NewFromInt(4999), "INR"))
	assert.Equal(t, "INR 500", utils.FormatAmount(decimal.RequireFromString("499.50"), "INR"))
	assert.Equal(t, "USD 0", utils.FormatAmount(decimal.Zero, "USD"))
}
