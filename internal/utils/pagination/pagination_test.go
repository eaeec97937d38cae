package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		want        pagination.Params
	}{
		{"defaults for zero values", 0, 0, pagination.Params{Page: 1, Limit: 10}},
		{"negative page falls back", -3, 20, pagination.Params{Page: 1, Limit: 20}},
		{"limit capped", 2, 5000, pagination.Params{Page: 2, Limit: 100}},
		{"valid values pass through", 5, 10, pagination.Params{Page: 5, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Normalize(tt.page, tt.limit))
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 5, Limit: 10}.Offset())
}

func TestParams_TotalPages(t *testing.T) {
	p := pagination.Params{Page: 1, Limit: 10}
	assert.Equal(t, 1, p.TotalPages(0), "empty results still report one page")
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(12))
	assert.Equal(t, 5, p.TotalPages(41))
}

func TestNewPage_OutOfRange(t *testing.T) {
	// 12 matching items, page 5 of limit 10: past the end means empty items,
	// not an error.
	params := pagination.Normalize(5, 10)

	page := pagination.NewPage[string](nil, 12, params)

	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 5, page.PageNumber)
	assert.Equal(t, 2, page.TotalPages)
}
