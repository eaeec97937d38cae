package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

func validEventPayload() map[string]any {
	return map[string]any{
		"title":         "Demo Day 2026",
		"description":   "Annual demo day for the cohort.",
		"eventCategory": "networking",
		"startDate":     "2026-01-01",
		"endDate":       "2026-01-01",
		"location":      "Bengaluru",
		"eventFormat":   "in-person",
		"workEmail":     "team@unlock.example",
	}
}

func TestValidatePayload_Event(t *testing.T) {
	t.Run("valid payload passes", func(t *testing.T) {
		assert.NoError(t, domain.ValidatePayload(domain.ListingTypeEvent, validEventPayload()))
	})

	t.Run("missing description is reported by name", func(t *testing.T) {
		payload := validEventPayload()
		delete(payload, "description")

		err := domain.ValidatePayload(domain.ListingTypeEvent, payload)

		require.ErrorIs(t, err, apperrors.ErrValidation)
		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "description", vErr.Fields[0].Field)
	})

	t.Run("all problems are aggregated, not just the first", func(t *testing.T) {
		payload := validEventPayload()
		delete(payload, "title")
		payload["workEmail"] = "not-an-email"
		payload["registrationUrl"] = "ftp://nope"
		payload["endDate"] = "sometime soon"

		err := domain.ValidatePayload(domain.ListingTypeEvent, payload)

		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		fields := make([]string, len(vErr.Fields))
		for i, f := range vErr.Fields {
			fields[i] = f.Field
		}
		assert.ElementsMatch(t, []string{"title", "workEmail", "registrationUrl", "endDate"}, fields)
	})

	t.Run("blank required string counts as missing", func(t *testing.T) {
		payload := validEventPayload()
		payload["location"] = "   "

		err := domain.ValidatePayload(domain.ListingTypeEvent, payload)

		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "location", vErr.Fields[0].Field)
	})

	t.Run("undeclared payload keys are rejected", func(t *testing.T) {
		payload := validEventPayload()
		payload["status"] = "approved"

		err := domain.ValidatePayload(domain.ListingTypeEvent, payload)

		var vErr *apperrors.ValidationError
		require.True(t, errors.As(err, &vErr))
		require.Len(t, vErr.Fields, 1)
		assert.Equal(t, "status", vErr.Fields[0].Field)
	})
}

func TestValidatePayload_KindRules(t *testing.T) {
	t.Run("select with fixed options rejects unknown value", func(t *testing.T) {
		payload := validEventPayload()
		payload["eventFormat"] = "metaverse"

		err := domain.ValidatePayload(domain.ListingTypeEvent, payload)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("number accepts json numbers and numeric strings", func(t *testing.T) {
		payload := map[string]any{
			"title":               "Seed Grant",
			"description":         "Grants for pre-seed startups.",
			"fundingAmount":       float64(500000),
			"applicationDeadline": "2026-06-30",
			"workEmail":           "grants@unlock.example",
		}
		assert.NoError(t, domain.ValidatePayload(domain.ListingTypeFunding, payload))

		payload["fundingAmount"] = "500000"
		assert.NoError(t, domain.ValidatePayload(domain.ListingTypeFunding, payload))

		payload["fundingAmount"] = "lots"
		assert.ErrorIs(t, domain.ValidatePayload(domain.ListingTypeFunding, payload), apperrors.ErrValidation)
	})

	t.Run("unknown listing type fails", func(t *testing.T) {
		err := domain.ValidatePayload(domain.ListingType("podcast"), map[string]any{})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestFieldsFor(t *testing.T) {
	for _, typ := range domain.ListingTypes {
		descriptors := domain.FieldsFor(typ)
		require.NotEmpty(t, descriptors, "type %s has no descriptors", typ)

		required := 0
		for _, d := range descriptors {
			if d.Required {
				required++
			}
		}
		assert.Positive(t, required, "type %s requires no fields", typ)
	}
}
