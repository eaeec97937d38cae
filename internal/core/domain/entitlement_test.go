package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestComputeEntitlement(t *testing.T) {
	now := time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		publisher domain.Publisher
		want      domain.Entitlement
	}{
		{
			name: "suspension overrides an unexpired date",
			publisher: domain.Publisher{
				Suspended:          true,
				SubscriptionExpiry: timePtr(now.AddDate(1, 0, 0)),
			},
			want: domain.Entitlement{State: domain.EntitlementSuspended, DaysLeft: 0},
		},
		{
			name:      "nil expiry is expired",
			publisher: domain.Publisher{},
			want:      domain.Entitlement{State: domain.EntitlementExpired, DaysLeft: 0},
		},
		{
			name: "future expiry is active with ceil days left",
			publisher: domain.Publisher{
				SubscriptionExpiry: timePtr(now.Add(36 * time.Hour)),
			},
			want: domain.Entitlement{State: domain.EntitlementActive, DaysLeft: 2},
		},
		{
			name: "past expiry is expired with zero days, never negative",
			publisher: domain.Publisher{
				SubscriptionExpiry: timePtr(now.AddDate(0, -2, 0)),
			},
			want: domain.Entitlement{State: domain.EntitlementExpired, DaysLeft: 0},
		},
		{
			name: "expiry 2026-04-01 seen from 2025-12-15 leaves 107 days",
			publisher: domain.Publisher{
				SubscriptionExpiry: timePtr(time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)),
			},
			want: domain.Entitlement{State: domain.EntitlementActive, DaysLeft: 107},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeEntitlement(tt.publisher, now)
			assert.Equal(t, tt.want, got)

			// pure: recomputing with identical inputs yields identical output
			assert.Equal(t, got, domain.ComputeEntitlement(tt.publisher, now))
		})
	}
}

func TestExtensionBase(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -6, 0)

	assert.Equal(t, future, domain.ExtensionBase(now, &future), "unexpired subscriptions extend from stored expiry")
	assert.Equal(t, now, domain.ExtensionBase(now, &past), "lapsed subscriptions extend from now")
	assert.Equal(t, now, domain.ExtensionBase(now, nil), "never-subscribed extends from now")
}
