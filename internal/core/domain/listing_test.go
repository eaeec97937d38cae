package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

func TestListing_Approve(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.ListingStatus
		wantErr    error
		wantStatus domain.ListingStatus
	}{
		{
			name:       "pending listing approves",
			status:     domain.StatusPending,
			wantStatus: domain.StatusApproved,
		},
		{
			name:       "already approved is an invalid transition",
			status:     domain.StatusApproved,
			wantErr:    apperrors.ErrInvalidTransition,
			wantStatus: domain.StatusApproved,
		},
		{
			name:       "rejected listing cannot be approved directly",
			status:     domain.StatusRejected,
			wantErr:    apperrors.ErrInvalidTransition,
			wantStatus: domain.StatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := domain.Listing{Status: tt.status, RejectionReason: "old reason"}
			if tt.status != domain.StatusRejected {
				l.RejectionReason = ""
			}

			err := l.Approve()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Empty(t, l.RejectionReason)
			}
			assert.Equal(t, tt.wantStatus, l.Status)
		})
	}
}

func TestListing_Reject(t *testing.T) {
	t.Run("pending listing rejects with reason", func(t *testing.T) {
		l := domain.Listing{Status: domain.StatusPending}

		err := l.Reject("incomplete contact details")

		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, l.Status)
		assert.Equal(t, "incomplete contact details", l.RejectionReason)
	})

	t.Run("blank reason fails validation and leaves status pending", func(t *testing.T) {
		for _, reason := range []string{"", "   ", "\t\n"} {
			l := domain.Listing{Status: domain.StatusPending}

			err := l.Reject(reason)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, domain.StatusPending, l.Status)
			assert.Empty(t, l.RejectionReason)
		}
	})

	t.Run("non-pending listing is an invalid transition", func(t *testing.T) {
		l := domain.Listing{Status: domain.StatusApproved}

		err := l.Reject("too late")

		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.Equal(t, domain.StatusApproved, l.Status)
	})
}

func TestListing_Resubmit(t *testing.T) {
	t.Run("rejected listing returns to pending and clears reason", func(t *testing.T) {
		l := domain.Listing{Status: domain.StatusRejected, RejectionReason: "x"}

		changed := l.Resubmit()

		assert.True(t, changed)
		assert.Equal(t, domain.StatusPending, l.Status)
		assert.Empty(t, l.RejectionReason)
	})

	t.Run("approved listing returns to pending", func(t *testing.T) {
		l := domain.Listing{Status: domain.StatusApproved}

		assert.True(t, l.Resubmit())
		assert.Equal(t, domain.StatusPending, l.Status)
	})

	t.Run("pending listing is unchanged", func(t *testing.T) {
		l := domain.Listing{Status: domain.StatusPending}

		assert.False(t, l.Resubmit())
		assert.Equal(t, domain.StatusPending, l.Status)
	})
}

func TestListing_RejectThenResubmitThenApprove(t *testing.T) {
	l := domain.Listing{Status: domain.StatusPending}

	require.NoError(t, l.Reject("x"))
	assert.Equal(t, domain.StatusRejected, l.Status)
	assert.Equal(t, "x", l.RejectionReason)

	l.Resubmit()
	require.NoError(t, l.Approve())

	assert.Equal(t, domain.StatusApproved, l.Status)
	assert.Empty(t, l.RejectionReason)
}
