package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// UserReader defines read operations for user accounts.
type UserReader interface {
	// FindUserByID retrieves a specific user or apperrors.ErrNotFound.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, matched case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves one page of users, optionally filtered by a
	// substring over name/email, plus the total count.
	FindUsers(ctx context.Context, query string, params pagination.Params) ([]domain.User, int, error)
}

// UserWriter defines write operations for user accounts.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// SetUserBlocked flips the administrative hard lock on an account.
	SetUserBlocked(ctx context.Context, userID string, blocked bool, updatedAt time.Time, updatedBy string) error

	// UpdateRefreshToken stores the hash and expiry of the user's current
	// refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error

	// ClearRefreshToken removes the user's refresh token on logout.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserTransactionSupport defines operations that run inside a caller-owned
// transaction, for writes that span aggregates.
type UserTransactionSupport interface {
	// SaveUserInTx persists a new user within the given transaction.
	SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserTransactionSupport
}
