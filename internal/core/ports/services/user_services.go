package services

import (
	"context"
	"time"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// UserReaderSvc defines read operations for user accounts.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves one page of users, optionally filtered by a
	// substring over name/email.
	ListUsers(ctx context.Context, query string, params pagination.Params) (pagination.Page[domain.User], error)
}

// UserWriterSvc defines write operations for user accounts.
type UserWriterSvc interface {
	// CreateUser registers a new account with the given role.
	CreateUser(ctx context.Context, req dto.RegisterUserRequest, role domain.UserRole) (*domain.User, error)

	// FindOrCreateOAuthUser resolves the account for a verified external
	// identity, creating a user-role account on first login.
	FindOrCreateOAuthUser(ctx context.Context, email, name string) (*domain.User, error)

	// SetUserBlocked flips the administrative hard lock on an account.
	SetUserBlocked(ctx context.Context, userID string, blocked bool, actorID string) error

	// UpdateRefreshToken stores the hash and expiry of the user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error

	// ClearRefreshToken clears the refresh token on logout.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserAuthSvc defines credential verification.
type UserAuthSvc interface {
	// AuthenticateUser verifies email and password, rejecting blocked accounts.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
