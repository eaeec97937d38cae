package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/utils"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// userService implements the UserSvcFacade interface.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the UserSvcFacade interface.
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
}

func (s *userService) ListUsers(ctx context.Context, query string, params pagination.Params) (pagination.Page[domain.User], error) {
	users, total, err := s.userRepo.FindUsers(ctx, query, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return pagination.Page[domain.User]{}, fmt.Errorf("failed to list users: %w", err)
	}
	return pagination.NewPage(users, total, params), nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.RegisterUserRequest, role domain.UserRole) (*domain.User, error) {
	user, err := newUserAccount(req, role)
	if err != nil {
		return nil, err
	}

	if err := ensureEmailAvailable(ctx, s.userRepo, user.Email); err != nil {
		return nil, err
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", user.Email))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID),
		slog.String("role", string(role)))
	return &user, nil
}

// newUserAccount validates the role, hashes the password and builds the
// not-yet-saved account with its audit fields stamped.
func newUserAccount(req dto.RegisterUserRequest, role domain.UserRole) (domain.User, error) {
	if !role.IsValid() {
		return domain.User{}, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "role",
			Message: fmt.Sprintf("unknown role %q", role),
		})
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		Role:         role,
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID
	return user, nil
}

// ensureEmailAvailable fails with ErrDuplicate when the address already
// belongs to a live account. The database unique index backstops the race
// between this check and the insert.
func ensureEmailAvailable(ctx context.Context, users portsrepo.UserReader, email string) error {
	if _, err := users.FindUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("email %s already registered: %w", email, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email availability: %w", err)
	}
	return nil
}

func (s *userService) FindOrCreateOAuthUser(ctx context.Context, email, name string) (*domain.User, error) {
	normalized := normalizeEmail(email)
	user, err := s.userRepo.FindUserByEmail(ctx, normalized)
	if err == nil {
		if user.Blocked {
			return nil, apperrors.ErrForbidden
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up OAuth user")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	now := time.Now()
	created := domain.User{
		UserID: uuid.NewString(),
		Name:   name,
		Email:  normalized,
		Role:   domain.RoleUser,
		// the identity provider vouched for the address
		IsEmailVerified: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	created.CreatedBy = created.UserID
	created.LastUpdatedBy = created.UserID

	if err := s.userRepo.SaveUser(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to save OAuth user", slog.String("email", normalized))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	s.LogInfo(ctx, "OAuth user provisioned", slog.String("user_id", created.UserID))
	return &created, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// indistinguishable from a bad password on purpose
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Password check failed", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	if user.Blocked {
		s.LogWarn(ctx, "Blocked account attempted login", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

func (s *userService) SetUserBlocked(ctx context.Context, userID string, blocked bool, actorID string) error {
	if err := s.userRepo.SetUserBlocked(ctx, userID, blocked, time.Now(), actorID); err != nil {
		s.LogError(ctx, err, "Failed to change user block", slog.String("user_id", userID))
		return err
	}
	if blocked {
		// a blocked user must not be able to refresh their way back in
		if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
			s.LogError(ctx, err, "Failed to revoke refresh token of blocked user", slog.String("user_id", userID))
			return err
		}
	}
	s.LogInfo(ctx, "User block changed",
		slog.String("user_id", userID),
		slog.Bool("blocked", blocked),
		slog.String("admin_id", actorID))
	return nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, expiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
