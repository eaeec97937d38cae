package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// publisherService implements the PublisherSvcFacade interface.
type publisherService struct {
	BaseService
	publisherRepo portsrepo.PublisherRepositoryFacade
	userRepo      portsrepo.UserReader
}

// NewPublisherService creates a new publisher service. The user reader backs
// the email-availability check during publisher registration.
func NewPublisherService(publisherRepo portsrepo.PublisherRepositoryFacade, userRepo portsrepo.UserReader) portssvc.PublisherSvcFacade {
	return &publisherService{publisherRepo: publisherRepo, userRepo: userRepo}
}

// Ensure publisherService implements the PublisherSvcFacade interface.
var _ portssvc.PublisherSvcFacade = (*publisherService)(nil)

func (s *publisherService) GetPublisherByID(ctx context.Context, publisherID string) (*dto.PublisherResponse, error) {
	publisher, err := s.publisherRepo.FindPublisherByID(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToPublisherResponse(*publisher, time.Now())
	return &resp, nil
}

func (s *publisherService) GetPublisherByUserID(ctx context.Context, userID string) (*dto.PublisherResponse, error) {
	publisher, err := s.publisherRepo.FindPublisherByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToPublisherResponse(*publisher, time.Now())
	return &resp, nil
}

func (s *publisherService) ListPublishers(ctx context.Context, query string, params pagination.Params) (pagination.Page[dto.PublisherResponse], error) {
	publishers, total, err := s.publisherRepo.FindPublishers(ctx, query, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to list publishers")
		return pagination.Page[dto.PublisherResponse]{}, fmt.Errorf("failed to list publishers: %w", err)
	}
	now := time.Now()
	items := make([]dto.PublisherResponse, 0, len(publishers))
	for _, p := range publishers {
		items = append(items, dto.ToPublisherResponse(p, now))
	}
	return pagination.NewPage(items, total, params), nil
}

func (s *publisherService) RegisterPublisher(ctx context.Context, userReq dto.RegisterUserRequest, profileReq dto.CreatePublisherRequest) (*domain.User, *domain.Publisher, error) {
	user, err := newUserAccount(userReq, domain.RolePublisher)
	if err != nil {
		return nil, nil, err
	}
	if err := ensureEmailAvailable(ctx, s.userRepo, user.Email); err != nil {
		return nil, nil, err
	}

	publisher := newPublisherProfile(profileReq, user.UserID, user.CreatedAt)
	if err := s.publisherRepo.SavePublisherWithUser(ctx, user, publisher); err != nil {
		s.LogError(ctx, err, "Failed to register publisher", slog.String("email", user.Email))
		return nil, nil, fmt.Errorf("failed to register publisher: %w", err)
	}
	s.LogInfo(ctx, "Publisher registered",
		slog.String("user_id", user.UserID),
		slog.String("publisher_id", publisher.PublisherID))
	return &user, &publisher, nil
}

func (s *publisherService) CreatePublisher(ctx context.Context, req dto.CreatePublisherRequest, userID string) (*domain.Publisher, error) {
	publisher := newPublisherProfile(req, userID, time.Now())
	if err := s.publisherRepo.SavePublisher(ctx, publisher); err != nil {
		s.LogError(ctx, err, "Failed to save publisher", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save publisher: %w", err)
	}
	s.LogInfo(ctx, "Publisher profile created", slog.String("publisher_id", publisher.PublisherID))
	return &publisher, nil
}

// newPublisherProfile builds the not-yet-saved profile for a user account.
func newPublisherProfile(req dto.CreatePublisherRequest, userID string, now time.Time) domain.Publisher {
	return domain.Publisher{
		PublisherID:      uuid.NewString(),
		UserID:           userID,
		CompanyName:      req.CompanyName,
		OrganizationType: req.OrganizationType,
		PublisherTypeID:  req.PublisherTypeID,
		// no entitlement until an admin grants one or a payment lands
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

func (s *publisherService) UpdatePublisherProfile(ctx context.Context, publisherID string, req dto.UpdatePublisherRequest, actorID string) (*dto.PublisherResponse, error) {
	publisher, err := s.publisherRepo.FindPublisherByID(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	if req.CompanyName != nil {
		publisher.CompanyName = *req.CompanyName
	}
	if req.OrganizationType != nil {
		publisher.OrganizationType = *req.OrganizationType
	}
	if req.PublisherTypeID != nil {
		publisher.PublisherTypeID = *req.PublisherTypeID
	}
	return s.persist(ctx, publisher, actorID)
}

func (s *publisherService) ExtendSubscription(ctx context.Context, publisherID string, req dto.ExtendSubscriptionRequest, actorID string) (*dto.PublisherResponse, error) {
	now := time.Now()
	newExpiry, err := resolveExtension(req)
	if err != nil {
		return nil, err
	}

	publisher, err := s.publisherRepo.FindPublisherByID(ctx, publisherID)
	if err != nil {
		return nil, err
	}

	if newExpiry == nil {
		expiry := applyExtension(req, now, publisher.SubscriptionExpiry)
		newExpiry = &expiry
	}
	publisher.SubscriptionExpiry = newExpiry

	s.LogInfo(ctx, "Subscription extended",
		slog.String("publisher_id", publisherID),
		slog.Time("new_expiry", *newExpiry),
		slog.String("admin_id", actorID))
	return s.persist(ctx, publisher, actorID)
}

// applyExtension computes the new expiry for the add modes. now is the single
// reference time for the whole request; a lapsed subscription extends from it,
// an unexpired one stacks on its current expiry.
func applyExtension(req dto.ExtendSubscriptionRequest, now time.Time, current *time.Time) time.Time {
	base := domain.ExtensionBase(now, current)
	if req.Months != nil {
		return base.AddDate(0, *req.Months, 0)
	}
	return base.AddDate(0, 0, *req.Days)
}

// resolveExtension validates that exactly one extension mode is present. For
// setExpiry it also parses and returns the target date; the add modes resolve
// against the loaded publisher via applyExtension.
func resolveExtension(req dto.ExtendSubscriptionRequest) (*time.Time, error) {
	provided := 0
	if req.Months != nil {
		provided++
	}
	if req.Days != nil {
		provided++
	}
	if req.SetExpiry != nil {
		provided++
	}
	if provided != 1 {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "extension",
			Message: "exactly one of months, days or setExpiry must be provided",
		})
	}
	if req.Months != nil && *req.Months <= 0 {
		return nil, apperrors.NewValidationError(apperrors.FieldError{Field: "months", Message: "must be positive"})
	}
	if req.Days != nil && *req.Days <= 0 {
		return nil, apperrors.NewValidationError(apperrors.FieldError{Field: "days", Message: "must be positive"})
	}
	if req.SetExpiry == nil {
		return nil, nil
	}
	expiry, err := parseExpiry(*req.SetExpiry)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "setExpiry",
			Message: "must be an RFC3339 timestamp or a YYYY-MM-DD date",
		})
	}
	return &expiry, nil
}

func parseExpiry(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	// a date-only expiry lasts through that whole day
	return t.Add(24*time.Hour - time.Nanosecond), nil
}

func (s *publisherService) SetSuspended(ctx context.Context, publisherID string, suspended bool, actorID string) (*dto.PublisherResponse, error) {
	publisher, err := s.publisherRepo.FindPublisherByID(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	publisher.Suspended = suspended
	s.LogInfo(ctx, "Publisher suspension changed",
		slog.String("publisher_id", publisherID),
		slog.Bool("suspended", suspended),
		slog.String("admin_id", actorID))
	return s.persist(ctx, publisher, actorID)
}

func (s *publisherService) SetServicePlan(ctx context.Context, publisherID string, active bool, actorID string) (*dto.PublisherResponse, error) {
	publisher, err := s.publisherRepo.FindPublisherByID(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	publisher.ServicePlanActive = active
	s.LogInfo(ctx, "Service plan changed",
		slog.String("publisher_id", publisherID),
		slog.Bool("active", active),
		slog.String("admin_id", actorID))
	return s.persist(ctx, publisher, actorID)
}

func (s *publisherService) SetBlocked(ctx context.Context, publisherID string, blocked bool, actorID string) (*dto.PublisherResponse, error) {
	publisher, err := s.publisherRepo.FindPublisherByID(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	publisher.Blocked = blocked
	s.LogInfo(ctx, "Publisher block changed",
		slog.String("publisher_id", publisherID),
		slog.Bool("blocked", blocked),
		slog.String("admin_id", actorID))
	return s.persist(ctx, publisher, actorID)
}

// persist stamps the audit fields, writes the publisher and returns the
// response with its freshly computed entitlement.
func (s *publisherService) persist(ctx context.Context, publisher *domain.Publisher, actorID string) (*dto.PublisherResponse, error) {
	now := time.Now()
	publisher.LastUpdatedAt = now
	publisher.LastUpdatedBy = actorID
	if err := s.publisherRepo.UpdatePublisher(ctx, *publisher); err != nil {
		s.LogError(ctx, err, "Failed to update publisher", slog.String("publisher_id", publisher.PublisherID))
		return nil, fmt.Errorf("failed to update publisher: %w", err)
	}
	resp := dto.ToPublisherResponse(*publisher, now)
	return &resp, nil
}
