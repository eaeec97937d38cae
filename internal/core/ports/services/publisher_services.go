package services

import (
	"context"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// PublisherReaderSvc defines read operations over publisher profiles. Every
// read carries the entitlement computed from the stored fields at call time;
// callers must gate on that, never on the raw cached status.
type PublisherReaderSvc interface {
	// GetPublisherByID retrieves a publisher with its computed entitlement.
	GetPublisherByID(ctx context.Context, publisherID string) (*dto.PublisherResponse, error)

	// GetPublisherByUserID retrieves the profile owned by a user account.
	GetPublisherByUserID(ctx context.Context, userID string) (*dto.PublisherResponse, error)

	// ListPublishers retrieves one page of publishers with computed entitlements.
	ListPublishers(ctx context.Context, query string, params pagination.Params) (pagination.Page[dto.PublisherResponse], error)
}

// PublisherWriterSvc defines profile mutations.
type PublisherWriterSvc interface {
	// RegisterPublisher creates the user account and its publisher profile
	// atomically. A failed profile insert leaves no account behind.
	RegisterPublisher(ctx context.Context, userReq dto.RegisterUserRequest, profileReq dto.CreatePublisherRequest) (*domain.User, *domain.Publisher, error)

	// CreatePublisher creates a publisher profile for an existing account.
	CreatePublisher(ctx context.Context, req dto.CreatePublisherRequest, userID string) (*domain.Publisher, error)

	// UpdatePublisherProfile updates the organization fields of the caller's
	// own profile.
	UpdatePublisherProfile(ctx context.Context, publisherID string, req dto.UpdatePublisherRequest, actorID string) (*dto.PublisherResponse, error)
}

// PublisherEntitlementSvc defines the admin-triggered mutations of the
// subscription fields underlying the entitlement computation.
type PublisherEntitlementSvc interface {
	// ExtendSubscription applies exactly one of months/days/setExpiry.
	// Month and day extensions add to max(now, current expiry).
	ExtendSubscription(ctx context.Context, publisherID string, req dto.ExtendSubscriptionRequest, actorID string) (*dto.PublisherResponse, error)

	// SetSuspended toggles the administrative override independent of expiry.
	SetSuspended(ctx context.Context, publisherID string, suspended bool, actorID string) (*dto.PublisherResponse, error)

	// SetServicePlan toggles the independent yearly add-on entitlement.
	SetServicePlan(ctx context.Context, publisherID string, active bool, actorID string) (*dto.PublisherResponse, error)

	// SetBlocked flips the administrative hard lock on a publisher.
	SetBlocked(ctx context.Context, publisherID string, blocked bool, actorID string) (*dto.PublisherResponse, error)
}

// PublisherSvcFacade combines all publisher service interfaces.
type PublisherSvcFacade interface {
	PublisherReaderSvc
	PublisherWriterSvc
	PublisherEntitlementSvc
}
