package repositories

import (
	"context"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// PublisherReader defines read operations for publisher profiles.
type PublisherReader interface {
	// FindPublisherByID retrieves a publisher or apperrors.ErrNotFound.
	FindPublisherByID(ctx context.Context, publisherID string) (*domain.Publisher, error)

	// FindPublisherByUserID retrieves the publisher profile owned by a user.
	FindPublisherByUserID(ctx context.Context, userID string) (*domain.Publisher, error)

	// FindPublishers retrieves one page of publishers, optionally filtered by
	// a case-insensitive substring over company name, plus the total count.
	FindPublishers(ctx context.Context, query string, params pagination.Params) ([]domain.Publisher, int, error)
}

// PublisherWriter defines write operations for publisher profiles. The
// persisted subscription status column is a cache: implementations derive it
// from the expiry and suspension fields on every write.
type PublisherWriter interface {
	// SavePublisher persists a new publisher profile.
	SavePublisher(ctx context.Context, publisher domain.Publisher) error

	// SavePublisherWithUser persists a new user account together with its
	// publisher profile in a single transaction. Neither row survives if the
	// other insert fails.
	SavePublisherWithUser(ctx context.Context, user domain.User, publisher domain.Publisher) error

	// UpdatePublisher replaces the mutable fields of a publisher.
	UpdatePublisher(ctx context.Context, publisher domain.Publisher) error
}

// PublisherRepositoryFacade combines all publisher repository interfaces.
type PublisherRepositoryFacade interface {
	PublisherReader
	PublisherWriter
}
