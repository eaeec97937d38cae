package services

import (
	"context"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	"github.com/unlockhq/unlock-backend/internal/dto"
)

// TaxonomySvcFacade manages the admin-editable enumeration registries. All
// operations are parameterized by registry kind; an unknown kind fails with
// apperrors.ErrNotFound.
type TaxonomySvcFacade interface {
	// ListEntries lists registry entries matching the filter.
	ListEntries(ctx context.Context, kind domain.RegistryKind, filter portsrepo.TaxonomyFilter) ([]domain.TaxonomyEntry, error)

	// ListActiveEntries lists only active entries, the option source for
	// dropdowns. Implementations may serve this from a cache that is
	// invalidated on every registry mutation.
	ListActiveEntries(ctx context.Context, kind domain.RegistryKind) ([]domain.TaxonomyEntry, error)

	// CreateEntry adds an entry. Names must be non-blank after trimming and
	// unique per registry case-insensitively.
	CreateEntry(ctx context.Context, kind domain.RegistryKind, req dto.TaxonomyEntryRequest, actorID string) (*domain.TaxonomyEntry, error)

	// UpdateEntry renames or re-describes an entry under the same constraints.
	UpdateEntry(ctx context.Context, kind domain.RegistryKind, entryID string, req dto.TaxonomyEntryRequest, actorID string) (*domain.TaxonomyEntry, error)

	// SetEntryActive soft-retires or restores an entry. Existing references
	// are unaffected.
	SetEntryActive(ctx context.Context, kind domain.RegistryKind, entryID string, active bool, actorID string) (*domain.TaxonomyEntry, error)

	// DeleteEntry removes an entry outright.
	DeleteEntry(ctx context.Context, kind domain.RegistryKind, entryID string) error
}
