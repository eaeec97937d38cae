package repositories

import (
	"context"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

// TaxonomyFilter narrows a registry listing. ActiveOnly nil means all
// entries regardless of status.
type TaxonomyFilter struct {
	ActiveOnly *bool
	Query      string // case-insensitive substring over name
}

// TaxonomyReader defines read operations over taxonomy registries.
// Registries are small enumerations, so listing is not paginated.
type TaxonomyReader interface {
	// FindEntryByID retrieves an entry of the given kind or apperrors.ErrNotFound.
	FindEntryByID(ctx context.Context, kind domain.RegistryKind, entryID string) (*domain.TaxonomyEntry, error)

	// FindEntries lists entries of the given kind matching the filter,
	// ordered by name.
	FindEntries(ctx context.Context, kind domain.RegistryKind, filter TaxonomyFilter) ([]domain.TaxonomyEntry, error)

	// EntryNameExists reports whether another entry of the kind already uses
	// the name, compared case-insensitively after trimming. excludeID skips
	// the entry being renamed.
	EntryNameExists(ctx context.Context, kind domain.RegistryKind, name string, excludeID string) (bool, error)
}

// TaxonomyWriter defines write operations over taxonomy registries.
type TaxonomyWriter interface {
	// SaveEntry persists a new entry.
	SaveEntry(ctx context.Context, entry domain.TaxonomyEntry) error

	// UpdateEntry replaces the mutable fields of an entry.
	UpdateEntry(ctx context.Context, entry domain.TaxonomyEntry) error

	// DeleteEntry removes an entry, apperrors.ErrNotFound if absent.
	// Rows referencing the entry keep their (now dangling) reference.
	DeleteEntry(ctx context.Context, kind domain.RegistryKind, entryID string) error
}

// TaxonomyRepositoryFacade combines all taxonomy repository interfaces.
type TaxonomyRepositoryFacade interface {
	TaxonomyReader
	TaxonomyWriter
}
