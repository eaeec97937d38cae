package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unlockhq/unlock-backend/internal/apperrors"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	"github.com/unlockhq/unlock-backend/internal/models"
)

type PgxTaxonomyRepository struct {
	pool *pgxpool.Pool
}

// newPgxTaxonomyRepository creates a new repository for taxonomy registries.
func newPgxTaxonomyRepository(pool *pgxpool.Pool) portsrepo.TaxonomyRepositoryFacade {
	return &PgxTaxonomyRepository{pool: pool}
}

// Ensure PgxTaxonomyRepository implements portsrepo.TaxonomyRepositoryFacade
var _ portsrepo.TaxonomyRepositoryFacade = (*PgxTaxonomyRepository)(nil)

func toModelTaxonomyEntry(d domain.TaxonomyEntry) models.TaxonomyEntry {
	return models.TaxonomyEntry{
		EntryID:     d.EntryID,
		Kind:        string(d.Kind),
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTaxonomyEntry(m models.TaxonomyEntry) domain.TaxonomyEntry {
	return domain.TaxonomyEntry{
		EntryID:     m.EntryID,
		Kind:        domain.RegistryKind(m.Kind),
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const taxonomyColumns = `entry_id, kind, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanTaxonomyEntry(row pgx.Row) (domain.TaxonomyEntry, error) {
	var m models.TaxonomyEntry
	err := row.Scan(
		&m.EntryID,
		&m.Kind,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.TaxonomyEntry{}, err
	}
	return toDomainTaxonomyEntry(m), nil
}

// FindEntryByID retrieves an entry of the given kind.
func (r *PgxTaxonomyRepository) FindEntryByID(ctx context.Context, kind domain.RegistryKind, entryID string) (*domain.TaxonomyEntry, error) {
	query := `SELECT ` + taxonomyColumns + ` FROM taxonomy_entries WHERE kind = $1 AND entry_id = $2;`

	entry, err := scanTaxonomyEntry(r.pool.QueryRow(ctx, query, string(kind), entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s entry %s: %w", kind, entryID, err)
	}
	return &entry, nil
}

// FindEntries lists entries of the given kind matching the filter, by name.
func (r *PgxTaxonomyRepository) FindEntries(ctx context.Context, kind domain.RegistryKind, filter portsrepo.TaxonomyFilter) ([]domain.TaxonomyEntry, error) {
	conditions := []string{"kind = $1"}
	args := []any{string(kind)}

	if filter.ActiveOnly != nil {
		args = append(args, *filter.ActiveOnly)
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM taxonomy_entries WHERE %s ORDER BY name ASC",
		taxonomyColumns, strings.Join(conditions, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s entries: %w", kind, err)
	}
	defer rows.Close()

	var entries []domain.TaxonomyEntry
	for rows.Next() {
		entry, err := scanTaxonomyEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s entry row: %w", kind, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s entry rows: %w", kind, err)
	}
	return entries, nil
}

// EntryNameExists reports whether another entry of the kind already uses the
// name, compared case-insensitively after trimming.
func (r *PgxTaxonomyRepository) EntryNameExists(ctx context.Context, kind domain.RegistryKind, name string, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM taxonomy_entries
			WHERE kind = $1 AND LOWER(TRIM(name)) = LOWER(TRIM($2)) AND entry_id <> $3
		);
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, string(kind), name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s entry name: %w", kind, err)
	}
	return exists, nil
}

// SaveEntry persists a new entry.
func (r *PgxTaxonomyRepository) SaveEntry(ctx context.Context, entry domain.TaxonomyEntry) error {
	m := toModelTaxonomyEntry(entry)

	query := `
		INSERT INTO taxonomy_entries (` + taxonomyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.EntryID,
		m.Kind,
		m.Name,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry named %q already exists in %s", apperrors.ErrDuplicate, m.Name, m.Kind)
		}
		return fmt.Errorf("failed to save %s entry %s: %w", m.Kind, m.EntryID, err)
	}
	return nil
}

// UpdateEntry replaces the mutable fields of an entry.
func (r *PgxTaxonomyRepository) UpdateEntry(ctx context.Context, entry domain.TaxonomyEntry) error {
	m := toModelTaxonomyEntry(entry)

	query := `
		UPDATE taxonomy_entries
		SET name = $3, description = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE kind = $1 AND entry_id = $2;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.Kind,
		m.EntryID,
		m.Name,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry named %q already exists in %s", apperrors.ErrDuplicate, m.Name, m.Kind)
		}
		return fmt.Errorf("failed to update %s entry %s: %w", m.Kind, m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes an entry outright.
func (r *PgxTaxonomyRepository) DeleteEntry(ctx context.Context, kind domain.RegistryKind, entryID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM taxonomy_entries WHERE kind = $1 AND entry_id = $2;`, string(kind), entryID)
	if err != nil {
		return fmt.Errorf("failed to delete %s entry %s: %w", kind, entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
