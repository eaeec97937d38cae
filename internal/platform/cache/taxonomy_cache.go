package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
)

const (
	taxonomyKeyPrefix = "taxonomy:active:"
	taxonomyTTL       = 10 * time.Minute
)

// CachedTaxonomyRepository decorates a taxonomy repository with a Redis
// cache over the hot path: the full active-entry list each registry serves
// to dropdowns. Everything else passes through, and any write drops the
// kind's cached list.
type CachedTaxonomyRepository struct {
	next   portsrepo.TaxonomyRepositoryFacade
	client *redis.Client
	logger *slog.Logger
}

var _ portsrepo.TaxonomyRepositoryFacade = (*CachedTaxonomyRepository)(nil)

// NewCachedTaxonomyRepository connects to Redis and wraps the repository.
// A failed ping fails construction rather than serving dead cache calls.
func NewCachedTaxonomyRepository(ctx context.Context, address string, next portsrepo.TaxonomyRepositoryFacade, logger *slog.Logger) (*CachedTaxonomyRepository, error) {
	client := redis.NewClient(&redis.Options{Addr: address})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", address, err)
	}
	return &CachedTaxonomyRepository{next: next, client: client, logger: logger}, nil
}

func cacheKey(kind domain.RegistryKind) string {
	return taxonomyKeyPrefix + string(kind)
}

// cacheable reports whether the filter matches the one list worth caching.
func cacheable(filter portsrepo.TaxonomyFilter) bool {
	return filter.Query == "" && filter.ActiveOnly != nil && *filter.ActiveOnly
}

func (r *CachedTaxonomyRepository) FindEntries(ctx context.Context, kind domain.RegistryKind, filter portsrepo.TaxonomyFilter) ([]domain.TaxonomyEntry, error) {
	if !cacheable(filter) {
		return r.next.FindEntries(ctx, kind, filter)
	}

	key := cacheKey(kind)
	cached, err := r.client.Get(ctx, key).Result()
	if err == nil {
		var entries []domain.TaxonomyEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			return entries, nil
		}
		// A corrupt value is dropped and refetched.
		r.client.Del(ctx, key)
	} else if err != redis.Nil {
		r.logger.WarnContext(ctx, "Redis read failed, falling through to database", slog.String("key", key), slog.String("error", err.Error()))
	}

	entries, err := r.next.FindEntries(ctx, kind, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entries); err == nil {
		if err := r.client.Set(ctx, key, data, taxonomyTTL).Err(); err != nil {
			r.logger.WarnContext(ctx, "Redis write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return entries, nil
}

func (r *CachedTaxonomyRepository) FindEntryByID(ctx context.Context, kind domain.RegistryKind, entryID string) (*domain.TaxonomyEntry, error) {
	return r.next.FindEntryByID(ctx, kind, entryID)
}

func (r *CachedTaxonomyRepository) EntryNameExists(ctx context.Context, kind domain.RegistryKind, name string, excludeID string) (bool, error) {
	return r.next.EntryNameExists(ctx, kind, name, excludeID)
}

func (r *CachedTaxonomyRepository) SaveEntry(ctx context.Context, entry domain.TaxonomyEntry) error {
	if err := r.next.SaveEntry(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx, entry.Kind)
	return nil
}

func (r *CachedTaxonomyRepository) UpdateEntry(ctx context.Context, entry domain.TaxonomyEntry) error {
	if err := r.next.UpdateEntry(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx, entry.Kind)
	return nil
}

func (r *CachedTaxonomyRepository) DeleteEntry(ctx context.Context, kind domain.RegistryKind, entryID string) error {
	if err := r.next.DeleteEntry(ctx, kind, entryID); err != nil {
		return err
	}
	r.invalidate(ctx, kind)
	return nil
}

func (r *CachedTaxonomyRepository) invalidate(ctx context.Context, kind domain.RegistryKind) {
	if err := r.client.Del(ctx, cacheKey(kind)).Err(); err != nil {
		r.logger.WarnContext(ctx, "Redis invalidation failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
	}
}
