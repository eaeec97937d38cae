package services

import (
	"context"
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
)

// taxonomyService implements the TaxonomySvcFacade interface. Caching is a
// repository concern: hand the constructor a caching decorator and both the
// read and invalidation paths come with it.
type taxonomyService struct {
	BaseService
	taxonomyRepo portsrepo.TaxonomyRepositoryFacade
}

// NewTaxonomyService creates a new taxonomy registry service.
func NewTaxonomyService(taxonomyRepo portsrepo.TaxonomyRepositoryFacade) portssvc.TaxonomySvcFacade {
	return &taxonomyService{taxonomyRepo: taxonomyRepo}
}

// Ensure taxonomyService implements the TaxonomySvcFacade interface.
var _ portssvc.TaxonomySvcFacade = (*taxonomyService)(nil)

func (s *taxonomyService) ListEntries(ctx context.Context, kind domain.RegistryKind, filter portsrepo.TaxonomyFilter) ([]domain.TaxonomyEntry, error) {
	if !kind.IsValid() {
		return nil, apperrors.ErrNotFound
	}
	entries, err := s.taxonomyRepo.FindEntries(ctx, kind, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list registry entries", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to list registry entries: %w", err)
	}
	return entries, nil
}

func (s *taxonomyService) ListActiveEntries(ctx context.Context, kind domain.RegistryKind) ([]domain.TaxonomyEntry, error) {
	if !kind.IsValid() {
		return nil, apperrors.ErrNotFound
	}
	active := true
	entries, err := s.taxonomyRepo.FindEntries(ctx, kind, portsrepo.TaxonomyFilter{ActiveOnly: &active})
	if err != nil {
		s.LogError(ctx, err, "Failed to list active registry entries", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to list active registry entries: %w", err)
	}
	return entries, nil
}

func (s *taxonomyService) CreateEntry(ctx context.Context, kind domain.RegistryKind, req dto.TaxonomyEntryRequest, actorID string) (*domain.TaxonomyEntry, error) {
	if !kind.IsValid() {
		return nil, apperrors.ErrNotFound
	}
	name, err := s.checkName(ctx, kind, req.Name, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.TaxonomyEntry{
		EntryID:     uuid.NewString(),
		Kind:        kind,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.taxonomyRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save registry entry", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to save registry entry: %w", err)
	}
	s.LogInfo(ctx, "Registry entry created",
		slog.String("kind", string(kind)),
		slog.String("entry_id", entry.EntryID),
		slog.String("name", name))
	return &entry, nil
}

func (s *taxonomyService) UpdateEntry(ctx context.Context, kind domain.RegistryKind, entryID string, req dto.TaxonomyEntryRequest, actorID string) (*domain.TaxonomyEntry, error) {
	entry, err := s.loadEntry(ctx, kind, entryID)
	if err != nil {
		return nil, err
	}
	name, err := s.checkName(ctx, kind, req.Name, entryID)
	if err != nil {
		return nil, err
	}

	entry.Name = name
	entry.Description = strings.TrimSpace(req.Description)
	return s.persistEntry(ctx, entry, actorID)
}

func (s *taxonomyService) SetEntryActive(ctx context.Context, kind domain.RegistryKind, entryID string, active bool, actorID string) (*domain.TaxonomyEntry, error) {
	entry, err := s.loadEntry(ctx, kind, entryID)
	if err != nil {
		return nil, err
	}
	entry.IsActive = active
	s.LogInfo(ctx, "Registry entry active flag changed",
		slog.String("kind", string(kind)),
		slog.String("entry_id", entryID),
		slog.Bool("active", active))
	return s.persistEntry(ctx, entry, actorID)
}

func (s *taxonomyService) DeleteEntry(ctx context.Context, kind domain.RegistryKind, entryID string) error {
	if !kind.IsValid() {
		return apperrors.ErrNotFound
	}
	if err := s.taxonomyRepo.DeleteEntry(ctx, kind, entryID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Registry entry deleted",
		slog.String("kind", string(kind)),
		slog.String("entry_id", entryID))
	return nil
}

func (s *taxonomyService) loadEntry(ctx context.Context, kind domain.RegistryKind, entryID string) (*domain.TaxonomyEntry, error) {
	if !kind.IsValid() {
		return nil, apperrors.ErrNotFound
	}
	return s.taxonomyRepo.FindEntryByID(ctx, kind, entryID)
}

// checkName trims the proposed name and enforces non-blankness plus
// case-insensitive uniqueness within the registry.
func (s *taxonomyService) checkName(ctx context.Context, kind domain.RegistryKind, name string, excludeID string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperrors.NewValidationError(apperrors.FieldError{
			Field:   "name",
			Message: "name must not be blank",
		})
	}
	exists, err := s.taxonomyRepo.EntryNameExists(ctx, kind, trimmed, excludeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check registry name uniqueness", slog.String("kind", string(kind)))
		return "", fmt.Errorf("failed to check name uniqueness: %w", err)
	}
	if exists {
		return "", fmt.Errorf("entry named %q already exists in %s: %w", trimmed, kind, apperrors.ErrDuplicate)
	}
	return trimmed, nil
}

func (s *taxonomyService) persistEntry(ctx context.Context, entry *domain.TaxonomyEntry, actorID string) (*domain.TaxonomyEntry, error) {
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actorID
	if err := s.taxonomyRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update registry entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to update registry entry: %w", err)
	}
	return entry, nil
}
