package services

import (
	"context"
	"errors"
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

// listingService implements the ListingSvcFacade interface.
type listingService struct {
	BaseService
	listingRepo   portsrepo.ListingRepositoryFacade
	publisherRepo portsrepo.PublisherReader
	userRepo      portsrepo.UserReader
	mailer        portssvc.Mailer
}

// ListingServiceOption is a functional option for configuring the listing service.
type ListingServiceOption func(*listingService)

// WithMailer adds the decision-notification mailer dependency.
func WithMailer(m portssvc.Mailer) ListingServiceOption {
	return func(s *listingService) {
		s.mailer = m
	}
}

// WithUserReader adds the user repository used to resolve notification addresses.
func WithUserReader(r portsrepo.UserReader) ListingServiceOption {
	return func(s *listingService) {
		s.userRepo = r
	}
}

// NewListingService creates a new listing service with the provided options.
func NewListingService(listingRepo portsrepo.ListingRepositoryFacade, publisherRepo portsrepo.PublisherReader, options ...ListingServiceOption) portssvc.ListingSvcFacade {
	svc := &listingService{
		listingRepo:   listingRepo,
		publisherRepo: publisherRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure listingService implements the ListingSvcFacade interface.
var _ portssvc.ListingSvcFacade = (*listingService)(nil)

func (s *listingService) CreateListing(ctx context.Context, publisherID string, typeTag domain.ListingType, payload map[string]any, actorID string) (*domain.Listing, error) {
	if !typeTag.IsValid() {
		return nil, apperrors.NewValidationError(apperrors.FieldError{
			Field:   "typeTag",
			Message: fmt.Sprintf("unknown listing type %q", typeTag),
		})
	}
	if err := domain.ValidatePayload(typeTag, payload); err != nil {
		s.LogWarn(ctx, "Listing payload failed validation",
			slog.String("publisher_id", publisherID),
			slog.String("type", string(typeTag)),
			slog.String("error", err.Error()))
		return nil, err
	}

	if _, err := s.publisherRepo.FindPublisherByID(ctx, publisherID); err != nil {
		s.LogError(ctx, err, "Publisher not found for listing creation", slog.String("publisher_id", publisherID))
		return nil, fmt.Errorf("invalid publisher: %w", err)
	}

	now := time.Now()
	listing := domain.Listing{
		ListingID:   uuid.NewString(),
		PublisherID: publisherID,
		Type:        typeTag,
		// status is never taken from the caller
		Status:   domain.StatusPending,
		IsActive: true,
		Payload:  payload,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.listingRepo.SaveListing(ctx, listing); err != nil {
		s.LogError(ctx, err, "Failed to save listing", slog.String("listing_id", listing.ListingID))
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	s.LogInfo(ctx, "Listing created, awaiting review",
		slog.String("listing_id", listing.ListingID),
		slog.String("type", string(typeTag)))
	return &listing, nil
}

func (s *listingService) UpdateListing(ctx context.Context, listingID string, publisherID string, payload map[string]any, actorID string) (*domain.Listing, error) {
	listing, err := s.ownedListing(ctx, listingID, publisherID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidatePayload(listing.Type, payload); err != nil {
		return nil, err
	}

	listing.Payload = payload
	if listing.Resubmit() {
		s.LogInfo(ctx, "Edited listing resubmitted for review", slog.String("listing_id", listingID))
	}
	listing.LastUpdatedAt = time.Now()
	listing.LastUpdatedBy = actorID

	if err := s.listingRepo.UpdateListing(ctx, *listing); err != nil {
		s.LogError(ctx, err, "Failed to update listing", slog.String("listing_id", listingID))
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return listing, nil
}

func (s *listingService) SetListingActive(ctx context.Context, listingID string, publisherID string, isActive bool, actorID string) error {
	if _, err := s.ownedListing(ctx, listingID, publisherID); err != nil {
		return err
	}
	if err := s.listingRepo.SetListingActive(ctx, listingID, isActive, time.Now(), actorID); err != nil {
		s.LogError(ctx, err, "Failed to toggle listing visibility", slog.String("listing_id", listingID))
		return fmt.Errorf("failed to toggle listing visibility: %w", err)
	}
	return nil
}

func (s *listingService) DeleteListing(ctx context.Context, listingID string, publisherID string) error {
	if _, err := s.ownedListing(ctx, listingID, publisherID); err != nil {
		return err
	}
	if err := s.listingRepo.DeleteListing(ctx, listingID); err != nil {
		s.LogError(ctx, err, "Failed to delete listing", slog.String("listing_id", listingID))
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	s.LogInfo(ctx, "Listing deleted", slog.String("listing_id", listingID))
	return nil
}

func (s *listingService) ApproveListing(ctx context.Context, listingID string, actorID string) (*domain.Listing, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if err := listing.Approve(); err != nil {
		s.LogWarn(ctx, "Approve refused",
			slog.String("listing_id", listingID),
			slog.String("status", string(listing.Status)))
		return nil, err
	}
	listing.LastUpdatedAt = time.Now()
	listing.LastUpdatedBy = actorID

	// guarded on status still pending; a concurrent decision surfaces as
	// ErrInvalidTransition, which the client treats as "already handled"
	if err := s.listingRepo.TransitionStatus(ctx, *listing); err != nil {
		s.LogError(ctx, err, "Failed to persist approval", slog.String("listing_id", listingID))
		return nil, err
	}

	s.LogInfo(ctx, "Listing approved", slog.String("listing_id", listingID), slog.String("admin_id", actorID))
	s.notifyDecision(ctx, *listing, "")
	return listing, nil
}

func (s *listingService) RejectListing(ctx context.Context, listingID string, reason string, actorID string) (*domain.Listing, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if err := listing.Reject(reason); err != nil {
		return nil, err
	}
	listing.LastUpdatedAt = time.Now()
	listing.LastUpdatedBy = actorID

	if err := s.listingRepo.TransitionStatus(ctx, *listing); err != nil {
		s.LogError(ctx, err, "Failed to persist rejection", slog.String("listing_id", listingID))
		return nil, err
	}

	s.LogInfo(ctx, "Listing rejected", slog.String("listing_id", listingID), slog.String("admin_id", actorID))
	s.notifyDecision(ctx, *listing, reason)
	return listing, nil
}

func (s *listingService) GetListingByID(ctx context.Context, listingID string) (*dto.ListingDetail, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	detail := &dto.ListingDetail{Listing: *listing}

	publisher, err := s.publisherRepo.FindPublisherByID(ctx, listing.PublisherID)
	if err != nil {
		// the listing is still useful without its publisher block
		s.LogWarn(ctx, "Publisher lookup failed for listing detail",
			slog.String("listing_id", listingID),
			slog.String("publisher_id", listing.PublisherID))
		return detail, nil
	}
	detail.Publisher = dto.PublisherSummary{
		PublisherID: publisher.PublisherID,
		CompanyName: publisher.CompanyName,
	}
	if s.userRepo != nil {
		if owner, err := s.userRepo.FindUserByID(ctx, publisher.UserID); err == nil {
			detail.Publisher.ContactEmail = owner.Email
		}
	}
	return detail, nil
}

func (s *listingService) ListListings(ctx context.Context, filter portsrepo.ListingFilter, params pagination.Params) (pagination.Page[domain.Listing], error) {
	items, total, err := s.listingRepo.FindListings(ctx, filter, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to list listings")
		return pagination.Page[domain.Listing]{}, fmt.Errorf("failed to list listings: %w", err)
	}
	return pagination.NewPage(items, total, params), nil
}

// ownedListing loads a listing and checks the caller's publisher owns it.
func (s *listingService) ownedListing(ctx context.Context, listingID, publisherID string) (*domain.Listing, error) {
	listing, err := s.listingRepo.FindListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.PublisherID != publisherID {
		s.LogWarn(ctx, "Listing ownership check failed",
			slog.String("listing_id", listingID),
			slog.String("publisher_id", publisherID))
		return nil, apperrors.ErrForbidden
	}
	return listing, nil
}

// notifyDecision emails the publisher about a moderation decision.
// Best effort: a mail failure never fails the decision itself.
func (s *listingService) notifyDecision(ctx context.Context, listing domain.Listing, reason string) {
	if s.mailer == nil || s.userRepo == nil {
		return
	}
	publisher, err := s.publisherRepo.FindPublisherByID(ctx, listing.PublisherID)
	if err != nil {
		s.LogWarn(ctx, "Skipping decision mail, publisher lookup failed", slog.String("listing_id", listing.ListingID))
		return
	}
	owner, err := s.userRepo.FindUserByID(ctx, publisher.UserID)
	if err != nil {
		s.LogWarn(ctx, "Skipping decision mail, owner lookup failed", slog.String("listing_id", listing.ListingID))
		return
	}
	if err := s.mailer.SendListingDecision(ctx, owner.Email, listing, reason); err != nil && !errors.Is(err, context.Canceled) {
		s.LogWarn(ctx, "Decision mail delivery failed",
			slog.String("listing_id", listing.ListingID),
			slog.String("error", err.Error()))
	}
}
