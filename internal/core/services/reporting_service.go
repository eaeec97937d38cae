package services

import (
	"context"
	"fmt"
	"time"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
)

// reportingService implements the ReportingSvcFacade interface.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	publisherRepo portsrepo.PublisherReader
}

// NewReportingService creates a new dashboard aggregation service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, publisherRepo portsrepo.PublisherReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		publisherRepo: publisherRepo,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface.
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) AdminDashboard(ctx context.Context) (*portssvc.AdminDashboard, error) {
	byStatus, err := s.reportingRepo.CountListingsByStatus(ctx, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to count listings by status")
		return nil, fmt.Errorf("failed to build admin dashboard: %w", err)
	}
	byType, err := s.reportingRepo.CountListingsByType(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count listings by type")
		return nil, fmt.Errorf("failed to build admin dashboard: %w", err)
	}
	publishers, err := s.reportingRepo.CountPublishers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count publishers")
		return nil, fmt.Errorf("failed to build admin dashboard: %w", err)
	}
	activeSubs, err := s.reportingRepo.CountActiveSubscriptions(ctx, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to count active subscriptions")
		return nil, fmt.Errorf("failed to build admin dashboard: %w", err)
	}
	return &portssvc.AdminDashboard{
		ListingsByStatus:    byStatus,
		ListingsByType:      byType,
		TotalPublishers:     publishers,
		ActiveSubscriptions: activeSubs,
	}, nil
}

func (s *reportingService) PublisherDashboard(ctx context.Context, publisherID string) (*portssvc.PublisherDashboard, error) {
	publisher, err := s.publisherRepo.FindPublisherByID(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reportingRepo.CountListingsByStatus(ctx, publisherID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count publisher listings by status")
		return nil, fmt.Errorf("failed to build publisher dashboard: %w", err)
	}
	return &portssvc.PublisherDashboard{
		ListingsByStatus: byStatus,
		Entitlement:      domain.ComputeEntitlement(*publisher, time.Now()),
		ServicePlan:      publisher.ServicePlanActive,
	}, nil
}
