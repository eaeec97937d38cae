package services

import (
	"context"
	"io"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
)

// StoredFile is the opaque pointer returned by the file storage service.
// Listing payloads reference these; the core never inspects file bytes.
type StoredFile struct {
	URL          string `json:"url"`
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType"`
}

// FileStorage is the external object-storage collaborator for listing
// banners, logos and attachments.
type FileStorage interface {
	// Upload stores the content and returns its opaque pointer.
	Upload(ctx context.Context, fileName string, contentType string, size int64, content io.Reader) (*StoredFile, error)

	// Delete removes a stored object by its public ID.
	Delete(ctx context.Context, publicID string) error
}

// Mailer delivers moderation decision notifications. Delivery failures are
// logged by callers and never fail the triggering write.
type Mailer interface {
	// SendListingDecision notifies the publisher of an approve/reject
	// decision on their listing. reason is empty for approvals.
	SendListingDecision(ctx context.Context, toEmail string, listing domain.Listing, reason string) error
}

// ReportingSvcFacade serves the dashboard aggregates.
type ReportingSvcFacade interface {
	// AdminDashboard aggregates platform-wide counts.
	AdminDashboard(ctx context.Context) (*AdminDashboard, error)

	// PublisherDashboard aggregates one publisher's counts and entitlement.
	PublisherDashboard(ctx context.Context, publisherID string) (*PublisherDashboard, error)
}

// AdminDashboard is the platform-wide aggregate for the admin home screen.
type AdminDashboard struct {
	ListingsByStatus    map[domain.ListingStatus]int `json:"listingsByStatus"`
	ListingsByType      map[domain.ListingType]int   `json:"listingsByType"`
	TotalPublishers     int                          `json:"totalPublishers"`
	ActiveSubscriptions int                          `json:"activeSubscriptions"`
}

// PublisherDashboard is one publisher's aggregate plus computed entitlement.
type PublisherDashboard struct {
	ListingsByStatus map[domain.ListingStatus]int `json:"listingsByStatus"`
	Entitlement      domain.Entitlement           `json:"entitlement"`
	ServicePlan      bool                         `json:"servicePlanActive"`
}
