package services

import (
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/platform/config"
)

// ContainerOption injects the external collaborators that have their own
// infrastructure (payments, mail, object storage, caching) into the container.
type ContainerOption func(*containerDeps)

type containerDeps struct {
	payments portssvc.PaymentProvider
	mailer   portssvc.Mailer
	storage  portssvc.FileStorage
}

// WithPaymentProvider wires the payment gateway used by the purchase flow.
func WithPaymentProvider(p portssvc.PaymentProvider) ContainerOption {
	return func(d *containerDeps) { d.payments = p }
}

// WithDecisionMailer wires the moderation decision mailer.
func WithDecisionMailer(m portssvc.Mailer) ContainerOption {
	return func(d *containerDeps) { d.mailer = m }
}

// WithFileStorage wires the object storage for listing media.
func WithFileStorage(fs portssvc.FileStorage) ContainerOption {
	return func(d *containerDeps) { d.storage = fs }
}

// NewServiceContainer creates a service container with properly initialized
// dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	var deps containerDeps
	for _, option := range options {
		option(&deps)
	}

	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Publisher = NewPublisherService(repos.PublisherRepo, repos.UserRepo)

	listingOpts := []ListingServiceOption{WithUserReader(repos.UserRepo)}
	if deps.mailer != nil {
		listingOpts = append(listingOpts, WithMailer(deps.mailer))
	}
	container.Listing = NewListingService(repos.ListingRepo, repos.PublisherRepo, listingOpts...)

	container.Pricing = NewPricingService(repos.PricingRepo)
	container.Subscription = NewSubscriptionService(repos.PricingRepo, repos.PublisherRepo, deps.payments)
	container.Taxonomy = NewTaxonomyService(repos.TaxonomyRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.PublisherRepo)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.Storage = deps.storage

	return container
}
