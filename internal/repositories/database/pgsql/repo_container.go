package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	return portsrepo.RepositoryProvider{
		ListingRepo:   newPgxListingRepository(dbPool),
		PublisherRepo: newPgxPublisherRepository(dbPool, userRepo),
		UserRepo:      userRepo,
		PricingRepo:   newPgxPricingRepository(dbPool),
		TaxonomyRepo:  newPgxTaxonomyRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}
