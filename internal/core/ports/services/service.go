package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers are wired against.
type ServiceContainer struct {
	Listing      ListingSvcFacade
	Publisher    PublisherSvcFacade
	Subscription SubscriptionSvcFacade
	Pricing      PricingSvcFacade
	Taxonomy     TaxonomySvcFacade
	User         UserSvcFacade
	Reporting    ReportingSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
	Storage      FileStorage
}
