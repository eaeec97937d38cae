package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/unlockhq/unlock-backend/cmd/docs"
	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/middleware"
	"github.com/unlockhq/unlock-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public surface: auth, dropdown options, field descriptors, plans.
	registerAuthRoutes(r, cfg, services)
	registerGoogleOAuthRoutes(r, services)
	registerMetaRoutes(r, services.Taxonomy)
	registerSubscriptionPlanRoutes(r, services.Subscription)

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 surface. The group
// carries the JWT middleware; the admin and publisher subgroups add the
// role gate on top.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerSessionRoutes(v1, services)
	registerUserRoutes(v1, services.User)
	registerUploadRoutes(v1, services.Storage)

	publisher := v1.Group("", middleware.RequireRole(domain.RolePublisher, domain.RoleAdmin))
	{
		registerPublisherListingRoutes(publisher, services.Listing, services.Publisher)
		registerPublisherProfileRoutes(publisher, services.Publisher)
		registerPublisherDashboardRoutes(publisher, services.Reporting, services.Publisher)
		registerSubscriptionRoutes(publisher, services.Subscription)
	}

	admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		registerAdminListingRoutes(admin, services.Listing, services.Publisher)
		registerAdminPublisherRoutes(admin, services.Publisher)
		registerAdminUserRoutes(admin, services.User)
		registerAdminPricingRoutes(admin, services.Pricing)
		registerAdminTaxonomyRoutes(admin, services.Taxonomy)
		registerAdminDashboardRoutes(admin, services.Reporting)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
