package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/middleware"
)

// reportingHandler serves the dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	publisherService portssvc.PublisherSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade, ps portssvc.PublisherSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		publisherService: ps,
	}
}

func registerAdminDashboardRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs, nil)
	rg.GET("/dashboard", h.adminDashboard)
}

func registerPublisherDashboardRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade, ps portssvc.PublisherSvcFacade) {
	h := newReportingHandler(rs, ps)
	rg.GET("/publisher/dashboard", h.publisherDashboard)
}

// adminDashboard godoc
// @Summary Platform-wide dashboard counts
// @Tags dashboards
// @Produce json
// @Success 200 {object} services.AdminDashboard
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *reportingHandler) adminDashboard(c *gin.Context) {
	dashboard, err := h.reportingService.AdminDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// publisherDashboard godoc
// @Summary Own listing counts and entitlement
// @Tags dashboards
// @Produce json
// @Success 200 {object} services.PublisherDashboard
// @Failure 404 {object} ErrorResponse "Caller has no publisher profile"
// @Security BearerAuth
// @Router /publisher/dashboard [get]
func (h *reportingHandler) publisherDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	publisher, err := h.publisherService.GetPublisherByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to resolve publisher profile")
		return
	}

	dashboard, err := h.reportingService.PublisherDashboard(c.Request.Context(), publisher.PublisherID)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
