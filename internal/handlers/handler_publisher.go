package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/middleware"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// publisherHandler serves the publisher's own profile and the admin
// publisher management surface.
type publisherHandler struct {
	publisherService portssvc.PublisherSvcFacade
}

func newPublisherHandler(ps portssvc.PublisherSvcFacade) *publisherHandler {
	return &publisherHandler{publisherService: ps}
}

// registerPublisherProfileRoutes registers the publisher's own profile routes.
func registerPublisherProfileRoutes(rg *gin.RouterGroup, ps portssvc.PublisherSvcFacade) {
	h := newPublisherHandler(ps)

	profile := rg.Group("/publisher/profile")
	{
		profile.GET("", h.getOwnProfile)
		profile.PUT("", h.updateOwnProfile)
	}
}

// registerAdminPublisherRoutes registers the admin publisher management routes.
func registerAdminPublisherRoutes(rg *gin.RouterGroup, ps portssvc.PublisherSvcFacade) {
	h := newPublisherHandler(ps)

	publishers := rg.Group("/publishers")
	{
		publishers.GET("", h.listPublishers)
		publishers.GET("/:id", h.getPublisher)
		publishers.POST("/:id/suspend", h.suspendPublisher)
		publishers.POST("/:id/unsuspend", h.unsuspendPublisher)
		publishers.POST("/:id/extend-subscription", h.extendSubscription)
		publishers.POST("/:id/service-plan", h.setServicePlan)
		publishers.POST("/:id/block", h.setBlocked)
	}
}

// getOwnProfile godoc
// @Summary Get own publisher profile
// @Description Returns the caller's profile with the entitlement computed at response time.
// @Tags publisher
// @Produce json
// @Success 200 {object} dto.PublisherResponse
// @Failure 404 {object} ErrorResponse "Caller has no publisher profile"
// @Security BearerAuth
// @Router /publisher/profile [get]
func (h *publisherHandler) getOwnProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	publisher, err := h.publisherService.GetPublisherByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve publisher profile")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

// updateOwnProfile godoc
// @Summary Update own publisher profile
// @Description Updates the organization fields. Omitted fields are left unchanged.
// @Tags publisher
// @Accept json
// @Produce json
// @Param profile body dto.UpdatePublisherRequest true "Profile changes"
// @Success 200 {object} dto.PublisherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /publisher/profile [put]
func (h *publisherHandler) updateOwnProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	current, err := h.publisherService.GetPublisherByUserID(ctx, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve publisher profile")
		return
	}

	updated, err := h.publisherService.UpdatePublisherProfile(ctx, current.PublisherID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update publisher profile")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// listPublishers godoc
// @Summary List publishers
// @Description Lists publishers with their computed entitlements.
// @Tags admin-publishers
// @Produce json
// @Param q query string false "Substring over company name"
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} pagination.Page[dto.PublisherResponse]
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/publishers [get]
func (h *publisherHandler) listPublishers(c *gin.Context) {
	var params dto.ListPublishersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.publisherService.ListPublishers(c.Request.Context(), params.Query, pagination.Normalize(params.Page, params.Limit))
	if err != nil {
		respondError(c, err, "Failed to list publishers")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getPublisher godoc
// @Summary Get a publisher
// @Tags admin-publishers
// @Produce json
// @Param id path string true "Publisher ID"
// @Success 200 {object} dto.PublisherResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/publishers/{id} [get]
func (h *publisherHandler) getPublisher(c *gin.Context) {
	publisher, err := h.publisherService.GetPublisherByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve publisher")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

func (h *publisherHandler) setSuspended(c *gin.Context, suspended bool) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	publisher, err := h.publisherService.SetSuspended(c.Request.Context(), c.Param("id"), suspended, actorID)
	if err != nil {
		respondError(c, err, "Failed to update suspension")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

// suspendPublisher godoc
// @Summary Suspend a publisher
// @Description Suspension overrides any remaining subscription time.
// @Tags admin-publishers
// @Produce json
// @Param id path string true "Publisher ID"
// @Success 200 {object} dto.PublisherResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/publishers/{id}/suspend [post]
func (h *publisherHandler) suspendPublisher(c *gin.Context) {
	h.setSuspended(c, true)
}

// unsuspendPublisher godoc
// @Summary Lift a publisher's suspension
// @Tags admin-publishers
// @Produce json
// @Param id path string true "Publisher ID"
// @Success 200 {object} dto.PublisherResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/publishers/{id}/unsuspend [post]
func (h *publisherHandler) unsuspendPublisher(c *gin.Context) {
	h.setSuspended(c, false)
}

// extendSubscription godoc
// @Summary Extend a publisher's subscription
// @Description Applies exactly one of months, days or setExpiry. Months and days extend from whichever is later of now and the current expiry.
// @Tags admin-publishers
// @Accept json
// @Produce json
// @Param id path string true "Publisher ID"
// @Param extension body dto.ExtendSubscriptionRequest true "Extension"
// @Success 200 {object} dto.PublisherResponse
// @Failure 400 {object} ErrorResponse "None or more than one extension mode"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/publishers/{id}/extend-subscription [post]
func (h *publisherHandler) extendSubscription(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ExtendSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	publisher, err := h.publisherService.ExtendSubscription(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondError(c, err, "Failed to extend subscription")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

// setServicePlan godoc
// @Summary Toggle the service-listing plan
// @Description The service plan is an independent entitlement on top of the base subscription.
// @Tags admin-publishers
// @Accept json
// @Produce json
// @Param id path string true "Publisher ID"
// @Param plan body dto.SetServicePlanRequest true "Plan state"
// @Success 200 {object} dto.PublisherResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/publishers/{id}/service-plan [post]
func (h *publisherHandler) setServicePlan(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SetServicePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	publisher, err := h.publisherService.SetServicePlan(c.Request.Context(), c.Param("id"), req.Active, actorID)
	if err != nil {
		respondError(c, err, "Failed to update service plan")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

// setBlocked godoc
// @Summary Block or unblock a publisher
// @Tags admin-publishers
// @Accept json
// @Produce json
// @Param id path string true "Publisher ID"
// @Param block body dto.SetBlockedRequest true "Block state"
// @Success 200 {object} dto.PublisherResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/publishers/{id}/block [post]
func (h *publisherHandler) setBlocked(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SetBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	publisher, err := h.publisherService.SetBlocked(c.Request.Context(), c.Param("id"), req.Blocked, actorID)
	if err != nil {
		respondError(c, err, "Failed to update block state")
		return
	}
	c.JSON(http.StatusOK, publisher)
}
