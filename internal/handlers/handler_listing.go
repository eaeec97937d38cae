package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/middleware"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// listingHandler serves both the publisher dashboard listing CRUD and the
// admin moderation queue. Publisher routes scope every call to the caller's
// own publisher profile; admin routes see all publishers.
type listingHandler struct {
	listingService   portssvc.ListingSvcFacade
	publisherService portssvc.PublisherSvcFacade
}

func newListingHandler(ls portssvc.ListingSvcFacade, ps portssvc.PublisherSvcFacade) *listingHandler {
	return &listingHandler{
		listingService:   ls,
		publisherService: ps,
	}
}

// registerPublisherListingRoutes registers the publisher-scoped listing CRUD.
func registerPublisherListingRoutes(rg *gin.RouterGroup, ls portssvc.ListingSvcFacade, ps portssvc.PublisherSvcFacade) {
	h := newListingHandler(ls, ps)

	listings := rg.Group("/publisher/listings")
	{
		listings.GET("", h.listOwnListings)
		listings.POST("", h.createListing)
		listings.GET("/:id", h.getOwnListing)
		listings.PUT("/:id", h.updateListing)
		listings.DELETE("/:id", h.deleteListing)
		listings.POST("/:id/activate", h.activateListing)
		listings.POST("/:id/deactivate", h.deactivateListing)
	}
}

// registerAdminListingRoutes registers the moderation queue.
func registerAdminListingRoutes(rg *gin.RouterGroup, ls portssvc.ListingSvcFacade, ps portssvc.PublisherSvcFacade) {
	h := newListingHandler(ls, ps)

	listings := rg.Group("/listings")
	{
		listings.GET("", h.listAllListings)
		listings.GET("/:id", h.getListing)
		listings.POST("/:id/approve", h.approveListing)
		listings.POST("/:id/reject", h.rejectListing)
	}
}

// callerPublisher resolves the caller's publisher profile. Responds and
// returns nil when the caller has no profile.
func (h *listingHandler) callerPublisher(c *gin.Context) *dto.PublisherResponse {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil
	}

	publisher, err := h.publisherService.GetPublisherByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to resolve publisher profile")
		return nil
	}
	return publisher
}

// listingFilterFromParams maps query parameters onto the repository filter.
func listingFilterFromParams(params dto.ListListingsParams, publisherID string) (portsrepo.ListingFilter, error) {
	filter := portsrepo.ListingFilter{
		PublisherID: publisherID,
		Query:       params.Query,
		Sort:        portsrepo.SortNewest,
	}
	if params.Sort == string(portsrepo.SortOldest) {
		filter.Sort = portsrepo.SortOldest
	}
	if params.Status != "" {
		status := domain.ListingStatus(params.Status)
		filter.Status = &status
	}
	if params.TypeTag != "" {
		typeTag := domain.ListingType(params.TypeTag)
		filter.Type = &typeTag
	}
	if params.DateFrom != "" {
		from, err := time.Parse("2006-01-02", params.DateFrom)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &from
	}
	if params.DateTo != "" {
		to, err := time.Parse("2006-01-02", params.DateTo)
		if err != nil {
			return filter, err
		}
		// dateTo is inclusive of the whole day
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &to
	}
	return filter, nil
}

func (h *listingHandler) listWithScope(c *gin.Context, publisherID string) {
	var params dto.ListListingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	filter, err := listingFilterFromParams(params, publisherID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date filter, expected YYYY-MM-DD"})
		return
	}

	page, err := h.listingService.ListListings(c.Request.Context(), filter, pagination.Normalize(params.Page, params.Limit))
	if err != nil {
		respondError(c, err, "Failed to list listings")
		return
	}
	c.JSON(http.StatusOK, page)
}

// listOwnListings godoc
// @Summary List own listings
// @Description Lists the caller's listings with status/type/text/date filters.
// @Tags publisher-listings
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param typeTag query string false "Filter by listing type"
// @Param q query string false "Substring over title/location/description"
// @Param dateFrom query string false "Created on or after (YYYY-MM-DD)"
// @Param dateTo query string false "Created on or before (YYYY-MM-DD)"
// @Param sort query string false "newest or oldest" default(newest)
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} pagination.Page[domain.Listing]
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /publisher/listings [get]
func (h *listingHandler) listOwnListings(c *gin.Context) {
	publisher := h.callerPublisher(c)
	if publisher == nil {
		return
	}
	h.listWithScope(c, publisher.PublisherID)
}

// createListing godoc
// @Summary Submit a new listing
// @Description Creates a listing for review. The persisted status is always pending.
// @Tags publisher-listings
// @Accept json
// @Produce json
// @Param listing body dto.CreateListingRequest true "Listing submission"
// @Success 201 {object} domain.Listing
// @Failure 400 {object} ErrorResponse "Payload failed field validation"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /publisher/listings [post]
func (h *listingHandler) createListing(c *gin.Context) {
	publisher := h.callerPublisher(c)
	if publisher == nil {
		return
	}

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), publisher.PublisherID, req.TypeTag, req.Payload, publisher.UserID)
	if err != nil {
		respondError(c, err, "Failed to create listing")
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// getOwnListing godoc
// @Summary Get one of the caller's listings
// @Tags publisher-listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} dto.ListingDetail
// @Failure 403 {object} ErrorResponse "Listing belongs to another publisher"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /publisher/listings/{id} [get]
func (h *listingHandler) getOwnListing(c *gin.Context) {
	publisher := h.callerPublisher(c)
	if publisher == nil {
		return
	}

	detail, err := h.listingService.GetListingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve listing")
		return
	}
	if detail.PublisherID != publisher.PublisherID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// updateListing godoc
// @Summary Update a listing
// @Description Replaces the payload. Updating an already decided listing resubmits it for review.
// @Tags publisher-listings
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param listing body dto.UpdateListingRequest true "New payload"
// @Success 200 {object} domain.Listing
// @Failure 400 {object} ErrorResponse "Payload failed field validation"
// @Failure 403 {object} ErrorResponse "Listing belongs to another publisher"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /publisher/listings/{id} [put]
func (h *listingHandler) updateListing(c *gin.Context) {
	publisher := h.callerPublisher(c)
	if publisher == nil {
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), c.Param("id"), publisher.PublisherID, req.Payload, publisher.UserID)
	if err != nil {
		respondError(c, err, "Failed to update listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// deleteListing godoc
// @Summary Delete a listing
// @Tags publisher-listings
// @Param id path string true "Listing ID"
// @Success 204 "Deleted"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /publisher/listings/{id} [delete]
func (h *listingHandler) deleteListing(c *gin.Context) {
	publisher := h.callerPublisher(c)
	if publisher == nil {
		return
	}

	if err := h.listingService.DeleteListing(c.Request.Context(), c.Param("id"), publisher.PublisherID); err != nil {
		respondError(c, err, "Failed to delete listing")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *listingHandler) setListingActive(c *gin.Context, isActive bool) {
	publisher := h.callerPublisher(c)
	if publisher == nil {
		return
	}

	err := h.listingService.SetListingActive(c.Request.Context(), c.Param("id"), publisher.PublisherID, isActive, publisher.UserID)
	if err != nil {
		respondError(c, err, "Failed to update listing visibility")
		return
	}
	c.Status(http.StatusNoContent)
}

// activateListing godoc
// @Summary Make a listing visible
// @Description Visibility is independent of the moderation status.
// @Tags publisher-listings
// @Param id path string true "Listing ID"
// @Success 204 "Activated"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /publisher/listings/{id}/activate [post]
func (h *listingHandler) activateListing(c *gin.Context) {
	h.setListingActive(c, true)
}

// deactivateListing godoc
// @Summary Hide a listing
// @Tags publisher-listings
// @Param id path string true "Listing ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /publisher/listings/{id}/deactivate [post]
func (h *listingHandler) deactivateListing(c *gin.Context) {
	h.setListingActive(c, false)
}

// listAllListings godoc
// @Summary List listings across all publishers
// @Tags admin-listings
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param typeTag query string false "Filter by listing type"
// @Param q query string false "Substring over title/location/description"
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} pagination.Page[domain.Listing]
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/listings [get]
func (h *listingHandler) listAllListings(c *gin.Context) {
	h.listWithScope(c, "")
}

// getListing godoc
// @Summary Get any listing with publisher details
// @Tags admin-listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} dto.ListingDetail
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/listings/{id} [get]
func (h *listingHandler) getListing(c *gin.Context) {
	detail, err := h.listingService.GetListingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve listing")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// approveListing godoc
// @Summary Approve a pending listing
// @Description Approves and notifies the publisher. A concurrent decision on the same listing returns 409.
// @Tags admin-listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} domain.Listing
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Listing is no longer pending"
// @Security BearerAuth
// @Router /admin/listings/{id}/approve [post]
func (h *listingHandler) approveListing(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	listing, err := h.listingService.ApproveListing(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		respondError(c, err, "Failed to approve listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// rejectListing godoc
// @Summary Reject a pending listing
// @Description Rejects with a mandatory reason and notifies the publisher.
// @Tags admin-listings
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param rejection body dto.RejectListingRequest true "Rejection reason"
// @Success 200 {object} domain.Listing
// @Failure 400 {object} ErrorResponse "Blank reason"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Listing is no longer pending"
// @Security BearerAuth
// @Router /admin/listings/{id}/reject [post]
func (h *listingHandler) rejectListing(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RejectListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	listing, err := h.listingService.RejectListing(c.Request.Context(), c.Param("id"), req.Reason, actorID)
	if err != nil {
		respondError(c, err, "Failed to reject listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}
