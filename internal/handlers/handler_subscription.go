package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/middleware"
)

// subscriptionHandler serves the publisher purchase flow.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: ss}
}

// registerSubscriptionPlanRoutes registers the public plan list.
func registerSubscriptionPlanRoutes(r *gin.Engine, ss portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(ss)
	r.GET("/api/v1/subscription/plans", h.getPlans)
}

// registerSubscriptionRoutes registers the publisher checkout routes.
func registerSubscriptionRoutes(rg *gin.RouterGroup, ss portssvc.SubscriptionSvcFacade) {
	h := newSubscriptionHandler(ss)

	subscription := rg.Group("/subscription")
	{
		subscription.POST("/create-order", h.createOrder)
		subscription.POST("/verify", h.verifyPayment)
	}
}

// getPlans godoc
// @Summary List purchasable plans
// @Description Lists the base plans and the service-listing fee from the current pricing configuration.
// @Tags subscription
// @Produce json
// @Success 200 {object} dto.SubscriptionPlansResponse
// @Failure 404 {object} ErrorResponse "No pricing configuration stored yet"
// @Router /subscription/plans [get]
func (h *subscriptionHandler) getPlans(c *gin.Context) {
	plans, err := h.subscriptionService.GetPlans(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// createOrder godoc
// @Summary Create a payment order
// @Description Registers an order with the payment provider for a base plan or the service-listing fee.
// @Tags subscription
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order"
// @Success 201 {object} dto.CreateOrderResponse
// @Failure 400 {object} ErrorResponse "Unknown plan duration"
// @Failure 404 {object} ErrorResponse "Caller has no publisher profile"
// @Security BearerAuth
// @Router /subscription/create-order [post]
func (h *subscriptionHandler) createOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.subscriptionService.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// verifyPayment godoc
// @Summary Verify a payment and apply the entitlement
// @Description Verifies the provider confirmation; on success the subscription is extended or the service plan activated.
// @Tags subscription
// @Accept json
// @Produce json
// @Param confirmation body dto.PaymentConfirmation true "Provider confirmation"
// @Success 200 {object} dto.PublisherResponse
// @Failure 400 {object} ErrorResponse "Verification failed"
// @Failure 404 {object} ErrorResponse "Caller has no publisher profile"
// @Security BearerAuth
// @Router /subscription/verify [post]
func (h *subscriptionHandler) verifyPayment(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var confirmation dto.PaymentConfirmation
	if err := c.ShouldBindJSON(&confirmation); err != nil {
		bindError(c, err)
		return
	}

	publisher, err := h.subscriptionService.VerifyAndApply(c.Request.Context(), userID, confirmation)
	if err != nil {
		respondError(c, err, "Failed to verify payment")
		return
	}
	c.JSON(http.StatusOK, publisher)
}
