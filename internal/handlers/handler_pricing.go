package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/middleware"
)

// pricingHandler serves the singleton subscription pricing configuration.
type pricingHandler struct {
	pricingService portssvc.PricingSvcFacade
}

func newPricingHandler(ps portssvc.PricingSvcFacade) *pricingHandler {
	return &pricingHandler{pricingService: ps}
}

func registerAdminPricingRoutes(rg *gin.RouterGroup, ps portssvc.PricingSvcFacade) {
	h := newPricingHandler(ps)

	pricing := rg.Group("/subscriptions/config")
	{
		pricing.GET("", h.getConfig)
		pricing.PUT("", h.updateConfig)
	}
}

// getConfig godoc
// @Summary Get the pricing configuration
// @Tags admin-pricing
// @Produce json
// @Success 200 {object} dto.PricingConfigResponse
// @Failure 404 {object} ErrorResponse "No configuration stored yet"
// @Security BearerAuth
// @Router /admin/subscriptions/config [get]
func (h *pricingHandler) getConfig(c *gin.Context) {
	config, err := h.pricingService.GetConfig(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve pricing configuration")
		return
	}
	c.JSON(http.StatusOK, dto.ToPricingConfigResponse(*config))
}

// updateConfig godoc
// @Summary Replace the pricing configuration
// @Description Fully replaces the stored configuration. A validation failure leaves it untouched.
// @Tags admin-pricing
// @Accept json
// @Produce json
// @Param config body dto.UpdatePricingConfigRequest true "New configuration"
// @Success 200 {object} dto.PricingConfigResponse
// @Failure 400 {object} ErrorResponse "Invalid prices"
// @Security BearerAuth
// @Router /admin/subscriptions/config [put]
func (h *pricingHandler) updateConfig(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdatePricingConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	config, err := h.pricingService.UpdateConfig(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, err, "Failed to update pricing configuration")
		return
	}
	c.JSON(http.StatusOK, dto.ToPricingConfigResponse(*config))
}
