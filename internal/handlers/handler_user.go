package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/middleware"
	"github.com/unlockhq/unlock-backend/internal/utils/pagination"
)

// userHandler serves the caller's own account and the admin user list.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers the authenticated self-service route.
func registerUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade) {
	h := newUserHandler(us)
	rg.GET("/me", h.getMe)
}

// registerAdminUserRoutes registers the admin account management routes.
func registerAdminUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade) {
	h := newUserHandler(us)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.POST("/:id/block", h.blockUser)
		users.POST("/:id/unblock", h.unblockUser)
	}
}

// getMe godoc
// @Summary Get own account
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List user accounts
// @Tags admin-users
// @Produce json
// @Param q query string false "Substring over name/email"
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} pagination.Page[dto.UserResponse]
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.userService.ListUsers(c.Request.Context(), params.Query, pagination.Normalize(params.Page, params.Limit))
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}

	responses := make([]dto.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, dto.ToUserResponse(&page.Items[i]))
	}
	c.JSON(http.StatusOK, pagination.Page[dto.UserResponse]{
		Items:      responses,
		Total:      page.Total,
		PageNumber: page.PageNumber,
		TotalPages: page.TotalPages,
	})
}

// getUser godoc
// @Summary Get a user account
// @Tags admin-users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *userHandler) setBlocked(c *gin.Context, blocked bool) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.SetUserBlocked(c.Request.Context(), c.Param("id"), blocked, actorID); err != nil {
		respondError(c, err, "Failed to update block state")
		return
	}
	c.Status(http.StatusNoContent)
}

// blockUser godoc
// @Summary Block a user account
// @Description Blocking also revokes the account's refresh token.
// @Tags admin-users
// @Param id path string true "User ID"
// @Success 204 "Blocked"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/block [post]
func (h *userHandler) blockUser(c *gin.Context) {
	h.setBlocked(c, true)
}

// unblockUser godoc
// @Summary Unblock a user account
// @Tags admin-users
// @Param id path string true "User ID"
// @Success 204 "Unblocked"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/unblock [post]
func (h *userHandler) unblockUser(c *gin.Context) {
	h.setBlocked(c, false)
}
