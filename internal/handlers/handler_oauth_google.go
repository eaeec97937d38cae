package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/middleware"
)

// Lifetime of the CSRF state cookie set when the login flow starts.
const oauthStateCookieMaxAge = 600

// googleOAuthHandler handles the Google login flow: /login redirects to the
// consent screen with a CSRF state cookie, /callback exchanges the returned
// code, resolves the account and hands back our own token pair.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	authHandler        *authHandler
}

func newGoogleOAuthHandler(gs portssvc.GoogleOAuthSvcFacade, ah *authHandler) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: gs,
		authHandler:        ah,
	}
}

func registerGoogleOAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(services.GoogleOAuth,
		newAuthHandler(services.User, services.Publisher, services.Token))

	google := r.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.Login)
		google.GET("/callback", h.Callback)
	}
}

// Login godoc
// @Summary Start Google login
// @Description Redirects to the Google consent screen, setting a CSRF state cookie.
// @Tags oauth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "Failed to generate login state")
		return
	}

	c.SetCookie("oauth_state", state, oauthStateCookieMaxAge, "/api/v1/auth/google", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// Callback godoc
// @Summary Complete Google login
// @Description Validates the CSRF state, exchanges the authorization code, resolves the account and returns a token pair.
// @Tags oauth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "CSRF state"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse "State mismatch or invalid code"
// @Failure 403 {object} ErrorResponse "Account blocked"
// @Failure 502 {object} ErrorResponse "Google unreachable"
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state := c.Query("state")
	cookieState, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != cookieState {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	// One-shot state: expire the cookie regardless of outcome.
	c.SetCookie("oauth_state", "", -1, "/api/v1/auth/google", "", c.Request.TLS != nil, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to reach Google"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token missing from Google token response")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Google account has no email"})
		return
	}

	user, err := h.authHandler.userService.FindOrCreateOAuthUser(ctx, email, name)
	if err != nil {
		respondError(c, err, "Failed to resolve account")
		return
	}

	resp, err := h.authHandler.issueTokenPair(c, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}
	c.JSON(http.StatusOK, resp)
}
