package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler signs existing users in with a Google account.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
}

// GoogleLoginURLResponse carries the consent URL and the CSRF state the
// frontend must echo back.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// ExchangeCodeRequest is the authorization code returned by Google to the frontend.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	if services.GoogleOAuth == nil {
		return
	}
	h := &googleOAuthHandler{googleOAuthService: services.GoogleOAuth, authService: services.Auth}
	google := rg.Group("/google")
	{
		google.GET("/login-url", h.loginURL)
		google.POST("/exchange-code", h.exchangeCode)
	}
}

// loginURL godoc
// @Summary Google login URL
// @Description Returns the Google consent URL and a fresh state value.
// @Tags auth
// @Produce json
// @Success 200 {object} GoogleLoginURLResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login-url [get]
func (h *googleOAuthHandler) loginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondWithError(c, err, "Failed to generate OAuth state")
		return
	}
	c.JSON(http.StatusOK, GoogleLoginURLResponse{URL: h.googleOAuthService.GetGoogleLoginURL(ctx, state), State: state})
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code
// @Description Exchanges the code with Google, validates the ID token and signs in the user owning the verified email.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		respondWithError(c, apperrors.NewValidationFailedError("invalid or expired authorization code"), "Failed to exchange authorization code")
		logger.Debug("Google code exchange error", slog.String("error", err.Error()))
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		respondWithError(c, apperrors.NewInternalError("ID token missing from Google response", nil), "Failed to read Google ID token")
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		respondWithError(c, apperrors.NewUnauthenticatedError("invalid Google ID token"), "Google ID token validation failed")
		return
	}

	user, err := h.authService.LoginWithGoogle(ctx, payload)
	if err != nil {
		respondWithError(c, err, "Google sign-in failed")
		return
	}

	token, expiresAt, err := h.authService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondWithError(c, err, "Failed to generate access token")
		return
	}

	logger.Info("User signed in with Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token, TokenType: tokenTypeBearer, ExpiresAt: expiresAt})
}
