package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/middleware"
	"github.com/SscSPs/site_safety_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const tokenTypeBearer = "Bearer"

// authHandler handles registration and password login.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes. Login and
// registration share a per-IP rate limit.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth)

	auth := r.Group("/api/v1/auth")
	if ipLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit); err != nil {
		slog.Warn("Invalid login rate limit, auth routes are not rate limited",
			slog.String("rate", cfg.LoginRateLimit), slog.String("error", err.Error()))
	} else {
		auth.Use(middleware.RateLimit(ipLimiter))
	}
	{
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)
	}

	registerGoogleOAuthRoutes(auth, services)
}

// login godoc
// @Summary User login
// @Description Authenticates a user with email and password and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Login failed")
		return
	}

	token, expiresAt, err := h.authService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondWithError(c, err, "Failed to generate access token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{AccessToken: token, TokenType: tokenTypeBearer, ExpiresAt: expiresAt})
}

// register godoc
// @Summary Register a tenant
// @Description Creates a tenant and its first user (a safety officer) and signs the user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Tenant and owner details"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email or tenant already exists"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tenant, user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to register tenant")
		return
	}

	token, expiresAt, err := h.authService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondWithError(c, err, "Failed to generate access token")
		return
	}

	logger.Info("Tenant registered", slog.String("tenant_id", tenant.TenantID), slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Tenant:        dto.ToTenantResponse(tenant),
		User:          dto.ToUserResponse(user),
		LoginResponse: dto.LoginResponse{AccessToken: token, TokenType: tokenTypeBearer, ExpiresAt: expiresAt},
	})
}
