package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/site_safety_app/internal/core/ports/services"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"github.com/SscSPs/site_safety_app/internal/platform/config"
	"github.com/SscSPs/site_safety_app/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// invalidCredentials is returned for every failed login so callers cannot
// tell unknown emails from wrong passwords.
func invalidCredentials() error {
	return apperrors.NewUnauthenticatedError("invalid email or password")
}

// authService implements AuthSvcFacade for password and Google sign-in.
type authService struct {
	BaseService
	cfg        *config.Config
	tenantRepo portsrepo.TenantWriter
	userRepo   portsrepo.UserReader
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, tenantRepo portsrepo.TenantWriter, userRepo portsrepo.UserReader, options ...ServiceOption) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(options...),
		cfg:         cfg,
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL-safe tenant slug; the id suffix keeps it unique.
func slugify(name, id string) string {
	slug := strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if len(slug) > 40 {
		slug = strings.TrimRight(slug[:40], "-")
	}
	if slug == "" {
		slug = "tenant"
	}
	return slug + "-" + id[:8]
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Tenant, *domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, nil, apperrors.NewConflictError("a user with this email already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, s.repoError(ctx, err, "Failed to check email uniqueness")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, apperrors.NewValidationFailedError(err.Error())
	}

	now := s.Now()
	tenantID := uuid.NewString()
	userID := uuid.NewString()
	tenant := domain.Tenant{
		TenantID:    tenantID,
		Name:        strings.TrimSpace(req.TenantName),
		Slug:        slugify(req.TenantName, tenantID),
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	owner := domain.User{
		UserID:       userID,
		TenantID:     tenantID,
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         domain.RoleSafetyOfficer,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	if err := s.tenantRepo.CreateTenantWithOwner(ctx, tenant, owner); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, nil, apperrors.NewConflictError("a user with this email already exists")
		}
		return nil, nil, s.repoError(ctx, err, "Failed to register tenant")
	}

	s.LogInfo(ctx, "Tenant registered", slog.String("tenant_id", tenantID), slog.String("user_id", userID))
	return &tenant, &owner, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, s.repoError(ctx, err, "Failed to load user for login")
	}
	if !user.IsActive || user.DeletedAt != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login failed", slog.String("user_id", user.UserID))
		return nil, invalidCredentials()
	}
	return user, nil
}

func (s *authService) LoginWithGoogle(ctx context.Context, payload *idtoken.Payload) (*domain.User, error) {
	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return nil, apperrors.NewUnauthenticatedError("google account has no verified email")
	}
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthenticatedError("no account is registered for this google email")
		}
		return nil, s.repoError(ctx, err, "Failed to load user for google login")
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, invalidCredentials()
	}
	return user, nil
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *authService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, user.TenantID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, apperrors.NewInternalError("failed to sign access token", err)
	}
	return token, expiresAt, nil
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg *config.Config
	// oauth2Config is configured at initialization time
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.NewOAuthState(utils.OAuthStateBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}
