package services

import (
	"context"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/SscSPs/site_safety_app/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// AuthSvcFacade handles registration, password login and access tokens.
type AuthSvcFacade interface {
	// Register creates a tenant and its first user with the safety_officer role.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Tenant, *domain.User, error)

	// Login verifies email and password. Unknown emails and wrong passwords fail the same way.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, error)

	// LoginWithGoogle signs in the existing user owning a verified Google email.
	LoginWithGoogle(ctx context.Context, payload *idtoken.Payload) (*domain.User, error)

	// GenerateAccessToken signs an access token carrying the user's tenant.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
