package services

import (
	"context"

	"github.com/SscSPs/site_safety_app/internal/core/access"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// AccessSvc resolves the acting principal from the database and exposes the guard's
// capability list for it.
type AccessSvc interface {
	// ResolvePrincipal loads the user and its site roles. Deleted users are not found.
	ResolvePrincipal(ctx context.Context, userID string) (*domain.Principal, error)

	// Capabilities lists the privileged operations the principal may perform now.
	Capabilities(ctx context.Context, p domain.Principal) []access.Capability
}
