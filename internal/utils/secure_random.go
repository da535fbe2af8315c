package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// OAuthStateBytes is the entropy of an OAuth state value.
const OAuthStateBytes = 16

// NewOAuthState returns a URL-safe random value for the OAuth state parameter.
func NewOAuthState(n int) (string, error) {
	if n < OAuthStateBytes {
		return "", fmt.Errorf("oauth state needs at least %d random bytes, got %d", OAuthStateBytes, n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
