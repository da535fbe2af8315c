package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims of an access token. The tenant claim lets the
// principal middleware reject tokens whose user moved to another tenant.
type AccessClaims struct {
	TenantID string `json:"tid"`
	jwt.RegisteredClaims
}

// GenerateJWT signs an HS256 access token for userID in tenantID.
func GenerateJWT(userID, tenantID, secret string, expiryDuration time.Duration, issuer string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(expiryDuration)
	claims := AccessClaims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAndValidateJWT parses a token string, validates its signature and standard
// claims and requires both the subject and the tenant claim.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AccessClaims, error) {
	claims := &AccessClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err // expired, not yet valid, bad signature ...
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || claims.TenantID == "" {
		return nil, errors.New("token is missing subject or tenant claim")
	}
	return claims, nil
}
