package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type SessionClaims struct {
	jwt.RegisteredClaims

	// Dom carries the school domain the staff session is bound to.
	Dom string `json:"dom,omitempty"`
}

type VerifiedSession struct {
	SchoolDomain string
	Subject      string
	ExpiresAt    time.Time
}

// VerifySessionToken verifies a staff session token (JWT, HS256) issued by
// the tenant frontend. It returns the school domain after validation.
func VerifySessionToken(tokenString, audience, secret string, now time.Time) (*VerifiedSession, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if secret == "" {
		return nil, fmt.Errorf("missing session secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &SessionClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, fmt.Errorf("token expired")
	}
	if claims.NotBefore != nil && claims.NotBefore.Time.After(now) {
		return nil, fmt.Errorf("token not active yet")
	}

	if audience != "" {
		if !audContains([]string(claims.RegisteredClaims.Audience), audience) {
			return nil, fmt.Errorf("audience mismatch")
		}
	}

	domain := strings.TrimSpace(claims.Dom)
	if domain == "" {
		// Older tokens carried the domain as the issuer.
		domain = strings.TrimSpace(claims.Issuer)
	}
	if domain == "" {
		return nil, fmt.Errorf("missing school in token")
	}

	return &VerifiedSession{
		SchoolDomain: domain,
		Subject:      claims.Subject,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

func audContains(aud []string, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
