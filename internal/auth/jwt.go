package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims read from an IAM access token
type TokenClaims struct {
	Subject   string
	Issuer    string
	ClientID  string
	ExpiresAt *time.Time
	IssuedAt  *time.Time
}

// ExtractClaims reads claims from a JWT without verifying it. The signature
// is checked by IAM on every request; this is only used for display and
// expiry bookkeeping.
func ExtractClaims(tokenString string) (*TokenClaims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	tc := &TokenClaims{}
	tc.Subject, _ = claims.GetSubject()
	tc.Issuer, _ = claims.GetIssuer()

	// Keycloak-style tokens carry the client in azp, others in client_id
	if azp, ok := claims["azp"].(string); ok {
		tc.ClientID = azp
	} else if cid, ok := claims["client_id"].(string); ok {
		tc.ClientID = cid
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		tc.ExpiresAt = &t
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		tc.IssuedAt = &t
	}

	return tc, nil
}

// IsExpired checks if the token is expired
func (c *TokenClaims) IsExpired() bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*c.ExpiresAt)
}
