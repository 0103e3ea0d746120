// Package credential owns the bearer credential at rest: decoding its
// expiry and persisting it across restarts. The backend signs and
// verifies tokens; this side only reads claims to detect expiry.
package credential

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/millio-space/guardops/internal/domain/auth"
)

// Decode parses a bearer token without verifying its signature and
// returns it as a Credential with the expiry claim decoded. The returned
// credential has a zero ExpiresAt when the token carries no exp claim.
// Decode fails only when the value is not a parseable JWT at all.
func Decode(token string) (auth.Credential, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return auth.Credential{}, fmt.Errorf("decode credential: %w", err)
	}

	cred := auth.Credential{Token: token}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return auth.Credential{}, fmt.Errorf("decode credential expiry: %w", err)
	}
	if exp != nil {
		cred.ExpiresAt = exp.Time
	}
	return cred, nil
}
