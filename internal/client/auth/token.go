package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// credentialExpired reports whether a persisted credential is a JWT whose
// expiry is already in the past. The signature is deliberately not checked:
// the client holds no verification key, and the probe only exists to avoid
// one guaranteed-401 round-trip at boot. Opaque tokens return false and are
// handled by the Unauthorized path on first use.
func credentialExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
