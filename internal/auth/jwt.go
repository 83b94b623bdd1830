package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the console reads out of an access token. The backend
// mints tokens carrying the user id stringified in the sub claim plus an
// exp, nothing else. The console never verifies signatures (it has no
// secret); claims are read only to know who is logged in and when the
// session expires.
type Claims struct {
	UserID    int64
	ExpiresAt time.Time // zero when the token carries no exp claim
}

var parser = jwt.NewParser()

// InspectToken extracts the claims of an access token without verifying
// its signature. Trust still comes from the backend rejecting bad tokens;
// this only tells the console what the token says about itself.
func InspectToken(tokenString string) (*Claims, error) {
	registered := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, registered); err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(registered.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("token subject %q is not a user id", registered.Subject)
	}

	claims := &Claims{UserID: userID}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}

// ExpiresWithin reports whether the token expires within d from now.
// Tokens without an exp claim never expire from the console's point of
// view.
func ExpiresWithin(claims *Claims, d time.Duration) bool {
	if claims.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(claims.ExpiresAt) < d
}
