package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// now is a test seam for the clock.
var now = time.Now

// TokenExpired reports whether tok should be treated as expired.
//
// The check fails closed: anything that is not a three-segment dot-separated
// token with a decodable claims segment and a numeric "exp" field counts as
// expired. The signature is deliberately not verified; only the server can do
// that, the client merely avoids presenting credentials it already knows are
// dead.
func TokenExpired(tok string) bool {
	if tok == "" {
		return true
	}
	if len(strings.Split(tok, ".")) != 3 {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return exp.Before(now())
}
