// Package guard decides whether a requested screen is reachable given the
// current session and an optional required role. It is a pure decision
// function with three terminal states; the caller performs the redirect
// side effect on the failure path.
package guard

import "github.com/vkuzmenko/classmate/internal/client/models"

type Decision int

const (
	// Redirect means the user is not authenticated and must be sent to the
	// login entry point, replacing history so there is no back-navigation loop.
	Redirect Decision = iota
	// Denied means the user is authenticated but lacks the required role.
	// This renders an access-denied state, not a redirect.
	Denied
	// Allowed means the requested content may be rendered.
	Allowed
)

func (d Decision) String() string {
	switch d {
	case Redirect:
		return "redirect"
	case Denied:
		return "denied"
	case Allowed:
		return "allowed"
	}
	return "unknown"
}

// Session is the read-only snapshot the guard consumes.
type Session struct {
	Authenticated bool
	Role          models.Role
}

// Result carries the decision plus, for Denied, both roles so the caller can
// show the user what was required and what they have.
type Result struct {
	Decision Decision
	Required models.Role
	Actual   models.Role
}

// Check resolves access for a navigation target. requiredRole == "" means any
// authenticated user may pass.
func Check(s Session, requiredRole models.Role) Result {
	if !s.Authenticated {
		return Result{Decision: Redirect}
	}
	if requiredRole != "" && s.Role != requiredRole {
		return Result{Decision: Denied, Required: requiredRole, Actual: s.Role}
	}
	return Result{Decision: Allowed, Actual: s.Role}
}
