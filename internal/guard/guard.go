// Package guard centralizes the access-control decision every protected
// command makes before rendering anything or touching the network.
//
// Each command declares a Requirement; the guard loads the session once,
// evaluates it, and returns exactly one Decision. Commands never inspect the
// role flag themselves.
package guard

import (
	"github.com/flexfitapp/flexfit/internal/session"
)

// Level is a view's declared protection level.
type Level int

const (
	// Public views render for anyone.
	Public Level = iota
	// Authenticated views require a present session.
	Authenticated
	// Admin views require a present session with the privileged role.
	Admin
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Requirement describes what a view demands before it renders.
type Requirement struct {
	Level Level

	// Landing marks the main authenticated landing surface (the dashboard).
	// It is the only place the onboarding prompt fires.
	Landing bool
}

// Decision is the single outcome of one guard evaluation.
type Decision int

const (
	// Allow renders the view.
	Allow Decision = iota
	// RedirectLogin sends the user to the login flow; no protected content
	// is rendered and no authenticated request is issued.
	RedirectLogin
	// RedirectHome sends the user back to the dashboard. Insufficient role
	// is not an error page; the capability is simply denied.
	RedirectHome
	// PromptOnboarding gates the landing surface behind the first-time
	// profile setup before normal content.
	PromptOnboarding
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	case PromptOnboarding:
		return "prompt-onboarding"
	default:
		return "unknown"
	}
}

// Evaluate applies the access rules to a loaded session. s is nil when
// unauthenticated. Exactly one decision is returned per evaluation.
func Evaluate(s *session.Session, req Requirement) Decision {
	if req.Level >= Authenticated && s == nil {
		return RedirectLogin
	}
	if req.Level == Admin && !s.IsAdmin() {
		return RedirectHome
	}
	if s != nil && req.Landing && !s.Onboarded {
		return PromptOnboarding
	}
	return Allow
}

// Guard binds the decision function to a session store so callers get the
// load-then-evaluate sequence in one step, before any data fetch.
type Guard struct {
	store session.Store
}

// New creates a Guard reading from store.
func New(store session.Store) *Guard {
	return &Guard{store: store}
}

// Authorize loads the current session and evaluates req against it.
// The loaded session is returned alongside the decision so an allowed view
// can render identity and role without a second load.
func (g *Guard) Authorize(req Requirement) (Decision, *session.Session, error) {
	s, err := g.store.Load()
	if err != nil {
		return RedirectLogin, nil, err
	}
	return Evaluate(s, req), s, nil
}
