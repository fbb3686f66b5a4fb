package auth

import (
	"context"
	"errors"

	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/models"
)

type State string

const (
	StateChecking        State = "checking"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

type Route string

const (
	RouteHome  Route = "home"
	RouteLogin Route = "login"
)

// Identity is the externally-authenticated principal handed over by the
// identity provider.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Result is the outcome of one bootstrap resolution: where the client must
// route, and, when authenticated, who the current user is.
type Result struct {
	State State        `json:"state"`
	Route Route        `json:"route"`
	User  *models.User `json:"user,omitempty"`
}

// Bootstrap gates navigation on cold start. Resolution is never cached: an
// external identity counts for nothing until it maps to a provisioned app
// user, and every call re-checks against the user collection.
type Bootstrap struct {
	gw    gateway.Gateway
	state State
}

func NewBootstrap(gw gateway.Gateway) *Bootstrap {
	return &Bootstrap{gw: gw, state: StateChecking}
}

func (b *Bootstrap) State() State { return b.state }

// Resolve maps the (possibly absent) external identity to an application
// user. No identity, or an identity with no matching user record, routes to
// login; a match routes home with the matched user as current user. A remote
// failure leaves the state at CHECKING so the caller can retry.
func (b *Bootstrap) Resolve(ctx context.Context, identity *Identity) (Result, error) {
	b.state = StateChecking

	if identity == nil {
		b.state = StateUnauthenticated
		return Result{State: b.state, Route: RouteLogin}, nil
	}

	user, err := b.gw.GetUserByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			// Externally authenticated but not provisioned as an app user is
			// still unauthenticated here.
			b.state = StateUnauthenticated
			return Result{State: b.state, Route: RouteLogin}, nil
		}
		return Result{State: StateChecking, Route: RouteLogin}, err
	}

	b.state = StateAuthenticated
	return Result{State: b.state, Route: RouteHome, User: user}, nil
}
