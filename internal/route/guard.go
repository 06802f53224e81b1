package route

import "github.com/CauceloJuanma/reserva/internal/auth"

// Decision is the guard's verdict for a navigation attempt.
type Decision int

const (
	// DecisionAllow renders the requested view unchanged.
	DecisionAllow Decision = iota
	// DecisionLoading renders a neutral loading indicator: the initial
	// session resolution has not settled, so neither content nor a redirect
	// may be shown yet.
	DecisionLoading
	// DecisionRedirect sends the user to the login view, carrying the
	// originally requested path for post-login return. The redirect replaces
	// the denied location rather than stacking on top of it, so backing out
	// of login does not loop into the guard again.
	DecisionRedirect
)

// Verdict is the guard's full answer for one navigation attempt.
type Verdict struct {
	Decision   Decision
	RedirectTo Location
	// From is the originally requested path, set on redirects so the login
	// view can return there afterwards.
	From string
}

// Evaluate gates a location against the session state. It is a pure function
// of its inputs; the guard holds no state of its own. Callers must re-run it
// whenever the session state changes.
func Evaluate(state auth.State, loc Location) Verdict {
	if !loc.Protected() {
		return Verdict{Decision: DecisionAllow}
	}
	if state.Loading {
		return Verdict{Decision: DecisionLoading}
	}
	if !state.Authenticated() {
		return Verdict{
			Decision:   DecisionRedirect,
			RedirectTo: Login(),
			From:       loc.Path(),
		}
	}
	return Verdict{Decision: DecisionAllow}
}
