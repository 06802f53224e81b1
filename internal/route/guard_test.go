package route

import (
	"testing"

	"github.com/CauceloJuanma/reserva/internal/api"
	"github.com/CauceloJuanma/reserva/internal/auth"
)

func TestEvaluate_LoadingNeverRendersProtectedContent(t *testing.T) {
	// Regardless of the user value, a loading session must yield the neutral
	// loading state: no content, no premature redirect.
	states := []auth.State{
		{Loading: true, User: nil},
		{Loading: true, User: &api.User{ID: 1}},
	}

	for _, st := range states {
		v := Evaluate(st, Reservations())
		if v.Decision != DecisionLoading {
			t.Errorf("Evaluate(loading=%v, user=%v) = %v, want DecisionLoading", st.Loading, st.User, v.Decision)
		}
	}
}

func TestEvaluate_RedirectsIffLoggedOutAndSettled(t *testing.T) {
	st := auth.State{Loading: false, User: nil}

	v := Evaluate(st, Reservations())
	if v.Decision != DecisionRedirect {
		t.Fatalf("Decision = %v, want DecisionRedirect", v.Decision)
	}
	if v.RedirectTo != Login() {
		t.Errorf("RedirectTo = %+v, want login", v.RedirectTo)
	}
	if v.From != "/reservations" {
		t.Errorf("From = %q, want original path preserved", v.From)
	}
}

func TestEvaluate_PreservesDetailPath(t *testing.T) {
	v := Evaluate(auth.State{}, ReservationDetail(42))
	if v.Decision != DecisionRedirect || v.From != "/reservations/42" {
		t.Errorf("verdict = %+v, want redirect from /reservations/42", v)
	}
}

func TestEvaluate_AllowsAuthenticated(t *testing.T) {
	st := auth.State{Loading: false, User: &api.User{ID: 1}}

	for _, loc := range []Location{Reservations(), ReservationDetail(42)} {
		if v := Evaluate(st, loc); v.Decision != DecisionAllow {
			t.Errorf("Evaluate(authenticated, %s) = %v, want DecisionAllow", loc.Path(), v.Decision)
		}
	}
}

func TestEvaluate_PublicRoutesBypassTheGuard(t *testing.T) {
	// Public routes render even while the session is unresolved.
	st := auth.State{Loading: true}

	for _, loc := range []Location{Home(), Login(), Companies(), Products(3)} {
		if v := Evaluate(st, loc); v.Decision != DecisionAllow {
			t.Errorf("Evaluate(loading, %s) = %v, want DecisionAllow", loc.Path(), v.Decision)
		}
	}
}

func TestEvaluate_RecomputesAfterSessionChange(t *testing.T) {
	// The guard is pure: the same location flips from redirect to allow once
	// the session state carries a user.
	loc := Reservations()

	before := Evaluate(auth.State{Loading: false}, loc)
	after := Evaluate(auth.State{Loading: false, User: &api.User{ID: 9}}, loc)

	if before.Decision != DecisionRedirect || after.Decision != DecisionAllow {
		t.Errorf("before = %v, after = %v; want redirect then allow", before.Decision, after.Decision)
	}
}
