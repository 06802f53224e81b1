package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CauceloJuanma/reserva/internal/api"
	"github.com/CauceloJuanma/reserva/internal/auth"
	"github.com/CauceloJuanma/reserva/internal/config"
	apperrors "github.com/CauceloJuanma/reserva/internal/errors"
	"github.com/CauceloJuanma/reserva/internal/logging"
	"github.com/CauceloJuanma/reserva/internal/reservation"
	"github.com/CauceloJuanma/reserva/internal/route"
)

// stubBackend satisfies Backend (and auth.SessionAPI) with canned responses.
type stubBackend struct {
	user       *api.User
	resolveErr error

	loginUser *api.User
	loginErr  error

	companies   []api.Company
	products    []api.Product
	summaries   []reservation.Summary
	detail      *reservation.Reservation
	detailErr   error
	createdID   int
	createErr   error
	transErr    error
	registerErr error
	logoutErr   error
}

func (s *stubBackend) ResolveSession(context.Context) (*api.User, error) {
	return s.user, s.resolveErr
}
func (s *stubBackend) Login(context.Context, api.Credentials) (*api.User, error) {
	return s.loginUser, s.loginErr
}
func (s *stubBackend) Register(context.Context, api.Registration) error { return s.registerErr }
func (s *stubBackend) Logout(context.Context) error                     { return s.logoutErr }
func (s *stubBackend) Companies(context.Context) ([]api.Company, error) {
	return s.companies, nil
}
func (s *stubBackend) CompanyProducts(context.Context, int) ([]api.Product, error) {
	return s.products, nil
}
func (s *stubBackend) MyReservations(context.Context) ([]reservation.Summary, error) {
	return s.summaries, nil
}
func (s *stubBackend) Reservation(context.Context, int) (*reservation.Reservation, error) {
	return s.detail, s.detailErr
}
func (s *stubBackend) Create(context.Context, api.CreateReservation) (int, error) {
	return s.createdID, s.createErr
}
func (s *stubBackend) Confirm(context.Context, int) error { return s.transErr }
func (s *stubBackend) Cancel(context.Context, int) error  { return s.transErr }

func newTestModel(backend *stubBackend, start route.Location) Model {
	manager := auth.NewManager(backend, logging.NopLogger())
	m := NewModel(backend, manager, config.Default(), logging.NopLogger(), start)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

// settle runs the session resolution command and feeds its result back into
// the model, the way the program loop would.
func settle(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	msg := m.resolveSessionCmd()()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func pendingReservation(id int) *reservation.Reservation {
	return &reservation.Reservation{
		ID:       id,
		EstadoID: reservation.StatusPending,
		Empresa:  reservation.Company{ID: 1, Nombre: "Café Sol"},
		Lineas: []reservation.Line{
			{ID: 1, Producto: reservation.Product{ID: 3, Nombre: "Mesa"}, Cantidad: 2, PrecioUnitario: 10, Subtotal: 20},
		},
	}
}

func TestProtectedStartShowsLoadingUntilSessionSettles(t *testing.T) {
	backend := &stubBackend{resolveErr: apperrors.NewAPIError(401, "Unauthenticated")}
	m := newTestModel(backend, route.Reservations())

	view := m.View()
	if !strings.Contains(view, "Cargando") {
		t.Errorf("expected loading indicator, got %q", view)
	}
	if strings.Contains(view, "Mis Reservas") {
		t.Error("protected content rendered before session resolution settled")
	}
}

func TestGuardRedirectPreservesOrigin(t *testing.T) {
	backend := &stubBackend{resolveErr: apperrors.NewAPIError(401, "Unauthenticated")}
	m := newTestModel(backend, route.Reservations())

	m, _ = settle(t, m)
	if m.loc.Name != route.NameLogin {
		t.Fatalf("loc = %q, want login", m.loc.Name)
	}
	if m.returnTo != "/reservations" {
		t.Errorf("returnTo = %q, want /reservations", m.returnTo)
	}
}

func TestLoginReturnsToGuardOrigin(t *testing.T) {
	user := &api.User{ID: 1, Nombre: "Ana", Apellido: "Gil", Correo: "ana@ejemplo.com"}
	backend := &stubBackend{
		resolveErr: apperrors.NewAPIError(401, "Unauthenticated"),
		loginUser:  user,
	}
	m := newTestModel(backend, route.Reservations())
	m, _ = settle(t, m)

	updated, cmd := m.Update(loginResultMsg{user: user})
	m = updated.(Model)
	if m.loc.Name != route.NameReservations {
		t.Fatalf("loc after login = %q, want reservations", m.loc.Name)
	}
	if cmd == nil {
		t.Fatal("expected a reservations fetch command after returning to origin")
	}
	if _, ok := cmd().(reservationsLoadedMsg); !ok {
		t.Error("post-login command did not load reservations")
	}
	if !m.session.Snapshot().Authenticated() {
		t.Error("session not authenticated after login")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	backend := &stubBackend{resolveErr: apperrors.NewAPIError(401, "Unauthenticated")}
	m := newTestModel(backend, route.Login())
	m, _ = settle(t, m)

	updated, _ := m.Update(loginResultMsg{err: apperrors.NewAPIError(401, "Unauthenticated")})
	m = updated.(Model)
	if m.messages.errMsg != "Credenciales incorrectas" {
		t.Errorf("errMsg = %q", m.messages.errMsg)
	}
	if m.loc.Name != route.NameLogin {
		t.Errorf("should stay on login, got %q", m.loc.Name)
	}
	if m.login.submitting {
		t.Error("submitting flag not cleared on failure")
	}
}

func TestEmptyLoginFieldsRejectedLocally(t *testing.T) {
	backend := &stubBackend{resolveErr: apperrors.NewAPIError(401, "Unauthenticated")}
	m := newTestModel(backend, route.Login())
	m, _ = settle(t, m)
	m.login.focus = len(m.login.inputs) - 1

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd != nil {
		t.Error("empty form should not issue a login command")
	}
	if m.messages.errMsg == "" {
		t.Error("expected a validation message")
	}
}

func TestConfirmNeverMutatesStatusLocally(t *testing.T) {
	backend := &stubBackend{user: &api.User{ID: 1}, detail: pendingReservation(5)}
	m := newTestModel(backend, route.ReservationDetail(5))
	m, cmd := settle(t, m)
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	// Open and accept the confirmation dialog.
	updated, _ = m.Update(keyRune('c'))
	m = updated.(Model)
	if m.detail.dialog == nil {
		t.Fatal("confirm dialog not opened")
	}
	updated, cmd = m.Update(keyRune('s'))
	m = updated.(Model)
	if !m.detail.confirming {
		t.Fatal("confirming flag not set")
	}
	if m.detail.res.EstadoID != reservation.StatusPending {
		t.Error("status mutated before the server answered")
	}

	// Server success: the view re-fetches instead of flipping the status.
	confirmed := pendingReservation(5)
	confirmed.EstadoID = reservation.StatusConfirmed
	backend.detail = confirmed
	updated, cmd = m.Update(transitionDoneMsg{id: 5, op: opConfirm})
	m = updated.(Model)
	if m.detail.res.EstadoID != reservation.StatusPending {
		t.Error("status mutated without a re-fetch")
	}
	if cmd == nil {
		t.Fatal("expected a re-fetch command after confirmation")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if m.detail.res.EstadoID != reservation.StatusConfirmed {
		t.Error("re-fetch did not pick up the new status")
	}
	if m.messages.infoMsg != "Reserva confirmada correctamente" {
		t.Errorf("infoMsg = %q", m.messages.infoMsg)
	}
}

func TestTransitionFailureShowsServerMessageVerbatim(t *testing.T) {
	backend := &stubBackend{user: &api.User{ID: 1}, detail: pendingReservation(5)}
	m := newTestModel(backend, route.ReservationDetail(5))
	m, cmd := settle(t, m)
	updated, _ := m.Update(cmd())
	m = updated.(Model)
	m.detail.confirming = true

	updated, _ = m.Update(transitionDoneMsg{
		id: 5, op: opConfirm,
		err: apperrors.NewAPIError(200, "Stock insuficiente"),
	})
	m = updated.(Model)
	if m.messages.errMsg != "Stock insuficiente" {
		t.Errorf("errMsg = %q, want server message verbatim", m.messages.errMsg)
	}
	if m.detail.confirming {
		t.Error("busy flag not cleared after failure")
	}
	if m.detail.res.EstadoID != reservation.StatusPending {
		t.Error("status changed on a failed transition")
	}
}

func TestCancelNotOfferedForCanceledReservation(t *testing.T) {
	res := pendingReservation(5)
	res.EstadoID = reservation.StatusCanceled
	backend := &stubBackend{user: &api.User{ID: 1}, detail: res}
	m := newTestModel(backend, route.ReservationDetail(5))
	m, cmd := settle(t, m)
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	updated, _ = m.Update(keyRune('x'))
	m = updated.(Model)
	if m.detail.dialog != nil {
		t.Error("cancel dialog opened for a canceled reservation")
	}
	updated, _ = m.Update(keyRune('c'))
	m = updated.(Model)
	if m.detail.dialog != nil {
		t.Error("confirm dialog opened for a canceled reservation")
	}
}

func TestConfirmIgnoredWhileBusy(t *testing.T) {
	backend := &stubBackend{user: &api.User{ID: 1}, detail: pendingReservation(5)}
	m := newTestModel(backend, route.ReservationDetail(5))
	m, cmd := settle(t, m)
	updated, _ := m.Update(cmd())
	m = updated.(Model)
	m.detail.confirming = true

	updated, _ = m.Update(keyRune('c'))
	m = updated.(Model)
	if m.detail.dialog != nil {
		t.Error("dialog opened while a transition is in flight")
	}
}

func TestStaleTransitionResultDiscarded(t *testing.T) {
	backend := &stubBackend{user: &api.User{ID: 1}, detail: pendingReservation(5)}
	m := newTestModel(backend, route.ReservationDetail(5))
	m, cmd := settle(t, m)
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	updated, cmd = m.Update(transitionDoneMsg{id: 4, op: opConfirm})
	m = updated.(Model)
	if cmd != nil {
		t.Error("stale result triggered a command")
	}
	if m.messages.infoMsg != "" || m.messages.errMsg != "" {
		t.Error("stale result produced a message")
	}
}

func TestDetailLoadFailureFallsBackToList(t *testing.T) {
	backend := &stubBackend{
		user:      &api.User{ID: 1},
		detailErr: apperrors.NewAPIError(404, "Reserva no encontrada"),
	}
	m := newTestModel(backend, route.ReservationDetail(99))
	m, cmd := settle(t, m)

	updated, cmd := m.Update(cmd())
	m = updated.(Model)
	if m.loc.Name != route.NameReservations {
		t.Fatalf("loc = %q, want reservations", m.loc.Name)
	}
	if m.messages.errMsg != "Reserva no encontrada" {
		t.Errorf("errMsg = %q", m.messages.errMsg)
	}
	if cmd == nil {
		t.Fatal("expected the list fetch to be issued")
	}
	if _, ok := cmd().(reservationsLoadedMsg); !ok {
		t.Error("fallback command did not load the reservations list")
	}
}

func TestStaleReservationsResultDiscarded(t *testing.T) {
	backend := &stubBackend{user: &api.User{ID: 1}}
	m := newTestModel(backend, route.Reservations())
	m, _ = settle(t, m)

	// Navigate home while the list fetch is still in flight, then let the
	// fetch resolve with an error.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.loc.Name != route.NameHome {
		t.Fatalf("loc = %q, want home", m.loc.Name)
	}

	updated, _ = m.Update(reservationsLoadedMsg{err: apperrors.NewAPIError(401, "Unauthenticated")})
	m = updated.(Model)
	if m.messages.errMsg != "" {
		t.Errorf("stale list result surfaced error %q on the home view", m.messages.errMsg)
	}
	if !m.list.loading {
		t.Error("stale list result mutated defunct list state")
	}
}

func TestStaleCompaniesResultDiscarded(t *testing.T) {
	backend := &stubBackend{companies: []api.Company{{ID: 1, Nombre: "Café Sol"}}}
	m := newTestModel(backend, route.Companies())
	m, _ = settle(t, m)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	updated, _ = m.Update(companiesLoadedMsg{companies: backend.companies})
	m = updated.(Model)
	if m.companies.items != nil || !m.companies.loading {
		t.Error("stale companies result applied after navigating away")
	}
	if m.loc.Name != route.NameHome {
		t.Errorf("loc = %q, want home", m.loc.Name)
	}
}

func TestStaleProductsResultDiscarded(t *testing.T) {
	backend := &stubBackend{products: []api.Product{{ID: 1, Nombre: "Mesa", Stock: 3}}}
	m := newTestModel(backend, route.Companies())
	m, _ = settle(t, m)
	m.loc = route.Products(2)
	m.products = ProductsState{companyID: 2, loading: true}

	updated, _ := m.Update(productsLoadedMsg{companyID: 1, products: backend.products})
	m = updated.(Model)
	if !m.products.loading || m.products.items != nil {
		t.Error("stale products result applied to a different company")
	}
}

func TestReserveQuantityBoundedByStock(t *testing.T) {
	backend := &stubBackend{}
	m := newTestModel(backend, route.Home())
	m, _ = settle(t, m)
	m.loc = route.Reserve(1)
	m.reserve = ReserveState{companyID: 1, product: api.Product{ID: 3, Nombre: "Mesa", Stock: 2, Precio: 10}, qty: 2}

	updated, _ := m.Update(keyRune('+'))
	m = updated.(Model)
	if m.reserve.qty != 2 {
		t.Errorf("qty = %d, want clamped at 2", m.reserve.qty)
	}
	if m.reserve.fieldErr != "Stock máximo disponible: 2" {
		t.Errorf("fieldErr = %q", m.reserve.fieldErr)
	}

	updated, _ = m.Update(keyRune('-'))
	m = updated.(Model)
	if m.reserve.qty != 1 {
		t.Errorf("qty = %d, want 1", m.reserve.qty)
	}
	updated, _ = m.Update(keyRune('-'))
	m = updated.(Model)
	if m.reserve.qty != 1 {
		t.Errorf("qty = %d, want floor of 1", m.reserve.qty)
	}
}

func TestDirectReserveRouteFallsBackToProducts(t *testing.T) {
	backend := &stubBackend{products: []api.Product{{ID: 1, Nombre: "Mesa", Stock: 3, EmpresaID: 3}}}
	m := newTestModel(backend, route.Reserve(3))

	if m.loc.Name != route.NameProducts || m.loc.Arg != 3 {
		t.Fatalf("loc = %v, want products of company 3", m.loc)
	}
	if m.initCmd == nil {
		t.Fatal("expected a products fetch for the fallback view")
	}
	msg, ok := m.initCmd().(productsLoadedMsg)
	if !ok || msg.companyID != 3 {
		t.Errorf("fallback fetch = %+v", msg)
	}
}

func TestReserveRouteKeepsSelectedProduct(t *testing.T) {
	backend := &stubBackend{}
	m := newTestModel(backend, route.Companies())
	m, _ = settle(t, m)
	m.loc = route.Products(3)
	m.products = ProductsState{
		companyID: 3,
		items:     []api.Product{{ID: 7, Nombre: "Mesa", Stock: 4, EmpresaID: 3}},
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.loc.Name != route.NameReserve {
		t.Fatalf("loc = %q, want reserve", m.loc.Name)
	}
	if m.reserve.product.ID != 7 || m.reserve.qty != 1 {
		t.Errorf("reserve state = %+v, want product 7 qty 1", m.reserve)
	}
}

func TestCreateNavigatesToNewDetail(t *testing.T) {
	backend := &stubBackend{user: &api.User{ID: 1}, createdID: 77, detail: pendingReservation(77)}
	m := newTestModel(backend, route.Home())
	m, _ = settle(t, m)
	m.loc = route.Reserve(1)
	m.reserve = ReserveState{companyID: 1, product: api.Product{ID: 3, Stock: 5}, qty: 2, submitting: true}

	updated, cmd := m.Update(reservationCreatedMsg{id: 77})
	m = updated.(Model)
	if m.loc.Name != route.NameReservationDetail || m.loc.Arg != 77 {
		t.Fatalf("loc = %v, want detail of 77", m.loc)
	}
	if m.messages.infoMsg != "Reserva creada correctamente" {
		t.Errorf("infoMsg = %q", m.messages.infoMsg)
	}
	if cmd == nil {
		t.Fatal("expected the detail fetch to be issued")
	}
}

func TestLogoutClearsSessionAndGoesHome(t *testing.T) {
	backend := &stubBackend{user: &api.User{ID: 1, Nombre: "Ana"}}
	m := newTestModel(backend, route.Home())
	m, _ = settle(t, m)
	if !m.session.Snapshot().Authenticated() {
		t.Fatal("precondition: session should be authenticated")
	}

	updated, cmd := m.Update(keyRune('c'))
	m = updated.(Model)
	if !m.loggingOut {
		t.Fatal("loggingOut flag not set")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if m.session.Snapshot().Authenticated() {
		t.Error("session still authenticated after logout")
	}
	if m.loc.Name != route.NameHome {
		t.Errorf("loc = %q, want home", m.loc.Name)
	}
	if m.messages.infoMsg != "Sesión cerrada" {
		t.Errorf("infoMsg = %q", m.messages.infoMsg)
	}
}

func TestLogoutFailOpen(t *testing.T) {
	backend := &stubBackend{
		user:      &api.User{ID: 1},
		logoutErr: apperrors.ErrUnavailable,
	}
	m := newTestModel(backend, route.Home())
	m, _ = settle(t, m)

	updated, cmd := m.Update(keyRune('c'))
	m = updated.(Model)
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if m.session.Snapshot().Authenticated() {
		t.Error("local session survived a failed server logout")
	}
}

func TestPublicRouteRendersWhileSessionLoading(t *testing.T) {
	backend := &stubBackend{companies: []api.Company{{ID: 1, Nombre: "Café Sol"}}}
	m := newTestModel(backend, route.Home())

	view := m.View()
	if !strings.Contains(view, "Marketplace") {
		t.Errorf("public home not rendered while session loading: %q", view)
	}
}

func TestCompanySelectionLoadsProducts(t *testing.T) {
	backend := &stubBackend{
		companies: []api.Company{{ID: 9, Nombre: "Café Sol"}},
		products:  []api.Product{{ID: 1, Nombre: "Mesa", Stock: 4, EmpresaID: 9}},
	}
	m := newTestModel(backend, route.Companies())
	m, _ = settle(t, m)
	updated, _ := m.Update(companiesLoadedMsg{companies: backend.companies})
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.loc.Name != route.NameProducts || m.loc.Arg != 9 {
		t.Fatalf("loc = %v, want products of 9", m.loc)
	}
	if m.products.companyName != "Café Sol" {
		t.Errorf("companyName = %q", m.products.companyName)
	}
	msg, ok := cmd().(productsLoadedMsg)
	if !ok || msg.companyID != 9 {
		t.Errorf("products fetch = %+v", msg)
	}
}
