package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CauceloJuanma/reserva/internal/auth"
	"github.com/CauceloJuanma/reserva/internal/config"
	"github.com/CauceloJuanma/reserva/internal/logging"
	"github.com/CauceloJuanma/reserva/internal/route"
	"github.com/CauceloJuanma/reserva/internal/tui/styles"
)

// Model is the single source of truth for the TUI. All state transitions
// happen inside Update; commands only perform I/O and report back via
// messages.
type Model struct {
	// Core components
	backend Backend
	session *auth.Manager
	cfg     *config.Config
	log     *logging.Logger

	// UI state
	width    int
	height   int
	ready    bool
	quitting bool

	// Navigation
	loc route.Location
	// returnTo is the path preserved by a guard redirect, restored after a
	// successful login.
	returnTo string

	spin       spinner.Model
	messages   MessageState
	loggingOut bool
	// initCmd is the start view's data load, issued from Init.
	initCmd tea.Cmd

	// Per-view state
	login     LoginState
	register  RegisterState
	companies CompaniesState
	products  ProductsState
	reserve   ReserveState
	list      ListState
	detail    DetailState
}

// NewModel creates a TUI model starting at the given location. Protected
// start locations render a neutral loading indicator until the initial
// session resolution settles.
func NewModel(backend Backend, session *auth.Manager, cfg *config.Config, log *logging.Logger, start route.Location) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Primary

	m := Model{
		backend:  backend,
		session:  session,
		cfg:      cfg,
		log:      log,
		loc:      start,
		spin:     sp,
		login:    NewLoginState(),
		register: NewRegisterState(),
	}
	// Unprotected start views enter immediately; protected ones stay parked
	// on a loading indicator until the session resolution settles.
	if !start.Protected() {
		m, m.initCmd = m.enter(start)
	}
	return m
}

// Init kicks off the session resolution and the start view's data load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, m.resolveSessionCmd()}
	if m.initCmd != nil {
		cmds = append(cmds, m.initCmd)
	}
	return tea.Batch(cmds...)
}

// navigate runs the route guard and either enters the location, parks it
// behind a loading indicator, or redirects to login preserving the origin.
func (m Model) navigate(loc route.Location) (Model, tea.Cmd) {
	m.messages.Clear()
	verdict := route.Evaluate(m.session.Snapshot(), loc)
	switch verdict.Decision {
	case route.DecisionLoading:
		m.loc = loc
		return m, nil
	case route.DecisionRedirect:
		m.returnTo = verdict.From
		m.log.Info("route guard redirect", "from", verdict.From)
		return m.enter(verdict.RedirectTo)
	default:
		return m.enter(loc)
	}
}

// enter switches to a location the guard has already allowed, resetting the
// view's state and issuing its data load.
func (m Model) enter(loc route.Location) (Model, tea.Cmd) {
	m.loc = loc
	m.log.WithView(string(loc.Name)).Debug("view entered", "path", loc.Path())
	switch loc.Name {
	case route.NameLogin:
		m.login = NewLoginState()
		return m, m.login.inputs[0].Focus()
	case route.NameRegister:
		m.register = NewRegisterState()
		return m, m.register.inputs[0].Focus()
	case route.NameCompanies:
		m.companies = CompaniesState{loading: true}
		return m, m.fetchCompaniesCmd()
	case route.NameProducts:
		m.products = ProductsState{companyID: loc.Arg, companyName: m.products.companyName, loading: true}
		return m, m.fetchProductsCmd(loc.Arg)
	case route.NameReserve:
		// The reserve form needs a product picked from the product list; a
		// direct route without one lands on the company's products instead.
		if m.reserve.product.ID == 0 || m.reserve.companyID != loc.Arg {
			return m.enter(route.Products(loc.Arg))
		}
		return m, nil
	case route.NameReservations:
		m.list = ListState{loading: true}
		return m, m.fetchReservationsCmd()
	case route.NameReservationDetail:
		m.detail = DetailState{id: loc.Arg, loading: true}
		return m, m.fetchReservationCmd(loc.Arg)
	default:
		return m, nil
	}
}

// applyGuard re-runs the guard for the current location after a session
// state change. A protected view that was parked while loading now either
// loads its data or redirects to login.
func (m Model) applyGuard() (Model, tea.Cmd) {
	verdict := route.Evaluate(m.session.Snapshot(), m.loc)
	switch verdict.Decision {
	case route.DecisionRedirect:
		m.returnTo = verdict.From
		m.log.Info("route guard redirect", "from", verdict.From)
		return m.enter(verdict.RedirectTo)
	case route.DecisionAllow:
		if m.loc.Protected() && !m.entered() {
			return m.enter(m.loc)
		}
	}
	return m, nil
}

// entered reports whether the current protected view has already issued its
// data load, so applyGuard does not re-fetch on every session notification.
func (m Model) entered() bool {
	switch m.loc.Name {
	case route.NameReservations:
		return m.list.loading || m.list.items != nil
	case route.NameReservationDetail:
		return m.detail.id == m.loc.Arg && (m.detail.loading || m.detail.res != nil)
	}
	return true
}

// afterLogin returns to the guard-preserved origin, or home when the login
// was not triggered by a redirect. The origin replaces the login view.
func (m Model) afterLogin() (Model, tea.Cmd) {
	target := route.Home()
	if m.returnTo != "" {
		if loc, err := route.Parse(m.returnTo); err == nil {
			target = loc
		}
		m.returnTo = ""
	}
	return m.navigate(target)
}
