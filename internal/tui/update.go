package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/CauceloJuanma/reserva/internal/errors"
	"github.com/CauceloJuanma/reserva/internal/route"
)

// Update is the single state-transition function of the TUI.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionResolvedMsg:
		m.log.Info("session resolved", "authenticated", msg.state.Authenticated())
		return m.applyGuard()

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		m.register.submitting = false
		if msg.err != nil {
			m.messages.SetError(apperrors.UserMessage(msg.err, "No se pudo completar el registro"))
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.enter(route.Login())
		m.messages.SetInfo("Registro completado. Inicia sesión con tu cuenta.")
		return m, cmd

	case logoutResultMsg:
		m.loggingOut = false
		if msg.err != nil {
			m.log.Warn("logout server call failed", "error", msg.err)
		}
		// The local session is cleared regardless of the server outcome.
		var cmd tea.Cmd
		m, cmd = m.navigate(route.Home())
		m.messages.SetInfo("Sesión cerrada")
		return m, cmd

	case companiesLoadedMsg:
		// Discard results once the user has navigated away.
		if m.loc.Name != route.NameCompanies {
			return m, nil
		}
		m.companies.loading = false
		if msg.err != nil {
			m.messages.SetError(apperrors.UserMessage(msg.err, "Error al cargar las empresas"))
			return m, nil
		}
		m.companies.items = msg.companies
		return m, nil

	case productsLoadedMsg:
		// Discard results for a company the user has already navigated away
		// from.
		if m.loc.Name != route.NameProducts || m.products.companyID != msg.companyID {
			return m, nil
		}
		m.products.loading = false
		if msg.err != nil {
			m.messages.SetError(apperrors.UserMessage(msg.err, "Error al cargar los productos"))
			return m, nil
		}
		m.products.items = msg.products
		return m, nil

	case reservationsLoadedMsg:
		// Discard results once the user has navigated away.
		if m.loc.Name != route.NameReservations {
			return m, nil
		}
		m.list.loading = false
		if msg.err != nil {
			m.messages.SetError(apperrors.UserMessage(msg.err, "Error al cargar las reservas"))
			return m, nil
		}
		m.list.items = msg.items
		if m.list.cursor >= len(m.list.items) {
			m.list.cursor = 0
		}
		return m, nil

	case reservationLoadedMsg:
		return m.handleReservationLoaded(msg)

	case reservationCreatedMsg:
		m.reserve.submitting = false
		if msg.err != nil {
			m.messages.SetError(apperrors.UserMessage(msg.err, "No se pudo crear la reserva"))
			return m, nil
		}
		var cmd tea.Cmd
		m, cmd = m.navigate(route.ReservationDetail(msg.id))
		m.messages.SetInfo("Reserva creada correctamente")
		return m, cmd

	case transitionDoneMsg:
		return m.handleTransitionDone(msg)
	}

	return m, nil
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false
	if msg.err != nil {
		switch {
		case apperrors.IsUnauthenticated(msg.err):
			m.messages.SetError("Credenciales incorrectas")
		case apperrors.IsSessionExpired(msg.err):
			m.messages.SetError("La sesión ha expirado, inténtalo de nuevo")
		default:
			m.messages.SetError(apperrors.UserMessage(msg.err, "No se pudo iniciar sesión"))
		}
		return m, nil
	}
	m.session.Login(msg.user)
	var cmd tea.Cmd
	m, cmd = m.afterLogin()
	m.messages.SetInfo("Sesión iniciada")
	return m, cmd
}

func (m Model) handleReservationLoaded(msg reservationLoadedMsg) (tea.Model, tea.Cmd) {
	// Stale guard: only the reservation currently on screen may update the
	// detail state.
	if m.loc.Name != route.NameReservationDetail || m.detail.id != msg.id {
		return m, nil
	}
	if msg.err != nil {
		// Failed detail loads fall back to the list so the user is never
		// stranded on an empty view.
		errText := apperrors.UserMessage(msg.err, "Error al cargar la reserva")
		m.log.Warn("reservation load failed", "id", msg.id, "error", msg.err)
		var cmd tea.Cmd
		m, cmd = m.navigate(route.Reservations())
		m.messages.SetError(errText)
		return m, cmd
	}
	m.detail.loading = false
	m.detail.res = msg.res
	return m, nil
}

func (m Model) handleTransitionDone(msg transitionDoneMsg) (tea.Model, tea.Cmd) {
	// Stale guard: a confirm/cancel result for a reservation no longer on
	// screen is dropped without touching state.
	if m.loc.Name != route.NameReservationDetail || m.detail.id != msg.id {
		return m, nil
	}
	switch msg.op {
	case opConfirm:
		m.detail.confirming = false
	case opCancel:
		m.detail.canceling = false
	}
	if msg.err != nil {
		m.messages.SetError(apperrors.UserMessage(msg.err, "No se pudo actualizar la reserva"))
		return m, nil
	}
	switch msg.op {
	case opConfirm:
		m.messages.SetInfo("Reserva confirmada correctamente")
	case opCancel:
		m.messages.SetInfo("Reserva cancelada correctamente")
	}
	// The displayed status only changes once the server confirms it: re-fetch
	// rather than mutate locally.
	m.detail.loading = true
	return m, m.fetchReservationCmd(msg.id)
}
