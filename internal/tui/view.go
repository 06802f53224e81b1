package tui

import (
	"fmt"
	"strings"

	"github.com/CauceloJuanma/reserva/internal/route"
	"github.com/CauceloJuanma/reserva/internal/tui/styles"
)

// View renders the current location. Protected content is never drawn while
// the initial session resolution is pending: the guard verdict is rechecked
// here so a stale frame cannot leak it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Iniciando..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	verdict := route.Evaluate(m.session.Snapshot(), m.loc)
	if verdict.Decision != route.DecisionAllow {
		b.WriteString(m.spin.View() + " Cargando...\n")
	} else {
		b.WriteString(m.renderBody())
	}

	if m.messages.errMsg != "" {
		b.WriteString("\n" + styles.ErrorBar.Render(m.messages.errMsg) + "\n")
	} else if m.messages.infoMsg != "" {
		b.WriteString("\n" + styles.InfoBar.Render(m.messages.infoMsg) + "\n")
	}

	b.WriteString("\n" + styles.Help.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderBody() string {
	switch m.loc.Name {
	case route.NameHome:
		return m.renderHome()
	case route.NameLogin:
		return m.renderLogin()
	case route.NameRegister:
		return m.renderRegister()
	case route.NameCompanies:
		return m.renderCompanies()
	case route.NameProducts:
		return m.renderProducts()
	case route.NameReserve:
		return m.renderReserve()
	case route.NameReservations:
		return m.renderReservations()
	case route.NameReservationDetail:
		return m.renderDetail()
	}
	return ""
}

func (m Model) renderHeader() string {
	state := m.session.Snapshot()
	var who string
	switch {
	case state.Loading:
		who = styles.Muted.Render("comprobando sesión...")
	case state.Authenticated():
		who = styles.Success.Render(state.User.Nombre + " " + state.User.Apellido)
	default:
		who = styles.Muted.Render("sin sesión")
	}
	left := styles.Header.Render("Reserva")
	return left + "  " + who + "  " + styles.Muted.Render(m.loc.Path())
}

func (m Model) helpLine() string {
	switch m.loc.Name {
	case route.NameHome:
		state := m.session.Snapshot()
		if state.Authenticated() {
			return "e empresas • r mis reservas • c cerrar sesión • q salir"
		}
		return "e empresas • r mis reservas • i iniciar sesión • a registro • q salir"
	case route.NameLogin, route.NameRegister:
		return "tab siguiente campo • enter enviar • esc volver"
	case route.NameCompanies:
		return "↑/↓ mover • enter ver productos • r recargar • esc inicio • q salir"
	case route.NameProducts:
		return "↑/↓ mover • enter reservar • esc empresas • q salir"
	case route.NameReserve:
		return "+/- cantidad • enter confirmar • esc volver"
	case route.NameReservations:
		return "↑/↓ mover • enter detalle • r recargar • e empresas • esc inicio • q salir"
	case route.NameReservationDetail:
		if m.detail.dialog != nil {
			return "s sí • n no"
		}
		return "c confirmar • x cancelar • r recargar • esc volver • q salir"
	}
	return ""
}

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Marketplace de reservas") + "\n")
	b.WriteString("Explora las empresas, elige un producto y gestiona tus reservas.\n\n")
	b.WriteString("  " + styles.Primary.Render("[e]") + " Empresas\n")
	b.WriteString("  " + styles.Primary.Render("[r]") + " Mis Reservas\n")
	state := m.session.Snapshot()
	if state.Authenticated() {
		b.WriteString("  " + styles.Primary.Render("[c]") + " Cerrar sesión\n")
	} else if !state.Loading {
		b.WriteString("  " + styles.Primary.Render("[i]") + " Iniciar sesión\n")
		b.WriteString("  " + styles.Primary.Render("[a]") + " Registro\n")
	}
	return b.String()
}

func (m Model) renderLogin() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Iniciar sesión") + "\n")
	for _, in := range m.login.inputs {
		b.WriteString(in.View() + "\n")
	}
	if m.login.submitting {
		b.WriteString("\n" + m.spin.View() + " Iniciando sesión...\n")
	}
	return styles.Box.Render(b.String()) + "\n"
}

func (m Model) renderRegister() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Registro") + "\n")
	for _, in := range m.register.inputs {
		b.WriteString(in.View() + "\n")
	}
	if m.register.submitting {
		b.WriteString("\n" + m.spin.View() + " Enviando registro...\n")
	}
	return styles.Box.Render(b.String()) + "\n"
}

// money formats an amount with the configured currency symbol.
func (m Model) money(v float64) string {
	return fmt.Sprintf("%.2f%s", v, m.cfg.TUI.Currency)
}
