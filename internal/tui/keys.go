package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CauceloJuanma/reserva/internal/api"
	"github.com/CauceloJuanma/reserva/internal/route"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.loc.Name == route.NameReservationDetail && m.detail.dialog != nil {
		return m.handleDialogKey(msg)
	}

	switch m.loc.Name {
	case route.NameHome:
		return m.handleHomeKey(msg)
	case route.NameLogin:
		return m.handleLoginKey(msg)
	case route.NameRegister:
		return m.handleRegisterKey(msg)
	case route.NameCompanies:
		return m.handleCompaniesKey(msg)
	case route.NameProducts:
		return m.handleProductsKey(msg)
	case route.NameReserve:
		return m.handleReserveKey(msg)
	case route.NameReservations:
		return m.handleListKey(msg)
	case route.NameReservationDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "e":
		return m.navigate(route.Companies())
	case "r":
		return m.navigate(route.Reservations())
	case "i":
		if !m.session.Snapshot().Authenticated() {
			return m.navigate(route.Login())
		}
	case "a":
		if !m.session.Snapshot().Authenticated() {
			return m.navigate(route.Register())
		}
	case "c":
		if m.session.Snapshot().Authenticated() && !m.loggingOut {
			m.loggingOut = true
			return m, m.logoutCmd()
		}
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.submitting {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		return m.navigate(route.Home())
	case tea.KeyTab, tea.KeyDown:
		return m.focusLogin(m.login.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m.focusLogin(m.login.focus - 1)
	case tea.KeyEnter:
		if m.login.focus < len(m.login.inputs)-1 {
			return m.focusLogin(m.login.focus + 1)
		}
		correo := strings.TrimSpace(m.login.inputs[0].Value())
		pass := m.login.inputs[1].Value()
		if correo == "" || pass == "" {
			m.messages.SetError("Completa todos los campos")
			return m, nil
		}
		m.messages.Clear()
		m.login.submitting = true
		return m, m.loginCmd(api.Credentials{Correo: correo, Pass: pass})
	}
	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m Model) focusLogin(idx int) (Model, tea.Cmd) {
	n := len(m.login.inputs)
	m.login.focus = ((idx % n) + n) % n
	var cmd tea.Cmd
	for i := range m.login.inputs {
		if i == m.login.focus {
			cmd = m.login.inputs[i].Focus()
		} else {
			m.login.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.register.submitting {
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		return m.navigate(route.Home())
	case tea.KeyTab, tea.KeyDown:
		return m.focusRegister(m.register.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m.focusRegister(m.register.focus - 1)
	case tea.KeyEnter:
		if m.register.focus < len(m.register.inputs)-1 {
			return m.focusRegister(m.register.focus + 1)
		}
		reg := api.Registration{
			Nombre:           strings.TrimSpace(m.register.inputs[0].Value()),
			Apellido:         strings.TrimSpace(m.register.inputs[1].Value()),
			Correo:           strings.TrimSpace(m.register.inputs[2].Value()),
			Pass:             m.register.inputs[3].Value(),
			PassConfirmation: m.register.inputs[4].Value(),
		}
		if reg.Nombre == "" || reg.Apellido == "" || reg.Correo == "" || reg.Pass == "" {
			m.messages.SetError("Completa todos los campos")
			return m, nil
		}
		if reg.Pass != reg.PassConfirmation {
			m.messages.SetError("Las contraseñas no coinciden")
			return m, nil
		}
		m.messages.Clear()
		m.register.submitting = true
		return m, m.registerCmd(reg)
	}
	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m Model) focusRegister(idx int) (Model, tea.Cmd) {
	n := len(m.register.inputs)
	m.register.focus = ((idx % n) + n) % n
	var cmd tea.Cmd
	for i := range m.register.inputs {
		if i == m.register.focus {
			cmd = m.register.inputs[i].Focus()
		} else {
			m.register.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m Model) handleCompaniesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(route.Home())
	case "up", "k":
		if m.companies.cursor > 0 {
			m.companies.cursor--
		}
	case "down", "j":
		if m.companies.cursor < len(m.companies.items)-1 {
			m.companies.cursor++
		}
	case "r":
		m.companies.loading = true
		return m, m.fetchCompaniesCmd()
	case "enter":
		if m.companies.cursor < len(m.companies.items) {
			company := m.companies.items[m.companies.cursor]
			m.products.companyName = company.Nombre
			return m.navigate(route.Products(company.ID))
		}
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(route.Companies())
	case "up", "k":
		if m.products.cursor > 0 {
			m.products.cursor--
		}
	case "down", "j":
		if m.products.cursor < len(m.products.items)-1 {
			m.products.cursor++
		}
	case "enter":
		if m.products.cursor < len(m.products.items) {
			product := m.products.items[m.products.cursor]
			if product.Stock <= 0 {
				m.messages.SetError("Producto sin stock disponible")
				return m, nil
			}
			m.reserve = ReserveState{companyID: m.products.companyID, product: product, qty: 1}
			return m.navigate(route.Reserve(m.products.companyID))
		}
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleReserveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.reserve.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		return m.navigate(route.Products(m.reserve.companyID))
	case "up", "right", "+", "k":
		if m.reserve.qty >= m.reserve.product.Stock {
			m.reserve.fieldErr = fmt.Sprintf("Stock máximo disponible: %d", m.reserve.product.Stock)
			return m, nil
		}
		m.reserve.qty++
		m.reserve.fieldErr = ""
	case "down", "left", "-", "j":
		if m.reserve.qty > 1 {
			m.reserve.qty--
		}
		m.reserve.fieldErr = ""
	case "enter":
		m.messages.Clear()
		m.reserve.submitting = true
		req := api.CreateReservation{
			EmpresaID: m.reserve.companyID,
			Items: []api.ReservationItem{
				{ProductoID: m.reserve.product.ID, Cantidad: m.reserve.qty},
			},
		}
		return m, m.createReservationCmd(req)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(route.Home())
	case "up", "k":
		if m.list.cursor > 0 {
			m.list.cursor--
		}
	case "down", "j":
		if m.list.cursor < len(m.list.items)-1 {
			m.list.cursor++
		}
	case "r":
		m.list.loading = true
		return m, m.fetchReservationsCmd()
	case "e":
		return m.navigate(route.Companies())
	case "enter":
		if m.list.cursor < len(m.list.items) {
			return m.navigate(route.ReservationDetail(m.list.items[m.list.cursor].ID))
		}
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.navigate(route.Reservations())
	case "r":
		if !m.detail.busy() {
			m.detail.loading = true
			return m, m.fetchReservationCmd(m.detail.id)
		}
	case "c":
		if m.detail.res != nil && m.detail.res.EstadoID.CanConfirm() && !m.detail.busy() && !m.detail.loading {
			m.detail.dialog = &dialog{
				prompt: "¿Confirmar esta reserva? Se reducirá el stock.",
				op:     opConfirm,
			}
		}
	case "x":
		if m.detail.res != nil && m.detail.res.EstadoID.CanCancel() && !m.detail.busy() && !m.detail.loading {
			m.detail.dialog = &dialog{
				prompt: "¿Cancelar esta reserva?",
				op:     opCancel,
			}
		}
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s", "y", "enter":
		op := m.detail.dialog.op
		m.detail.dialog = nil
		m.messages.Clear()
		switch op {
		case opConfirm:
			m.detail.confirming = true
		case opCancel:
			m.detail.canceling = true
		}
		return m, m.transitionCmd(m.detail.id, op)
	case "n", "esc":
		m.detail.dialog = nil
	}
	return m, nil
}
