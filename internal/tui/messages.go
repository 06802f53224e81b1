package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CauceloJuanma/reserva/internal/api"
	"github.com/CauceloJuanma/reserva/internal/auth"
	"github.com/CauceloJuanma/reserva/internal/reservation"
)

// Messages delivered back into the update loop by async commands. Every
// network call resolves into exactly one of these; view state only ever
// changes in response to a message, never from inside a command.

type sessionResolvedMsg struct {
	state auth.State
}

type loginResultMsg struct {
	user *api.User
	err  error
}

type registerResultMsg struct {
	err error
}

type logoutResultMsg struct {
	err error
}

type companiesLoadedMsg struct {
	companies []api.Company
	err       error
}

type productsLoadedMsg struct {
	companyID int
	products  []api.Product
	err       error
}

type reservationsLoadedMsg struct {
	items []reservation.Summary
	err   error
}

type reservationLoadedMsg struct {
	id  int
	res *reservation.Reservation
	err error
}

type reservationCreatedMsg struct {
	id  int
	err error
}

// transitionOp identifies which lifecycle action a transitionDoneMsg reports.
type transitionOp int

const (
	opConfirm transitionOp = iota
	opCancel
)

type transitionDoneMsg struct {
	id  int
	op  transitionOp
	err error
}

func (m Model) resolveSessionCmd() tea.Cmd {
	return func() tea.Msg {
		state := m.session.Initialize(context.Background())
		return sessionResolvedMsg{state: state}
	}
}

func (m Model) loginCmd(creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		user, err := m.backend.Login(context.Background(), creds)
		return loginResultMsg{user: user, err: err}
	}
}

func (m Model) registerCmd(reg api.Registration) tea.Cmd {
	return func() tea.Msg {
		return registerResultMsg{err: m.backend.Register(context.Background(), reg)}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutResultMsg{err: m.session.Logout(context.Background())}
	}
}

func (m Model) fetchCompaniesCmd() tea.Cmd {
	return func() tea.Msg {
		companies, err := m.backend.Companies(context.Background())
		return companiesLoadedMsg{companies: companies, err: err}
	}
}

func (m Model) fetchProductsCmd(companyID int) tea.Cmd {
	return func() tea.Msg {
		products, err := m.backend.CompanyProducts(context.Background(), companyID)
		return productsLoadedMsg{companyID: companyID, products: products, err: err}
	}
}

func (m Model) fetchReservationsCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.backend.MyReservations(context.Background())
		return reservationsLoadedMsg{items: items, err: err}
	}
}

func (m Model) fetchReservationCmd(id int) tea.Cmd {
	return func() tea.Msg {
		res, err := m.backend.Reservation(context.Background(), id)
		return reservationLoadedMsg{id: id, res: res, err: err}
	}
}

func (m Model) createReservationCmd(req api.CreateReservation) tea.Cmd {
	return func() tea.Msg {
		id, err := m.backend.Create(context.Background(), req)
		return reservationCreatedMsg{id: id, err: err}
	}
}

func (m Model) transitionCmd(id int, op transitionOp) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch op {
		case opConfirm:
			err = m.backend.Confirm(context.Background(), id)
		case opCancel:
			err = m.backend.Cancel(context.Background(), id)
		}
		return transitionDoneMsg{id: id, op: op, err: err}
	}
}
