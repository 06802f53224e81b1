package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/CauceloJuanma/reserva/internal/api"
	"github.com/CauceloJuanma/reserva/internal/reservation"
)

// MessageState holds the transient error/info line rendered under the view.
type MessageState struct {
	errMsg  string
	infoMsg string
}

func (s *MessageState) SetError(msg string) {
	s.errMsg = msg
	s.infoMsg = ""
}

func (s *MessageState) SetInfo(msg string) {
	s.infoMsg = msg
	s.errMsg = ""
}

func (s *MessageState) Clear() {
	s.errMsg = ""
	s.infoMsg = ""
}

// LoginState backs the login form.
type LoginState struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func NewLoginState() LoginState {
	correo := textinput.New()
	correo.Placeholder = "correo@ejemplo.com"
	correo.Prompt = "Correo: "
	correo.CharLimit = 120

	pass := textinput.New()
	pass.Placeholder = "contraseña"
	pass.Prompt = "Contraseña: "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 120

	return LoginState{inputs: []textinput.Model{correo, pass}}
}

// RegisterState backs the registration form. Field order matches the tab
// order: nombre, apellido, correo, contraseña, confirmación.
type RegisterState struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func NewRegisterState() RegisterState {
	mk := func(prompt, placeholder string) textinput.Model {
		in := textinput.New()
		in.Prompt = prompt
		in.Placeholder = placeholder
		in.CharLimit = 120
		return in
	}
	pass := mk("Contraseña: ", "mínimo 8 caracteres")
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	confirm := mk("Confirmación: ", "repite la contraseña")
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'

	return RegisterState{inputs: []textinput.Model{
		mk("Nombre: ", "nombre"),
		mk("Apellido: ", "apellido"),
		mk("Correo: ", "correo@ejemplo.com"),
		pass,
		confirm,
	}}
}

// CompaniesState backs the company catalog list.
type CompaniesState struct {
	items   []api.Company
	cursor  int
	loading bool
}

// ProductsState backs the product list of one company.
type ProductsState struct {
	companyID   int
	companyName string
	items       []api.Product
	cursor      int
	loading     bool
}

// ReserveState backs the quantity form for a single product.
type ReserveState struct {
	companyID  int
	product    api.Product
	qty        int
	fieldErr   string
	submitting bool
}

// ListState backs the "Mis Reservas" list.
type ListState struct {
	items   []reservation.Summary
	cursor  int
	loading bool
}

// dialog is a blocking yes/no prompt over the detail view.
type dialog struct {
	prompt string
	op     transitionOp
}

// DetailState backs the reservation detail view. confirming and canceling
// are per-operation busy flags: while one is set the corresponding action
// is not offered again.
type DetailState struct {
	id         int
	res        *reservation.Reservation
	loading    bool
	confirming bool
	canceling  bool
	dialog     *dialog
}

func (s DetailState) busy() bool {
	return s.confirming || s.canceling
}
