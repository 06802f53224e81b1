package api

import "github.com/CauceloJuanma/reserva/internal/reservation"

// User is the authenticated identity returned by the backend. The core only
// needs its existence; the fields are carried for display.
type User struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Correo   string `json:"correo"`
}

// Company is a marketplace company record.
type Company struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
}

// Product is a company's offered product.
type Product struct {
	ID          int     `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Stock       int     `json:"stock"`
	EmpresaID   int     `json:"empresa_id"`
}

// Credentials is the login request body.
type Credentials struct {
	Correo string `json:"correo"`
	Pass   string `json:"pass"`
}

// Registration is the register request body.
type Registration struct {
	Nombre           string `json:"nombre"`
	Apellido         string `json:"apellido"`
	Correo           string `json:"correo"`
	Pass             string `json:"pass"`
	PassConfirmation string `json:"pass_confirmation"`
}

// ReservationItem is one product-quantity pair in a create request.
type ReservationItem struct {
	ProductoID int `json:"producto_id"`
	Cantidad   int `json:"cantidad"`
}

// CreateReservation is the create-reservation request body.
type CreateReservation struct {
	EmpresaID int               `json:"empresa_id"`
	Items     []ReservationItem `json:"items"`
}

// loginResponse is the login endpoint's success envelope.
type loginResponse struct {
	Usuario User `json:"usuario"`
}

// reservationResponse is the detail endpoint's envelope.
type reservationResponse struct {
	Reservation reservation.Reservation `json:"reservation"`
}

// listResponse is the list endpoint's envelope.
type listResponse struct {
	Success  bool                  `json:"success"`
	Reservas []reservation.Summary `json:"reservas"`
	Message  string                `json:"message"`
}

// actionResponse is the envelope of confirm/cancel calls. The backend signals
// some failures with success=false on a 2xx status.
type actionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// createResponse is the envelope of the create-reservation call.
type createResponse struct {
	Success       bool   `json:"success"`
	ReservationID int    `json:"reservation_id"`
	Message       string `json:"message"`
}

// errorBody is the shape of backend error responses.
type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

// message extracts the most specific human-readable message from an error
// body: the first validation error, then `error`, then `message`.
func (e errorBody) message() string {
	for _, msgs := range e.Errors {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
