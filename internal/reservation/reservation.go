// Package reservation defines the client-side reservation model: the status
// machine the backend encodes as small integer codes, line items, and the
// display totals computed from them. The client never mutates a status
// locally; transitions happen server-side and are observed by re-fetching.
package reservation

import "time"

// Status is a reservation lifecycle state. The backend encodes it as an
// integer (estado_id): 1=pending, 2=confirmed, 3=canceled.
type Status int

const (
	// StatusPending is the initial state of a reservation.
	StatusPending Status = 1
	// StatusConfirmed means stock has been committed server-side.
	StatusConfirmed Status = 2
	// StatusCanceled is the terminal state; no transition leaves it.
	StatusCanceled Status = 3
)

// String returns the Spanish badge label used across the UI.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusConfirmed:
		return "Confirmada"
	case StatusCanceled:
		return "Cancelada"
	default:
		return "Desconocido"
	}
}

// Valid reports whether s is one of the known status codes.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCanceled
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusCanceled
}

// CanConfirm reports whether a confirm transition may be offered.
// Only pending reservations can be confirmed.
func (s Status) CanConfirm() bool {
	return s == StatusPending
}

// CanCancel reports whether a cancel transition may be offered.
// Pending and confirmed reservations can be canceled; canceled ones cannot.
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Company is the owning company reference carried by a reservation.
type Company struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// Product is the product reference carried by a line item.
type Product struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// Line is one product-quantity-price entry within a reservation.
type Line struct {
	ID             int     `json:"id"`
	Producto       Product `json:"producto"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Subtotal       float64 `json:"subtotal"`
}

// ComputedSubtotal is Cantidad × PrecioUnitario, computed client-side.
// The server's Subtotal field is used for display only and never trusted
// for anything beyond that.
func (l Line) ComputedSubtotal() float64 {
	return float64(l.Cantidad) * l.PrecioUnitario
}

// Reservation is the full detail of a reservation, including line items.
type Reservation struct {
	ID        int       `json:"id"`
	EstadoID  Status    `json:"estado_id"`
	Empresa   Company   `json:"empresa"`
	Lineas    []Line    `json:"lineas"`
	CreatedAt time.Time `json:"created_at"`
}

// Total is the sum of the line subtotals, computed client-side for display.
// It is never authoritative for billing.
func (r Reservation) Total() float64 {
	var total float64
	for _, l := range r.Lineas {
		total += l.Subtotal
	}
	return total
}

// Summary is the flattened projection returned by the list endpoint.
// It carries no line items.
type Summary struct {
	ID         int     `json:"id"`
	Empresa    string  `json:"empresa"`
	Producto   string  `json:"producto"`
	ItemsCount int     `json:"items_count"`
	Total      float64 `json:"total"`
	Fecha      string  `json:"fecha"`
	EstadoID   Status  `json:"estado_id"`
}
