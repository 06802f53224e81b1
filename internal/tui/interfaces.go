package tui

import (
	"context"

	"github.com/CauceloJuanma/reserva/internal/api"
	"github.com/CauceloJuanma/reserva/internal/reservation"
)

// Backend is the surface of the marketplace API the TUI consumes. It is
// satisfied by *api.Client; tests substitute a stub.
type Backend interface {
	ResolveSession(ctx context.Context) (*api.User, error)
	Login(ctx context.Context, creds api.Credentials) (*api.User, error)
	Register(ctx context.Context, reg api.Registration) error
	Logout(ctx context.Context) error
	Companies(ctx context.Context) ([]api.Company, error)
	CompanyProducts(ctx context.Context, companyID int) ([]api.Product, error)
	MyReservations(ctx context.Context) ([]reservation.Summary, error)
	Reservation(ctx context.Context, id int) (*reservation.Reservation, error)
	Create(ctx context.Context, req api.CreateReservation) (int, error)
	Confirm(ctx context.Context, id int) error
	Cancel(ctx context.Context, id int) error
}
