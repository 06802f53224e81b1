// Package route defines the client's navigation surface: the route table the
// browser app exposed as URL paths, parsing between paths and typed
// locations, and the guard that gates protected locations behind the
// session state.
package route

import (
	"fmt"
	"strconv"
	"strings"
)

// Name identifies a view in the route table.
type Name string

const (
	NameHome              Name = "home"
	NameLogin             Name = "login"
	NameRegister          Name = "register"
	NameCompanies         Name = "companies"
	NameProducts          Name = "products"
	NameReserve           Name = "reserve"
	NameReservations      Name = "reservations"
	NameReservationDetail Name = "reservation_detail"
)

// Location is a resolved navigation target: a route plus its parameter.
// Arg carries the company ID for products/reserve and the reservation ID for
// the detail view; it is zero for parameterless routes.
type Location struct {
	Name Name
	Arg  int
}

// Constructors for each route in the table.

func Home() Location      { return Location{Name: NameHome} }
func Login() Location     { return Location{Name: NameLogin} }
func Register() Location  { return Location{Name: NameRegister} }
func Companies() Location { return Location{Name: NameCompanies} }
func Products(companyID int) Location {
	return Location{Name: NameProducts, Arg: companyID}
}
func Reserve(companyID int) Location {
	return Location{Name: NameReserve, Arg: companyID}
}
func Reservations() Location { return Location{Name: NameReservations} }
func ReservationDetail(id int) Location {
	return Location{Name: NameReservationDetail, Arg: id}
}

// Path renders the location as the client path the browser app used.
func (l Location) Path() string {
	switch l.Name {
	case NameHome:
		return "/"
	case NameLogin:
		return "/login"
	case NameRegister:
		return "/register"
	case NameCompanies:
		return "/companies"
	case NameProducts:
		return fmt.Sprintf("/products/%d", l.Arg)
	case NameReserve:
		return fmt.Sprintf("/products/%d/reserve", l.Arg)
	case NameReservations:
		return "/reservations"
	case NameReservationDetail:
		return fmt.Sprintf("/reservations/%d", l.Arg)
	default:
		return "/"
	}
}

// Protected reports whether the location requires an authenticated session.
// Only the reservation views are gated; catalog browsing is public.
func (l Location) Protected() bool {
	return l.Name == NameReservations || l.Name == NameReservationDetail
}

// Parse resolves a client path into a Location.
func Parse(path string) (Location, error) {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return Home(), nil
	}

	switch path {
	case "/login":
		return Login(), nil
	case "/register":
		return Register(), nil
	case "/companies":
		return Companies(), nil
	case "/reservations":
		return Reservations(), nil
	}

	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	switch {
	case len(parts) == 2 && parts[0] == "products":
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			return Location{}, fmt.Errorf("invalid company id %q", parts[1])
		}
		return Products(id), nil
	case len(parts) == 3 && parts[0] == "products" && parts[2] == "reserve":
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			return Location{}, fmt.Errorf("invalid company id %q", parts[1])
		}
		return Reserve(id), nil
	case len(parts) == 2 && parts[0] == "reservations":
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			return Location{}, fmt.Errorf("invalid reservation id %q", parts[1])
		}
		return ReservationDetail(id), nil
	}

	return Location{}, fmt.Errorf("unknown route %q", path)
}
