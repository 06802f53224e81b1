// Package api implements the typed REST client for the reservation
// marketplace backend. Authentication is cookie-based (Sanctum-style): the
// client holds a cookie jar, primes a CSRF token cookie before mutating
// calls, and echoes it back in the X-XSRF-TOKEN header.
//
// All methods take a context and return explicit errors; failures carry the
// backend's human-readable message (see internal/errors.APIError) so views
// can surface it verbatim.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/CauceloJuanma/reserva/internal/errors"
	"github.com/CauceloJuanma/reserva/internal/logging"
	"github.com/CauceloJuanma/reserva/internal/reservation"
)

// csrfCookieName is the token cookie the backend issues; its value is echoed
// back (URL-decoded) in the csrfHeader on every mutating request.
const (
	csrfCookieName = "XSRF-TOKEN"
	csrfHeader     = "X-XSRF-TOKEN"
)

// CookieJar is the jar the client needs: standard cookie semantics plus the
// ability to wipe the session on logout.
type CookieJar interface {
	http.CookieJar
	Clear() error
}

// Client is the marketplace API client. It is safe for concurrent use.
type Client struct {
	base *url.URL
	http *http.Client
	jar  CookieJar
	log  *logging.Logger
}

// New creates a Client for the backend at baseURL using the given jar for
// session cookies.
func New(baseURL string, jar CookieJar, timeout time.Duration, log *logging.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if log == nil {
		log = logging.NopLogger()
	}

	return &Client{
		base: base,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		jar: jar,
		log: log,
	}, nil
}

// BaseURL returns the backend origin this client talks to.
func (c *Client) BaseURL() *url.URL {
	return c.base
}

// -----------------------------------------------------------------------------
// Session & Auth
// -----------------------------------------------------------------------------

// ResolveSession asks the backend who the current session belongs to.
// An unauthenticated session is reported as ErrUnauthenticated; callers doing
// initial resolution treat that as "logged out", not as a failure.
func (c *Client) ResolveSession(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates with the backend and returns the identity it reports.
// The session cookie lands in the jar as a side effect.
func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp.Usuario, nil
}

// Register creates a new account. Validation failures surface as APIError
// with the backend's first validation message.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.do(ctx, http.MethodPost, "/api/register", reg, nil)
}

// Logout invalidates the server-side session and wipes the local cookie
// store. The local wipe happens regardless of the call's outcome: the user's
// intent is to leave, and a network failure must not pin them logged in.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	if clearErr := c.jar.Clear(); clearErr != nil {
		c.log.Warn("failed to clear session store", "error", clearErr)
	}
	return err
}

// -----------------------------------------------------------------------------
// Catalog
// -----------------------------------------------------------------------------

// Companies lists the marketplace companies.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	var companies []Company
	if err := c.do(ctx, http.MethodGet, "/api/companies", nil, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// CompanyProducts lists the products offered by a company.
func (c *Client) CompanyProducts(ctx context.Context, companyID int) ([]Product, error) {
	var products []Product
	path := fmt.Sprintf("/api/companies/%d/products", companyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// -----------------------------------------------------------------------------
// Reservations
// -----------------------------------------------------------------------------

// Reservation fetches the full detail of one reservation, line items included.
func (c *Client) Reservation(ctx context.Context, id int) (*reservation.Reservation, error) {
	var resp reservationResponse
	path := fmt.Sprintf("/api/reservations/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Reservation, nil
}

// MyReservations lists the current user's reservations as flat summaries.
func (c *Client) MyReservations(ctx context.Context) ([]reservation.Summary, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/api/reservations", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, apperrors.NewAPIError(http.StatusOK, resp.Message)
	}
	return resp.Reservas, nil
}

// Create submits a new reservation and returns its ID.
func (c *Client) Create(ctx context.Context, req CreateReservation) (int, error) {
	var resp createResponse
	if err := c.do(ctx, http.MethodPost, "/api/reservations", req, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, apperrors.NewAPIError(http.StatusOK, resp.Message)
	}
	return resp.ReservationID, nil
}

// Confirm asks the backend to confirm a reservation. The server is the sole
// authority on whether the transition is legal (stock may have changed);
// callers must re-fetch after success rather than assume the new status.
func (c *Client) Confirm(ctx context.Context, id int) error {
	return c.transition(ctx, id, "confirm")
}

// Cancel asks the backend to cancel a reservation. Same contract as Confirm.
func (c *Client) Cancel(ctx context.Context, id int) error {
	return c.transition(ctx, id, "cancel")
}

func (c *Client) transition(ctx context.Context, id int, action string) error {
	var resp actionResponse
	path := fmt.Sprintf("/api/reservations/%d/%s", id, action)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return apperrors.NewAPIError(http.StatusOK, resp.Message)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Transport
// -----------------------------------------------------------------------------

// do performs one API request. Mutating requests are preceded by CSRF
// priming; this applies uniformly to every mutating call, not just
// login/register.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.NewString()
	log := c.log.WithRequest(requestID)

	mutating := method != http.MethodGet && method != http.MethodHead
	if mutating {
		if err := c.ensureCSRF(ctx); err != nil {
			return err
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if mutating {
		if token := c.csrfToken(); token != "" {
			req.Header.Set(csrfHeader, token)
		}
	}

	log.Debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug("api response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// errorFromResponse turns a non-2xx response into an APIError carrying the
// backend's message. A 419 also drops the cached CSRF cookie so the next
// attempt re-primes.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var body errorBody
	// Best effort; an empty or non-JSON body just means no server message.
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body)

	if resp.StatusCode == 419 {
		c.expireCSRF()
	}

	return apperrors.NewAPIError(resp.StatusCode, body.message())
}

// ensureCSRF primes the CSRF token cookie if the jar does not hold one yet.
func (c *Client) ensureCSRF(ctx context.Context) error {
	if c.csrfToken() != "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/sanctum/csrf-cookie"), nil)
	if err != nil {
		return fmt.Errorf("failed to build csrf request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return apperrors.NewAPIError(resp.StatusCode, "")
	}
	return nil
}

// csrfToken returns the URL-decoded CSRF token from the jar, or "".
func (c *Client) csrfToken() string {
	for _, cookie := range c.jar.Cookies(c.base) {
		if cookie.Name == csrfCookieName {
			if decoded, err := url.QueryUnescape(cookie.Value); err == nil {
				return decoded
			}
			return cookie.Value
		}
	}
	return ""
}

// expireCSRF drops the token cookie so the next mutating call re-primes.
func (c *Client) expireCSRF() {
	c.jar.SetCookies(c.base, []*http.Cookie{{
		Name:    csrfCookieName,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	}})
}

// endpoint joins the base URL with an API path.
func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = path
	return u.String()
}
