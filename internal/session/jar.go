// Package session provides the client's persistent session store: a cookie
// jar that mirrors the backend's session cookies to a JSON file, so a login
// survives process restarts the way a browser session does. Storage uses the
// local filesystem with atomic writes.
package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNotFound indicates no persisted session exists.
var ErrNotFound = fmt.Errorf("no persisted session")

// savedCookie is the JSON form of a persisted cookie.
type savedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
}

// jarFile is the on-disk layout of the session store.
type jarFile struct {
	Origin  string        `json:"origin"`
	SavedAt time.Time     `json:"saved_at"`
	Cookies []savedCookie `json:"cookies"`
}

// Jar is an http.CookieJar that persists cookies for a single backend origin.
// All other origins pass through to the in-memory jar untouched. A Jar with
// an empty path keeps cookies in memory only.
//
// Jar is safe for concurrent use.
type Jar struct {
	mu     sync.Mutex
	inner  http.CookieJar
	origin *url.URL
	path   string
}

// NewJar creates a Jar for the given backend origin. If path is non-empty,
// previously persisted cookies are loaded into the jar; a missing or
// unreadable session file is not an error, it just means logged out.
func NewJar(origin *url.URL, path string) (*Jar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	j := &Jar{
		inner:  inner,
		origin: origin,
		path:   path,
	}

	if path != "" {
		if err := j.load(); err != nil && err != ErrNotFound {
			// Corrupted session file: start logged out rather than failing.
			_ = os.Remove(path)
		}
	}

	return j, nil
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// SetCookies implements http.CookieJar. Cookies set for the backend origin
// are also persisted to disk.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)

	if j.path != "" && sameOrigin(u, j.origin) {
		// Persistence failure must not break the request path; the session
		// just won't survive a restart.
		_ = j.save()
	}
}

// Clear removes all cookies for the backend origin and deletes the persisted
// session file. Used on logout.
func (j *Jar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	// cookiejar has no delete; expire every cookie we hold for the origin.
	expired := make([]*http.Cookie, 0)
	for _, c := range j.inner.Cookies(j.origin) {
		expired = append(expired, &http.Cookie{
			Name:    c.Name,
			Value:   "",
			Path:    "/",
			MaxAge:  -1,
			Expires: time.Unix(0, 0),
		})
	}
	j.inner.SetCookies(j.origin, expired)

	if j.path == "" {
		return nil
	}
	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// save writes the current origin cookies to the session file atomically.
// Callers must hold j.mu.
func (j *Jar) save() error {
	cookies := j.inner.Cookies(j.origin)

	file := jarFile{
		Origin:  j.origin.String(),
		SavedAt: time.Now(),
		Cookies: make([]savedCookie, 0, len(cookies)),
	}
	for _, c := range cookies {
		file.Cookies = append(file.Cookies, savedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return atomicWriteFile(j.path, data, 0600)
}

// load reads persisted cookies into the jar. Callers must hold j.mu
// (NewJar calls it before the Jar escapes).
func (j *Jar) load() error {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var file jarFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("session file corrupted: %w", err)
	}
	if file.Origin != j.origin.String() {
		// Session belongs to a different backend; ignore it.
		return ErrNotFound
	}

	cookies := make([]*http.Cookie, 0, len(file.Cookies))
	for _, sc := range file.Cookies {
		if !sc.Expires.IsZero() && sc.Expires.Before(time.Now()) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Path:     sc.Path,
			Domain:   sc.Domain,
			Expires:  sc.Expires,
			Secure:   sc.Secure,
			HttpOnly: sc.HTTPOnly,
		})
	}
	j.inner.SetCookies(j.origin, cookies)
	return nil
}

// sameOrigin reports whether two URLs point at the same scheme://host.
func sameOrigin(a, b *url.URL) bool {
	return a.Scheme == b.Scheme && a.Host == b.Host
}

// atomicWriteFile writes data to a file atomically by writing to a temporary
// file first, then renaming. This ensures the target file is never in a
// partially-written state.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
