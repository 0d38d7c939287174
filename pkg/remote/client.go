// Package remote talks to the journal service over HTTP JSON with bearer
// token auth.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/entry"
)

const (
	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 32 << 20
	defaultTimeout  = 30 * time.Second
	userAgent       = "daybook"
)

var (
	// ErrUnauthorized is returned for 401 responses and when no token is held.
	ErrUnauthorized = errors.New("remote: unauthorized")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("remote: not found")
)

// StatusError is a non-2xx response. Message is the service's "error" field
// when it sent one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote: %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("remote: %d %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// User is the signed-in account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client is the remote entry service.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenStore
	log    *slog.Logger
}

// New returns a client for the API rooted at base, e.g.
// "http://localhost:3001/api". A nil tokens keeps the token in memory.
func New(base string, tokens TokenStore, opts ...Option) *Client {
	if tokens == nil {
		tokens = &MemoryTokens{}
	}
	c := &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: defaultTimeout},
		tokens: tokens,
		log:    slog.Default().With("component", "remote"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Base returns the API root.
func (c *Client) Base() string {
	return c.base
}

// Authenticated reports whether a token is held.
func (c *Client) Authenticated() bool {
	tok, err := c.tokens.Token()
	return err == nil && tok != ""
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login exchanges credentials for a token and keeps it.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account and keeps its token. name may be empty.
func (c *Client) Register(ctx context.Context, email, password, name string) (User, error) {
	body := map[string]string{"email": email, "password": password}
	if name != "" {
		body["name"] = name
	}
	return c.authenticate(ctx, "/auth/register", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (User, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return User{}, err
	}
	if out.Token == "" {
		return User{}, errors.New("remote: auth response without token")
	}
	if err := c.tokens.SetToken(out.Token); err != nil {
		return User{}, fmt.Errorf("remote: keep token: %w", err)
	}
	return out.User, nil
}

// Me returns the account the held token belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// Logout forgets the token.
func (c *Client) Logout() error {
	return c.tokens.ClearToken()
}

// FetchAll returns every remote entry keyed by date, media in storage form.
func (c *Client) FetchAll(ctx context.Context) (map[string]entry.Entry, error) {
	var out struct {
		Entries map[string]entry.Entry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, "/entries", nil, &out); err != nil {
		return nil, err
	}
	entries := make(map[string]entry.Entry, len(out.Entries))
	for k, e := range out.Entries {
		if _, err := entry.ParseDate(k); err != nil {
			c.log.Warn("skipping remote entry with bad date", "date", k)
			continue
		}
		entries[k] = c.clean(e)
	}
	return entries, nil
}

// Fetch returns one remote entry; ok is false when the service has none.
func (c *Client) Fetch(ctx context.Context, date string) (e entry.Entry, ok bool, err error) {
	var out struct {
		Entry *entry.Entry `json:"entry"`
	}
	if err := c.do(ctx, http.MethodGet, "/entries/"+url.PathEscape(date), nil, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, err
	}
	if out.Entry == nil {
		return entry.Entry{}, false, nil
	}
	return c.clean(*out.Entry), true, nil
}

// clean fills omitted sequences and drops attachments of unknown kind.
func (c *Client) clean(e entry.Entry) entry.Entry {
	kept := e.Normalize().WithoutInvalidMedia()
	if n := len(e.Media) - len(kept.Media); n > 0 {
		c.log.Warn("dropping untyped remote media", "date", e.Date, "count", n)
	}
	return kept
}

// Upsert overwrites the remote entry for e.Date with e.
func (c *Client) Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	var out struct {
		Entry entry.Entry `json:"entry"`
	}
	if err := c.do(ctx, http.MethodPut, "/entries/"+url.PathEscape(e.Date), e, &out); err != nil {
		return entry.Entry{}, err
	}
	return out.Entry.Normalize(), nil
}

// Delete removes the remote entry for date.
func (c *Client) Delete(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodDelete, "/entries/"+url.PathEscape(date), nil, nil)
}

// Upload sends a file as multipart form data and returns the attachment the
// service recorded for it, url in storage form.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader, entryDate string) (entry.Media, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return entry.Media{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return entry.Media{}, fmt.Errorf("remote: read %s: %w", name, err)
	}
	if entryDate != "" {
		if err := mw.WriteField("entryDate", entryDate); err != nil {
			return entry.Media{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return entry.Media{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &buf)
	if err != nil {
		return entry.Media{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		Media entry.Media `json:"media"`
	}
	if err := c.send(req, &out); err != nil {
		return entry.Media{}, err
	}
	return out.Media, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	tok, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("remote: read token: %w", err)
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	log := c.log.With("method", req.Method, "path", req.URL.Path)
	log.Debug("request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body := io.LimitReader(resp.Body, MaxResponseSize)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		var msg struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(body).Decode(&msg) == nil {
			se.Message = msg.Error
		}
		log.Warn("unexpected status", "status", resp.StatusCode)
		return se
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, body)
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode %s: %w", req.URL.Path, err)
	}
	return nil
}
