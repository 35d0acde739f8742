// Package backend is the HTTP client for the Festify REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/domain/entity"
)

const DefaultLoginPath = "/auth/login"

// SessionSource supplies the session used for authenticated calls.
type SessionSource interface {
	GetSession(ctx context.Context) (*entity.Session, error)
}

// Navigator performs the redirect side effect on auth failures.
type Navigator interface {
	Redirect(ctx context.Context, path string)
}

// Observer is notified once per backend round trip. status is 0 when no
// response was received.
type Observer interface {
	ObserveRequest(method string, status int, elapsed time.Duration)
}

// RequestOptions shape a single call. Body is JSON-encoded unless it is a
// []byte or io.Reader.
type RequestOptions struct {
	Method string
	Header http.Header
	Query  url.Values
	Body   any
}

type Client struct {
	baseURL   string
	http      *http.Client
	sessions  SessionSource
	nav       Navigator
	observer  Observer
	loginPath string
	timeout   time.Duration
	logger    *logrus.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option    { return func(c *Client) { c.http = hc } }
func WithSessionSource(s SessionSource) Option { return func(c *Client) { c.sessions = s } }
func WithNavigator(n Navigator) Option         { return func(c *Client) { c.nav = n } }
func WithObserver(o Observer) Option           { return func(c *Client) { c.observer = o } }
func WithLogger(l *logrus.Logger) Option       { return func(c *Client) { c.logger = l } }
func WithLoginPath(p string) Option            { return func(c *Client) { c.loginPath = p } }
func WithTimeout(d time.Duration) Option       { return func(c *Client) { c.timeout = d } }

// NewClient builds a client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 15 * time.Second},
		loginPath: DefaultLoginPath,
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.SetOutput(io.Discard)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// AuthenticatedRequest issues a request carrying the current session's bearer
// token. Without a session it redirects to the login path and returns
// ErrAuthRequired before touching the network.
func (c *Client) AuthenticatedRequest(ctx context.Context, path string, opts RequestOptions, out any) error {
	var session *entity.Session
	var err error
	if c.sessions != nil {
		session, err = c.sessions.GetSession(ctx)
	}
	if err != nil || session == nil || session.AccessToken == "" {
		if err != nil {
			c.logger.WithError(err).WithField("path", path).Warn("session lookup failed")
		}
		c.redirectToLogin(ctx)
		return ErrAuthRequired
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+session.AccessToken)
	header.Set("Content-Type", "application/json")
	for k, vs := range opts.Header {
		header[k] = vs
	}
	opts.Header = header

	status, err := c.do(ctx, path, opts, out)
	if status == http.StatusUnauthorized {
		c.redirectToLogin(ctx)
		return ErrUnauthorized
	}
	return err
}

// PublicRequest issues a request without credentials. It never redirects.
func (c *Client) PublicRequest(ctx context.Context, path string, opts RequestOptions, out any) error {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	for k, vs := range opts.Header {
		header[k] = vs
	}
	opts.Header = header
	_, err := c.do(ctx, path, opts, out)
	return err
}

func (c *Client) redirectToLogin(ctx context.Context) {
	if c.nav != nil {
		c.nav.Redirect(ctx, c.loginPath)
	}
}

func (c *Client) do(ctx context.Context, path string, opts RequestOptions, out any) (int, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return 0, &UnexpectedError{Err: fmt.Errorf("encode request body: %w", err)}
	}

	target := c.baseURL + path
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, &UnexpectedError{Err: err}
	}
	req.Header = opts.Header
	if req.Header == nil {
		req.Header = http.Header{}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, 0, start)
		c.logger.WithError(err).WithFields(logrus.Fields{"method": method, "path": path}).Warn("backend request failed")
		return 0, &UnexpectedError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	c.observe(method, resp.StatusCode, start)

	c.logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("backend request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &UnexpectedError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &RequestError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: errorMessage(raw, resp.StatusCode),
		}
	}
	if resp.StatusCode == http.StatusNoContent || out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) observe(method string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, status, time.Since(start))
	}
}

func encodeBody(v any) (io.Reader, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case io.Reader:
		return b, nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(buf), nil
	}
}

func errorMessage(raw []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return requestFailed(status)
}
