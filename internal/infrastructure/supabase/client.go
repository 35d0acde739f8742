// Package supabase talks to the Supabase GoTrue auth API.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/domain/repository"
)

var ErrInvalidToken = errors.New("invalid or expired access token")

// AuthError is an error response from GoTrue.
type AuthError struct {
	Status  int
	Code    string
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// Client is a stateless GoTrue client. Use NewAuth for a session holder.
type Client struct {
	baseURL   string
	anonKey   string
	jwtSecret []byte
	http      *http.Client
	logger    *logrus.Logger
	now       func() time.Time
}

func NewClient(projectURL, anonKey, jwtSecret string, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Client{
		baseURL:   strings.TrimRight(projectURL, "/") + "/auth/v1",
		anonKey:   anonKey,
		jwtSecret: []byte(jwtSecret),
		http:      &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		now:       time.Now,
	}
}

// WithHTTPClient replaces the transport, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

type tokenResponse struct {
	AccessToken  string          `json:"access_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int64           `json:"expires_in"`
	ExpiresAt    int64           `json:"expires_at"`
	RefreshToken string          `json:"refresh_token"`
	User         entity.AuthUser `json:"user"`
	// Sign-up without auto-confirm returns the bare user.
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (r *tokenResponse) session(now time.Time) *entity.Session {
	if r.AccessToken == "" {
		return nil
	}
	s := &entity.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		User:         r.User,
	}
	switch {
	case r.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(r.ExpiresAt, 0)
	case r.ExpiresIn > 0:
		s.ExpiresAt = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return s
}

// SignUp registers a user. session is nil when the project requires email
// confirmation.
func (c *Client) SignUp(ctx context.Context, params repository.SignUpParams) (*entity.AuthUser, *entity.Session, error) {
	q := url.Values{}
	if params.RedirectTo != "" {
		q.Set("redirect_to", params.RedirectTo)
	}
	body := map[string]any{
		"email":    params.Email,
		"password": params.Password,
		"data":     params.Metadata,
	}
	var resp tokenResponse
	if err := c.call(ctx, http.MethodPost, "/signup", q, "", body, &resp); err != nil {
		return nil, nil, err
	}
	if s := resp.session(c.now()); s != nil {
		user := s.User
		return &user, s, nil
	}
	return &entity.AuthUser{ID: resp.ID, Email: resp.Email}, nil, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	q := url.Values{"grant_type": []string{"password"}}
	var resp tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.call(ctx, http.MethodPost, "/token", q, "", body, &resp); err != nil {
		return nil, err
	}
	s := resp.session(c.now())
	if s == nil {
		return nil, &AuthError{Status: http.StatusOK, Message: "sign-in returned no session"}
	}
	return s, nil
}

// SignOut revokes accessToken's refresh tokens.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.call(ctx, http.MethodPost, "/logout", nil, accessToken, nil, nil)
}

// GetUser resolves the user owning accessToken via GoTrue.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*entity.AuthUser, error) {
	var u entity.AuthUser
	if err := c.call(ctx, http.MethodGet, "/user", nil, accessToken, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SessionFromToken rebuilds a session from a stored access token. With a JWT
// secret configured the token is verified locally, otherwise GoTrue is asked.
func (c *Client) SessionFromToken(ctx context.Context, accessToken, refreshToken string) (*entity.Session, error) {
	if accessToken == "" {
		return nil, ErrInvalidToken
	}
	if len(c.jwtSecret) > 0 {
		claims, err := c.verify(accessToken)
		if err != nil {
			return nil, err
		}
		s := &entity.Session{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "bearer",
			User: entity.AuthUser{
				ID:           claims.Subject,
				Email:        claims.Email,
				UserMetadata: claims.UserMetadata,
			},
		}
		if claims.ExpiresAt != nil {
			s.ExpiresAt = claims.ExpiresAt.Time
		}
		return s, nil
	}
	u, err := c.GetUser(ctx, accessToken)
	if err != nil {
		var ae *AuthError
		if errors.As(err, &ae) && (ae.Status == http.StatusUnauthorized || ae.Status == http.StatusForbidden) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &entity.Session{AccessToken: accessToken, RefreshToken: refreshToken, TokenType: "bearer", User: *u}, nil
}

func (c *Client) call(ctx context.Context, method, path string, q url.Values, bearer string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else if c.anonKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("gotrue request failed")
		return fmt.Errorf("gotrue %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gotrue %s: read body: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAuthError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gotrue %s: decode: %w", path, err)
	}
	return nil
}

func parseAuthError(status int, raw []byte) error {
	var p struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorCode        string `json:"error_code"`
	}
	_ = json.Unmarshal(raw, &p)
	msg := firstNonEmpty(p.ErrorDescription, p.Msg, p.Message, p.Error)
	if msg == "" {
		msg = fmt.Sprintf("auth request failed with status %d", status)
	}
	return &AuthError{Status: status, Code: firstNonEmpty(p.ErrorCode, p.Error), Message: msg}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
