package helpers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festify/festify-web/internal/domain/entity"
)

const (
	CookieAccessToken  = "sb-access-token"
	CookieRefreshToken = "sb-refresh-token"
	CookieAdminSession = "adminSession"
	CookieAdminMode    = "adminMode"
)

// AdminSession is the blob stored in the adminSession cookie.
type AdminSession struct {
	Email      string    `json:"email"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetSession stores the identity provider's tokens. The refresh token is kept
// for a week since the provider does not report its expiry.
func (m *Manager) SetSession(c *gin.Context, s *entity.Session) {
	if s == nil {
		m.ClearSession(c)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	aMax := 3600
	if !s.ExpiresAt.IsZero() {
		aMax = maxAgeFrom(s.ExpiresAt)
	}
	c.SetCookie(CookieAccessToken, s.AccessToken, aMax, "/", m.Domain, m.Secure, true)
	if s.RefreshToken != "" {
		c.SetCookie(CookieRefreshToken, s.RefreshToken, int((7 * 24 * time.Hour).Seconds()), "/", m.Domain, m.Secure, true)
	}
}

func (m *Manager) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieAccessToken, "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie(CookieRefreshToken, "", -1, "/", m.Domain, m.Secure, true)
}

// SetAdmin sets the two admin-mode flags.
func (m *Manager) SetAdmin(c *gin.Context, s AdminSession) {
	b, _ := json.Marshal(s)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieAdminSession, string(b), 0, "/", m.Domain, m.Secure, true)
	c.SetCookie(CookieAdminMode, "true", 0, "/", m.Domain, m.Secure, true)
}

func (m *Manager) ClearAdmin(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieAdminSession, "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie(CookieAdminMode, "", -1, "/", m.Domain, m.Secure, true)
}

// ReadAdmin returns the admin session when adminMode is "true" and the blob
// decodes.
func ReadAdmin(c *gin.Context) (*AdminSession, bool) {
	mode, err := c.Cookie(CookieAdminMode)
	if err != nil || mode != "true" {
		return nil, false
	}
	raw, err := c.Cookie(CookieAdminSession)
	if err != nil || raw == "" {
		return nil, false
	}
	var s AdminSession
	if err := json.Unmarshal([]byte(raw), &s); err != nil || s.Email == "" {
		return nil, false
	}
	return &s, true
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
