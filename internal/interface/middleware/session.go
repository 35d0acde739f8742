package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/auth"
	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/domain/repository"
	"github.com/festify/festify-web/internal/infrastructure/supabase"
	"github.com/festify/festify-web/pkg/helpers"
)

const CtxAuthKey = "auth"

// Session restores the Supabase session from cookies, runs an auth.Manager for
// the request and stores it under CtxAuthKey. Sign-in and sign-out during the
// request rewrite the cookies.
func Session(supa *supabase.Client, profiles repository.ProfileRepository, cookies *helpers.Manager, redirectURL string, logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var initial *entity.Session
		if token, err := c.Cookie(helpers.CookieAccessToken); err == nil && token != "" {
			refresh, _ := c.Cookie(helpers.CookieRefreshToken)
			s, err := supa.SessionFromToken(ctx, token, refresh)
			switch {
			case err == nil:
				initial = s
			case errors.Is(err, supabase.ErrInvalidToken):
				logger.WithError(err).Debug("dropping invalid session cookie")
				cookies.ClearSession(c)
			default:
				logger.WithError(err).Warn("restore session failed")
			}
		}

		provider := supa.NewAuth(initial)
		stop := provider.OnSessionChange(func(_ repository.AuthChangeEvent, s *entity.Session) {
			if s == nil {
				cookies.ClearSession(c)
				return
			}
			cookies.SetSession(c, s)
		})

		ctx = WithRedirects(auth.WithProvider(ctx, provider))
		c.Request = c.Request.WithContext(ctx)

		m := auth.NewManager(provider, profiles, redirectURL, logger)
		m.Start(ctx)
		c.Set(CtxAuthKey, m)

		c.Next()

		m.Close()
		stop()

		if target, ok := PendingRedirect(ctx); ok && !c.Writer.Written() {
			c.Redirect(http.StatusSeeOther, withNext(target, c.Request))
		}
	}
}

// AuthManager returns the request's manager, or nil outside Session.
func AuthManager(c *gin.Context) *auth.Manager {
	v, ok := c.Get(CtxAuthKey)
	if !ok {
		return nil
	}
	m, _ := v.(*auth.Manager)
	return m
}

// AuthState is the request's auth snapshot; logged out outside Session.
func AuthState(c *gin.Context) auth.State {
	if m := AuthManager(c); m != nil {
		return m.Snapshot()
	}
	return auth.State{Status: auth.StatusLoggedOut}
}

// withNext appends the current page so login can send the user back. Only
// GET requests are remembered.
func withNext(target string, r *http.Request) string {
	if r.Method != http.MethodGet {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("next", r.URL.RequestURI())
	u.RawQuery = q.Encode()
	return u.String()
}
