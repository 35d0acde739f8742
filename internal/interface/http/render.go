package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/infrastructure/backend"
	"github.com/festify/festify-web/internal/interface/middleware"
	"github.com/festify/festify-web/pkg/helpers"
	"github.com/festify/festify-web/pkg/response"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"date": func(t entity.Timestamp) string {
		if t.IsZero() {
			return "TBA"
		}
		return t.Format("Jan 2, 2006 3:04 PM")
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"price": func(e entity.Event) string {
		if e.IsFree || e.Price == nil || *e.Price == 0 {
			return "Free"
		}
		cur := "INR"
		if e.Currency != nil && *e.Currency != "" {
			cur = *e.Currency
		}
		return fmt.Sprintf("%s %.2f", cur, *e.Price)
	},
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"lower": strings.ToLower,
	"errorFor": func(errs any, field string) string {
		m, _ := errs.(map[string]string)
		return m[field]
	},
}

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// Common carries what every handler needs to render pages and errors.
type Common struct {
	Logger    *logrus.Logger
	LoginPath string
}

func (h Common) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["State"] = middleware.AuthState(c)
	data["RequestID"] = c.GetString("request_id")
	if _, ok := helpers.ReadAdmin(c); ok {
		data["AdminMode"] = true
	}
	c.HTML(status, name, data)
}

func isAuthError(err error) bool {
	return errors.Is(err, backend.ErrAuthRequired) || errors.Is(err, backend.ErrUnauthorized)
}

// fail renders err as a page. Auth failures leave the redirect the backend
// client already requested to the Session middleware.
func (h Common) fail(c *gin.Context, err error) {
	if isAuthError(err) {
		if _, pending := middleware.PendingRedirect(c.Request.Context()); !pending {
			c.Redirect(http.StatusSeeOther, h.LoginPath)
		}
		c.Abort()
		return
	}
	status, msg := describe(err)
	entry := h.Logger.WithError(err).WithFields(logrus.Fields{"path": c.Request.URL.Path, "status": status})
	if status >= http.StatusInternalServerError {
		entry.Error("page request failed")
	} else {
		entry.Debug("page request failed")
	}
	h.render(c, status, "error.html", gin.H{"Title": http.StatusText(status), "Status": status, "Message": msg})
	c.Abort()
}

// apiFail writes err as a JSON envelope.
func (h Common) apiFail(c *gin.Context, err error) {
	if isAuthError(err) {
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
		return
	}
	status, msg := describe(err)
	if status >= http.StatusInternalServerError {
		h.Logger.WithError(err).WithField("path", c.Request.URL.Path).Error("api request failed")
	}
	response.Error[any](c, status, msg, nil)
}

func describe(err error) (int, string) {
	var re *backend.RequestError
	if errors.As(err, &re) {
		status := re.Status
		if status < 400 {
			status = http.StatusBadGateway
		}
		return status, re.Message
	}
	return http.StatusInternalServerError, "Something went wrong. Please try again."
}

func notFound(what string) error {
	return &backend.RequestError{Status: http.StatusNotFound, Message: what + " not found"}
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
