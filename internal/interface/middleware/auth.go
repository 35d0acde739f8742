package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/festify/festify-web/pkg/helpers"
	"github.com/festify/festify-web/pkg/response"
)

// RequireUser lets signed-in users through. Pages redirect to loginPath and
// JSON routes under /api answer 401.
func RequireUser(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if AuthState(c).SignedIn() {
			c.Next()
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.Error[any](c, http.StatusUnauthorized, "Not authenticated", nil)
			c.Abort()
			return
		}
		c.Redirect(http.StatusSeeOther, withNext(loginPath, c.Request))
		c.Abort()
	}
}

const CtxAdminKey = "admin"

// RequireAdmin gates the admin console on the adminMode/adminSession cookies.
func RequireAdmin(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := helpers.ReadAdmin(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Set(CtxAdminKey, s)
		c.Next()
	}
}
