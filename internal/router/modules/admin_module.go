package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festify/festify-web/internal/container"
	handlers "github.com/festify/festify-web/internal/interface/http"
	"github.com/festify/festify-web/internal/interface/middleware"
)

const adminLoginPath = "/admin/login"

// AdminModule serves the cookie-gated admin console.
type AdminModule struct {
	Handler *handlers.AdminHandler
}

func NewAdminModule(h *handlers.AdminHandler) *AdminModule {
	return &AdminModule{Handler: h}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil, http.MethodPost)

	g := rg.Group("/admin")
	g.GET("/login", m.Handler.LoginPage)
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/logout", m.Handler.Logout)

	gated := g.Group("", middleware.RequireAdmin(adminLoginPath))
	{
		gated.GET("", m.Handler.Dashboard)
	}
}
