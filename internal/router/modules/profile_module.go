package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festify/festify-web/internal/container"
	handlers "github.com/festify/festify-web/internal/interface/http"
	"github.com/festify/festify-web/internal/interface/middleware"
)

// ProfileModule serves the signed-in user's profile and dashboard.
type ProfileModule struct {
	Handler   *handlers.ProfileHandler
	LoginPath string
}

func NewProfileModule(h *handlers.ProfileHandler, loginPath string) *ProfileModule {
	return &ProfileModule{Handler: h, LoginPath: loginPath}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/")
	g.Use(
		middleware.RequireUser(m.LoginPath),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil),
	)
	{
		g.GET("/profile", m.Handler.Show)
		g.POST("/profile", m.Handler.Update)
		g.GET("/dashboard", m.Handler.Dashboard)
	}
}
