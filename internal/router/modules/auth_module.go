package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festify/festify-web/internal/container"
	handlers "github.com/festify/festify-web/internal/interface/http"
	"github.com/festify/festify-web/internal/interface/middleware"
)

// AuthModule serves sign-in, sign-up and sign-out under /auth.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Only form posts count against the limits
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil, http.MethodPost)
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil, http.MethodPost)

	g := rg.Group("/auth")
	g.GET("/login", m.Handler.LoginPage)
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.GET("/signup", m.Handler.SignupPage)
	g.POST("/signup", signupLimiter, m.Handler.Signup)
	g.POST("/logout", m.Handler.Logout)
}
