package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/festify/festify-web/internal/container"
	handlers "github.com/festify/festify-web/internal/interface/http"
	"github.com/festify/festify-web/internal/interface/middleware"
)

// APIModule serves the JSON read endpoints. Register it on the API group.
type APIModule struct {
	Handler *handlers.APIHandler
}

func NewAPIModule(h *handlers.APIHandler) *APIModule {
	return &APIModule{Handler: h}
}

func (m *APIModule) Register(rg *gin.RouterGroup) {
	rg.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil))
	rg.GET("/events", m.Handler.Events)
	rg.GET("/colleges", m.Handler.Colleges)
	rg.GET("/categories", m.Handler.Categories)
	rg.GET("/me", m.Handler.Me)
}
