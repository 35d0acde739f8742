package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/festify/festify-web/internal/interface/http"
)

// PagesModule serves the public browsing pages.
type PagesModule struct {
	Handler *handlers.PagesHandler
}

func NewPagesModule(h *handlers.PagesHandler) *PagesModule {
	return &PagesModule{Handler: h}
}

func (m *PagesModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Home)
	rg.GET("/colleges", m.Handler.Colleges)
	rg.GET("/colleges/:id", m.Handler.College)
	rg.GET("/categories", m.Handler.Categories)
	rg.GET("/categories/:id", m.Handler.Category)
	rg.GET("/events/:id", m.Handler.Event)
}
