package router

import "github.com/gin-gonic/gin"

const APIPrefix = "/api/v1"

// Module is a feature that mounts its routes on the group it is handed.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects middleware and modules, then mounts them in one pass.
// Page modules hang off Root and JSON modules off API; API inherits Root's
// middleware.
type Registry struct {
	Engine *gin.Engine
	Root   *gin.RouterGroup
	API    *gin.RouterGroup

	middlewares    []gin.HandlerFunc
	apiMiddlewares []gin.HandlerFunc
	modules        []Module
	apiModules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, Root: engine.Group("")}
}

// Use adds middleware for every route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

// UseAPI adds middleware for routes under APIPrefix only.
func (r *Registry) UseAPI(mw ...gin.HandlerFunc) {
	r.apiMiddlewares = append(r.apiMiddlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) AddAPI(mod Module) {
	r.apiModules = append(r.apiModules, mod)
}

// RegisterAll must run after every Use call: gin copies a group's handlers
// when a child group or route is created.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.Root.Use(r.middlewares...)
	}
	r.API = r.Root.Group(APIPrefix, r.apiMiddlewares...)
	for _, m := range r.modules {
		m.Register(r.Root)
	}
	for _, m := range r.apiModules {
		m.Register(r.API)
	}
}
