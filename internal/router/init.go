package router

import (
	"github.com/festify/festify-web/internal/application"
	"github.com/festify/festify-web/internal/container"
	handlers "github.com/festify/festify-web/internal/interface/http"
	"github.com/festify/festify-web/internal/interface/middleware"
	"github.com/festify/festify-web/internal/router/modules"
)

// Services groups the backend resource services shared by every module.
type Services struct {
	Events        *application.EventService
	Colleges      *application.CollegeService
	Categories    *application.CategoryService
	Profiles      *application.ProfileService
	Registrations *application.RegistrationService
	Teams         *application.TeamService
}

func buildServices() Services {
	api := container.GetBackend()
	c := container.GetCache()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	events := application.NewEventService(api)
	return Services{
		Events:        events,
		Colleges:      application.NewCollegeService(api, events, c, cfg.BatchConcurrency, logger),
		Categories:    application.NewCategoryService(api, c, logger),
		Profiles:      application.NewProfileService(api),
		Registrations: application.NewRegistrationService(api),
		Teams:         application.NewTeamService(api),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	cookies := container.GetCookies()
	svc := buildServices()

	r.Use(middleware.Session(container.GetSupabase(), svc.Profiles, cookies, cfg.RootURL(), logger))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Colleges, logger, cfg.LoginPath)))
	r.Add(modules.NewPagesModule(handlers.NewPagesHandler(svc.Events, svc.Colleges, svc.Categories, svc.Teams, logger, cfg.LoginPath)))
	r.Add(modules.NewProfileModule(
		handlers.NewProfileHandler(svc.Colleges, svc.Events, svc.Registrations, cfg.BatchConcurrency, logger, cfg.LoginPath),
		cfg.LoginPath,
	))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(
		cookies, cfg.AdminEmail, cfg.AdminPasswordHash, svc.Events, svc.Colleges, svc.Categories, logger,
	)))
	if cfg.MetricsEnabled && container.GetMetrics() != nil {
		r.Add(modules.NewMetricsModule(container.GetMetrics()))
	}

	r.AddAPI(modules.NewAPIModule(handlers.NewAPIHandler(svc.Events, svc.Colleges, svc.Categories, logger)))
}
