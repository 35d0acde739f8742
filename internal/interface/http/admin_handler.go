package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/application"
	"github.com/festify/festify-web/internal/interface/middleware"
	"github.com/festify/festify-web/pkg/helpers"
	"github.com/festify/festify-web/pkg/validation"
)

// AdminHandler serves the out-of-band admin console. Access is gated by the
// adminMode/adminSession cookies, not by the Supabase session.
type AdminHandler struct {
	Common
	Cookies    *helpers.Manager
	Email      string
	Hash       string
	Events     *application.EventService
	Colleges   *application.CollegeService
	Categories *application.CategoryService
	Now        func() time.Time
}

func NewAdminHandler(cookies *helpers.Manager, adminEmail, adminHash string, events *application.EventService, colleges *application.CollegeService, categories *application.CategoryService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		Common:     Common{Logger: logger, LoginPath: "/admin/login"},
		Cookies:    cookies,
		Email:      adminEmail,
		Hash:       adminHash,
		Events:     events,
		Colleges:   colleges,
		Categories: categories,
		Now:        time.Now,
	}
}

type adminLoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// LoginPage GET /admin/login
func (h *AdminHandler) LoginPage(c *gin.Context) {
	if _, ok := helpers.ReadAdmin(c); ok {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	h.render(c, http.StatusOK, "admin_login.html", gin.H{"Title": "Admin sign in", "Form": adminLoginForm{}})
}

// Login POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var form adminLoginForm
	if err := c.ShouldBind(&form); err != nil {
		form.Password = ""
		h.render(c, http.StatusUnprocessableEntity, "admin_login.html", gin.H{
			"Title": "Admin sign in", "Form": form, "Errors": validation.ToDetails(err),
		})
		return
	}
	if !helpers.CheckAdminCredentials(form.Email, form.Password, h.Email, h.Hash) {
		h.Logger.WithField("email", form.Email).Warn("admin sign in rejected")
		form.Password = ""
		h.render(c, http.StatusUnauthorized, "admin_login.html", gin.H{
			"Title": "Admin sign in", "Form": form, "Flash": "Invalid admin credentials",
		})
		return
	}
	h.Cookies.SetAdmin(c, helpers.AdminSession{Email: form.Email, LoggedInAt: h.Now().UTC()})
	c.Redirect(http.StatusSeeOther, "/admin")
}

// Logout POST /admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	h.Cookies.ClearAdmin(c)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

// Dashboard GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	events, err := h.Events.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	colleges, err := h.Colleges.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	categories, err := h.Categories.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	perCollege, err := h.Colleges.EventCounts(ctx, colleges)
	if err != nil {
		h.Logger.WithError(err).Warn("college event counts failed")
	}

	admin, _ := c.Get(middleware.CtxAdminKey)
	h.render(c, http.StatusOK, "admin.html", gin.H{
		"Title":      "Admin",
		"Admin":      admin,
		"Events":     application.SortEventsByDateDesc(events),
		"ByStatus":   application.CountEventsByStatus(events),
		"Colleges":   application.SortCollegesByName(colleges),
		"PerCollege": perCollege,
		"Categories": application.SortCategoriesByName(categories),
		"Upcoming":   len(application.UpcomingEvents(events, h.Now())),
	})
}
