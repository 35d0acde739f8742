package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/application"
	"github.com/festify/festify-web/internal/auth"
	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/interface/middleware"
	"github.com/festify/festify-web/pkg/batch"
	"github.com/festify/festify-web/pkg/validation"
)

// ProfileHandler serves the signed-in user's profile and dashboard.
type ProfileHandler struct {
	Common
	Colleges      *application.CollegeService
	Events        *application.EventService
	Registrations *application.RegistrationService
	Concurrency   int
}

func NewProfileHandler(colleges *application.CollegeService, events *application.EventService, registrations *application.RegistrationService, concurrency int, logger *logrus.Logger, loginPath string) *ProfileHandler {
	return &ProfileHandler{
		Common:        Common{Logger: logger, LoginPath: loginPath},
		Colleges:      colleges,
		Events:        events,
		Registrations: registrations,
		Concurrency:   concurrency,
	}
}

type profileForm struct {
	FullName         string `form:"full_name" binding:"required,max=120"`
	Phone            string `form:"phone" binding:"omitempty,e164"`
	Bio              string `form:"bio" binding:"max=500"`
	Website          string `form:"website" binding:"omitempty,url"`
	AvatarURL        string `form:"avatar_url" binding:"omitempty,url"`
	OrganizationName string `form:"organization_name" binding:"max=120"`
	CollegeID        string `form:"college_id"`
}

func formFromProfile(p *entity.Profile) profileForm {
	if p == nil {
		return profileForm{}
	}
	f := profileForm{FullName: p.FullName}
	for dst, src := range map[*string]*string{
		&f.Phone: p.Phone, &f.Bio: p.Bio, &f.Website: p.Website, &f.AvatarURL: p.AvatarURL,
		&f.OrganizationName: p.OrganizationName, &f.CollegeID: p.CollegeID,
	} {
		if src != nil {
			*dst = *src
		}
	}
	return f
}

func (f profileForm) update() auth.ProfileUpdate {
	upd := auth.ProfileUpdate{
		"full_name":  f.FullName,
		"phone":      f.Phone,
		"bio":        f.Bio,
		"website":    f.Website,
		"avatar_url": f.AvatarURL,
	}
	if f.OrganizationName != "" {
		upd["organization_name"] = f.OrganizationName
	}
	if f.CollegeID != "" {
		upd["college_id"] = f.CollegeID
	}
	return upd
}

func (h *ProfileHandler) colleges(c *gin.Context) []entity.College {
	colleges, err := h.Colleges.GetAll(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Warn("load colleges for profile failed")
		return nil
	}
	return application.SortCollegesByName(colleges)
}

// Show GET /profile
func (h *ProfileHandler) Show(c *gin.Context) {
	st := middleware.AuthState(c)
	h.render(c, http.StatusOK, "profile.html", gin.H{
		"Title":    "Your profile",
		"Form":     formFromProfile(st.Profile),
		"Colleges": h.colleges(c),
		"Updated":  c.Query("updated") == "1",
	})
}

// Update POST /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "profile.html", gin.H{
			"Title": "Your profile", "Form": form, "Colleges": h.colleges(c), "Errors": validation.ToDetails(err),
		})
		return
	}
	m, err := manager(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res := m.UpdateProfile(c.Request.Context(), form.update()); res.Err != nil {
		if isAuthError(res.Err) {
			h.fail(c, res.Err)
			return
		}
		h.render(c, http.StatusBadRequest, "profile.html", gin.H{
			"Title": "Your profile", "Form": form, "Colleges": h.colleges(c), "Flash": res.Err.Error(),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile?updated=1")
}

// Dashboard GET /dashboard
func (h *ProfileHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	profile := middleware.AuthState(c).Profile
	if profile == nil {
		h.render(c, http.StatusOK, "dashboard.html", gin.H{"Title": "Dashboard", "Missing": true})
		return
	}

	if profile.Role == entity.RoleAttendee {
		regs, err := h.Registrations.GetByUser(ctx, profile.ID)
		if err != nil {
			h.fail(c, err)
			return
		}
		h.render(c, http.StatusOK, "dashboard.html", gin.H{
			"Title":         "Dashboard",
			"Registrations": regs,
			"ByStatus":      application.CountRegistrationsByStatus(regs),
		})
		return
	}

	events, err := h.Events.GetByOrganizer(ctx, profile.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	tasks := make([]batch.Task[[]entity.Registration], 0, len(events))
	for _, e := range events {
		id := e.ID
		tasks = append(tasks, func(ctx context.Context) ([]entity.Registration, error) {
			return h.Registrations.GetByEvent(ctx, id)
		})
	}
	chunks, err := batch.Run(ctx, h.Concurrency, tasks)
	if err != nil {
		h.fail(c, err)
		return
	}
	var regs []entity.Registration
	for _, chunk := range chunks {
		regs = append(regs, chunk...)
	}
	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":         "Dashboard",
		"Organizer":     true,
		"Events":        application.SortEventsByDateDesc(events),
		"EventsByState": application.CountEventsByStatus(events),
		"PerEvent":      application.CountRegistrationsByEvent(regs),
		"Revenue":       application.CalculateTotalRevenue(regs),
		"Total":         len(regs),
	})
}
