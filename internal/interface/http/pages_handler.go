package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/application"
	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/interface/middleware"
)

const upcomingOnHome = 6

var eventStatuses = []entity.EventStatus{entity.EventPublished, entity.EventCompleted, entity.EventCancelled, entity.EventDraft}

// PagesHandler renders the public browsing pages.
type PagesHandler struct {
	Common
	Events     *application.EventService
	Colleges   *application.CollegeService
	Categories *application.CategoryService
	Teams      *application.TeamService
	Now        func() time.Time
}

func NewPagesHandler(events *application.EventService, colleges *application.CollegeService, categories *application.CategoryService, teams *application.TeamService, logger *logrus.Logger, loginPath string) *PagesHandler {
	return &PagesHandler{
		Common:     Common{Logger: logger, LoginPath: loginPath},
		Events:     events,
		Colleges:   colleges,
		Categories: categories,
		Teams:      teams,
		Now:        time.Now,
	}
}

func filterFrom(c *gin.Context) application.EventFilter {
	return application.EventFilter{
		SearchTerm: strings.TrimSpace(c.Query("q")),
		CategoryID: c.Query("category"),
		CollegeID:  c.Query("college"),
		Status:     entity.EventStatus(strings.ToUpper(c.Query("status"))),
	}
}

// Home GET /
func (h *PagesHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	st := middleware.AuthState(c)

	events, err := h.Events.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	categories, err := h.Categories.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	colleges, err := h.Colleges.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	visible := application.FilterByEligibility(events, st.Profile)
	filter := filterFrom(c)
	upcoming := application.UpcomingEvents(visible, h.Now())
	if len(upcoming) > upcomingOnHome {
		upcoming = upcoming[:upcomingOnHome]
	}

	h.render(c, http.StatusOK, "home.html", gin.H{
		"Title":      "Discover events",
		"Filter":     filter,
		"Featured":   application.FeaturedEvents(visible),
		"Upcoming":   upcoming,
		"Results":    application.SortEventsByDateAsc(application.SearchAndFilter(visible, filter)),
		"Categories": application.SortCategoriesByName(categories),
		"Colleges":   application.SortCollegesByName(colleges),
		"Statuses":   eventStatuses,
	})
}

// Colleges GET /colleges
func (h *PagesHandler) Colleges(c *gin.Context) {
	ctx := c.Request.Context()
	colleges, err := h.Colleges.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	shown := application.SortCollegesByName(application.SearchColleges(colleges, q))

	counts, err := h.Colleges.EventCounts(ctx, shown)
	if err != nil {
		h.Logger.WithError(err).Warn("college event counts failed")
		counts = nil
	}
	h.render(c, http.StatusOK, "colleges.html", gin.H{
		"Title":      "Colleges",
		"Query":      q,
		"ByLocation": application.GroupCollegesByLocation(shown),
		"Counts":     counts,
		"Total":      len(shown),
	})
}

// College GET /colleges/:id
func (h *PagesHandler) College(c *gin.Context) {
	ctx := c.Request.Context()
	college, err := h.Colleges.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	events, err := h.Events.GetByCollege(ctx, college.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	visible := application.FilterByEligibility(events, middleware.AuthState(c).Profile)
	h.render(c, http.StatusOK, "college.html", gin.H{
		"Title":   college.Name,
		"College": college,
		"Events":  application.SortEventsByDateAsc(visible),
	})
}

// Categories GET /categories
func (h *PagesHandler) Categories(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := h.Categories.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	events, err := h.Events.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	q := strings.TrimSpace(c.Query("q"))
	grouped := application.GroupEventsByCategory(application.FilterByEligibility(events, middleware.AuthState(c).Profile))
	counts := make(map[string]int, grouped.Len())
	for _, k := range grouped.Keys {
		counts[k] = len(grouped.Get(k))
	}
	h.render(c, http.StatusOK, "categories.html", gin.H{
		"Title":      "Categories",
		"Query":      q,
		"Categories": application.SortCategoriesByName(application.SearchCategories(categories, q)),
		"Counts":     counts,
	})
}

// Category GET /categories/:id
func (h *PagesHandler) Category(c *gin.Context) {
	ctx := c.Request.Context()
	category, err := h.Categories.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	events, err := h.Events.GetByCategory(ctx, category.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	visible := application.FilterByEligibility(events, middleware.AuthState(c).Profile)
	h.render(c, http.StatusOK, "category.html", gin.H{
		"Title":    category.Name,
		"Category": category,
		"Events":   application.SortEventsByDateAsc(application.SearchEvents(visible, c.Query("q"))),
		"Query":    c.Query("q"),
	})
}

// Event GET /events/:id
func (h *PagesHandler) Event(c *gin.Context) {
	ctx := c.Request.Context()
	st := middleware.AuthState(c)
	event, err := h.Events.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if !application.Eligible(event, st.Profile) {
		h.fail(c, notFound("Event"))
		return
	}

	var teams []entity.Team
	if st.SignedIn() && event.ParticipationType != entity.ParticipationIndividual {
		teams, err = h.Teams.GetByEvent(ctx, event.ID)
		if err != nil {
			h.Logger.WithError(err).WithField("event_id", event.ID).Warn("load teams failed")
			teams = nil
		}
	}
	h.render(c, http.StatusOK, "event.html", gin.H{
		"Title":    event.Title,
		"Event":    event,
		"Teams":    application.SearchTeams(teams, c.Query("team")),
		"TeamTerm": c.Query("team"),
		"Open":     event.RegistrationDeadline == nil || event.RegistrationDeadline.After(h.Now()),
	})
}
