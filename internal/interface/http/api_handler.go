package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/application"
	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/interface/middleware"
	"github.com/festify/festify-web/pkg/response"
)

// APIHandler exposes the query helpers over JSON for the frontend's scripts.
type APIHandler struct {
	Common
	Events     *application.EventService
	Colleges   *application.CollegeService
	Categories *application.CategoryService
}

func NewAPIHandler(events *application.EventService, colleges *application.CollegeService, categories *application.CategoryService, logger *logrus.Logger) *APIHandler {
	return &APIHandler{Common: Common{Logger: logger}, Events: events, Colleges: colleges, Categories: categories}
}

type locationGroup struct {
	Location string           `json:"location"`
	Colleges []entity.College `json:"colleges"`
}

type meView struct {
	Status  string           `json:"status"`
	User    *entity.AuthUser `json:"user"`
	Profile *entity.Profile  `json:"profile"`
}

// Events GET /api/v1/events?q=&category=&college=&status=
func (h *APIHandler) Events(c *gin.Context) {
	events, err := h.Events.GetAll(c.Request.Context())
	if err != nil {
		h.apiFail(c, err)
		return
	}
	visible := application.FilterByEligibility(events, middleware.AuthState(c).Profile)
	out := application.SortEventsByDateAsc(application.SearchAndFilter(visible, filterFrom(c)))
	response.Success(c, http.StatusOK, out, "", gin.H{"total": len(out)})
}

// Colleges GET /api/v1/colleges?q=&group=location
func (h *APIHandler) Colleges(c *gin.Context) {
	colleges, err := h.Colleges.GetAll(c.Request.Context())
	if err != nil {
		h.apiFail(c, err)
		return
	}
	out := application.SortCollegesByName(application.SearchColleges(colleges, strings.TrimSpace(c.Query("q"))))
	if c.Query("group") != "location" {
		response.Success(c, http.StatusOK, out, "", gin.H{"total": len(out)})
		return
	}
	grouped := application.GroupCollegesByLocation(out)
	groups := make([]locationGroup, 0, grouped.Len())
	for _, k := range grouped.Keys {
		groups = append(groups, locationGroup{Location: k, Colleges: grouped.Get(k)})
	}
	response.Success(c, http.StatusOK, groups, "", gin.H{"total": len(out)})
}

// Categories GET /api/v1/categories?q=
func (h *APIHandler) Categories(c *gin.Context) {
	categories, err := h.Categories.GetAll(c.Request.Context())
	if err != nil {
		h.apiFail(c, err)
		return
	}
	out := application.SortCategoriesByName(application.SearchCategories(categories, strings.TrimSpace(c.Query("q"))))
	response.Success(c, http.StatusOK, out, "", gin.H{"total": len(out)})
}

// Me GET /api/v1/me
func (h *APIHandler) Me(c *gin.Context) {
	st := middleware.AuthState(c)
	if !st.SignedIn() {
		response.Error[any](c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	response.Success(c, http.StatusOK, meView{Status: st.Status.String(), User: st.User, Profile: st.Profile}, "", nil)
}
