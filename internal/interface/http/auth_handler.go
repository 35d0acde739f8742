package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/internal/application"
	"github.com/festify/festify-web/internal/auth"
	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/infrastructure/backend"
	"github.com/festify/festify-web/internal/interface/middleware"
	"github.com/festify/festify-web/pkg/validation"
)

type AuthHandler struct {
	Common
	Colleges *application.CollegeService
}

func NewAuthHandler(colleges *application.CollegeService, logger *logrus.Logger, loginPath string) *AuthHandler {
	return &AuthHandler{Common: Common{Logger: logger, LoginPath: loginPath}, Colleges: colleges}
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type signupForm struct {
	Email            string `form:"email" binding:"required,email"`
	Password         string `form:"password" binding:"required,pwd"`
	ConfirmPassword  string `form:"confirm_password" binding:"required,eqfield=Password"`
	FullName         string `form:"full_name" binding:"required,max=120"`
	Role             string `form:"role" binding:"required,role"`
	OrganizationName string `form:"organization_name" binding:"required_if=Role ORGANIZER,max=120"`
	CollegeID        string `form:"college_id"`
}

func manager(c *gin.Context) (*auth.Manager, error) {
	m := middleware.AuthManager(c)
	if m == nil {
		return nil, backend.ErrAuthRequired
	}
	return m, nil
}

// LoginPage GET /auth/login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	next := safeNext(c.Query("next"))
	if middleware.AuthState(c).SignedIn() {
		c.Redirect(http.StatusSeeOther, next)
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Sign in", "Next": next, "Form": loginForm{}})
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		form.Password = ""
		h.render(c, http.StatusUnprocessableEntity, "login.html", gin.H{
			"Title": "Sign in", "Next": safeNext(form.Next), "Form": form, "Errors": validation.ToDetails(err),
		})
		return
	}
	m, err := manager(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res := m.SignIn(c.Request.Context(), form.Email, form.Password); res.Err != nil {
		h.Logger.WithError(res.Err).WithField("email", form.Email).Info("sign in rejected")
		form.Password = ""
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Title": "Sign in", "Next": safeNext(form.Next), "Form": form, "Flash": res.Err.Error(),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, safeNext(form.Next))
}

func (h *AuthHandler) collegeOptions(c *gin.Context) []entity.College {
	if h.Colleges == nil {
		return nil
	}
	colleges, err := h.Colleges.GetAll(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Warn("load colleges for sign-up failed")
		return nil
	}
	return application.SortCollegesByName(colleges)
}

// SignupPage GET /auth/signup
func (h *AuthHandler) SignupPage(c *gin.Context) {
	if middleware.AuthState(c).SignedIn() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "signup.html", gin.H{
		"Title": "Create account", "Form": signupForm{Role: string(entity.RoleAttendee)}, "Colleges": h.collegeOptions(c),
	})
}

// Signup POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		form.Password, form.ConfirmPassword = "", ""
		h.render(c, http.StatusUnprocessableEntity, "signup.html", gin.H{
			"Title": "Create account", "Form": form, "Colleges": h.collegeOptions(c), "Errors": validation.ToDetails(err),
		})
		return
	}
	m, err := manager(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	res := m.SignUp(c.Request.Context(), auth.SignUpInput{
		Email:            form.Email,
		Password:         form.Password,
		FullName:         form.FullName,
		Role:             entity.Role(form.Role),
		OrganizationName: form.OrganizationName,
		CollegeID:        form.CollegeID,
	})
	form.Password, form.ConfirmPassword = "", ""
	if res.Err != nil {
		h.render(c, http.StatusBadRequest, "signup.html", gin.H{
			"Title": "Create account", "Form": form, "Colleges": h.collegeOptions(c), "Flash": res.Err.Error(),
		})
		return
	}
	if m.Snapshot().SignedIn() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "signup.html", gin.H{
		"Title": "Check your email", "Confirm": form.Email,
	})
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if m := middleware.AuthManager(c); m != nil {
		m.SignOut(c.Request.Context())
	}
	c.Redirect(http.StatusSeeOther, "/")
}
