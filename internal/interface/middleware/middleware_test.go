package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/festify/festify-web/internal/domain/entity"
	"github.com/festify/festify-web/internal/infrastructure/supabase"
	"github.com/festify/festify-web/pkg/helpers"
)

const jwtSecret = "test-secret-with-enough-length-for-hs256"

func init() { gin.SetMode(gin.TestMode) }

type stubProfiles struct{ calls int }

func (s *stubProfiles) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	s.calls++
	return &entity.Profile{ID: "p-" + userID, UserID: userID, FullName: "Asha"}, nil
}

func (s *stubProfiles) UpdateFields(_ context.Context, id string, _ map[string]any) (*entity.Profile, error) {
	return &entity.Profile{ID: id}, nil
}

func signed(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	claims := &supabase.Claims{
		Email:            sub + "@college.edu",
		RegisteredClaims: jwt.RegisteredClaims{Subject: sub, ExpiresAt: jwt.NewNumericDate(exp)},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func sessionEngine(profiles *stubProfiles) *gin.Engine {
	supa := supabase.NewClient("http://gotrue.invalid", "anon", jwtSecret, nil)
	r := gin.New()
	r.Use(Session(supa, profiles, helpers.NewCookie("", false), "http://localhost/", nil))
	r.GET("/who", func(c *gin.Context) {
		st := AuthState(c)
		body := gin.H{"status": st.Status.String()}
		if st.Profile != nil {
			body["profile"] = st.Profile.ID
		}
		c.JSON(http.StatusOK, body)
	})
	r.GET("/needs-login", func(c *gin.Context) {
		Navigator{}.Redirect(c.Request.Context(), "/auth/login")
	})
	r.GET("/private", RequireUser("/auth/login"), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/api/v1/private", RequireUser("/auth/login"), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestSession_NoCookie(t *testing.T) {
	profiles := &stubProfiles{}
	w := httptest.NewRecorder()
	sessionEngine(profiles).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/who", nil))

	if got := decode(t, w)["status"]; got != "logged_out" {
		t.Errorf("status = %v", got)
	}
	if profiles.calls != 0 {
		t.Errorf("profile calls = %d", profiles.calls)
	}
}

func TestSession_ValidCookieLoadsProfile(t *testing.T) {
	profiles := &stubProfiles{}
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: helpers.CookieAccessToken, Value: signed(t, "user-1", time.Now().Add(time.Hour))})
	w := httptest.NewRecorder()
	sessionEngine(profiles).ServeHTTP(w, req)

	body := decode(t, w)
	if body["status"] != "profile_ready" || body["profile"] != "p-user-1" {
		t.Errorf("body = %v", body)
	}
}

func TestSession_ExpiredCookieIsCleared(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.AddCookie(&http.Cookie{Name: helpers.CookieAccessToken, Value: signed(t, "user-1", time.Now().Add(-time.Hour))})
	w := httptest.NewRecorder()
	sessionEngine(&stubProfiles{}).ServeHTTP(w, req)

	if got := decode(t, w)["status"]; got != "logged_out" {
		t.Errorf("status = %v", got)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.CookieAccessToken && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Errorf("access cookie not cleared: %v", w.Header().Values("Set-Cookie"))
	}
}

func TestSession_HonorsPendingRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	sessionEngine(&stubProfiles{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/needs-login?x=1", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("code = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/auth/login?next=%2Fneeds-login%3Fx%3D1" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireUser(t *testing.T) {
	r := sessionEngine(&stubProfiles{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	if w.Code != http.StatusSeeOther || !strings.HasPrefix(w.Header().Get("Location"), "/auth/login?next=") {
		t.Errorf("page: code=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/private", nil))
	if w.Code != http.StatusUnauthorized || decode(t, w)["message"] != "Not authenticated" {
		t.Errorf("api: code=%d body=%s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: helpers.CookieAccessToken, Value: signed(t, "user-1", time.Now().Add(time.Hour))})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("signed in: code=%d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequireAdmin("/admin/login"), func(c *gin.Context) {
		s := c.MustGet(CtxAdminKey).(*helpers.AdminSession)
		c.String(http.StatusOK, s.Email)
	})

	tests := []struct {
		name    string
		cookies []*http.Cookie
		code    int
	}{
		{"no flags", nil, http.StatusSeeOther},
		{"mode without session", []*http.Cookie{{Name: helpers.CookieAdminMode, Value: "true"}}, http.StatusSeeOther},
		{"session without mode", []*http.Cookie{{Name: helpers.CookieAdminSession, Value: `{"email":"admin@festify.dev"}`}}, http.StatusSeeOther},
		{"mode false", []*http.Cookie{
			{Name: helpers.CookieAdminMode, Value: "false"},
			{Name: helpers.CookieAdminSession, Value: `{"email":"admin@festify.dev"}`},
		}, http.StatusSeeOther},
		{"both flags", []*http.Cookie{
			{Name: helpers.CookieAdminMode, Value: "true"},
			{Name: helpers.CookieAdminSession, Value: `{"email":"admin@festify.dev"}`},
		}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			for _, c := range tt.cookies {
				req.AddCookie(c)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.code {
				t.Fatalf("code = %d, want %d", w.Code, tt.code)
			}
			if tt.code == http.StatusSeeOther && w.Header().Get("Location") != "/admin/login" {
				t.Errorf("Location = %q", w.Header().Get("Location"))
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Any("/auth/login", RateLimit(rdb, 2, time.Minute, KeyByIPAndPath(), nil, http.MethodPost), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	post := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		return w
	}
	for i := 0; i < 2; i++ {
		if w := post(); w.Code != http.StatusOK {
			t.Fatalf("attempt %d: code %d", i+1, w.Code)
		}
	}
	w := post()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third attempt code = %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" || w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("headers = %v", w.Header())
	}

	g := httptest.NewRecorder()
	r.ServeHTTP(g, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	if g.Code != http.StatusOK {
		t.Errorf("GET should not be counted, code %d", g.Code)
	}

	mr.FastForward(time.Minute + time.Second)
	if w := post(); w.Code != http.StatusOK {
		t.Errorf("after window: code %d", w.Code)
	}
}

func TestRateLimit_AllowAndNoRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.GET("/metrics", RateLimit(rdb, 1, time.Minute, KeyByIP(), AllowPrivateIP()), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/open", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.RemoteAddr = "10.0.0.7:5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("private client limited on attempt %d", i+1)
		}
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("nil redis should not limit")
		}
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(w.Body.String()); err != nil || w.Header().Get(HeaderRequestID) != w.Body.String() {
		t.Errorf("generated id %q header %q", w.Body.String(), w.Header().Get(HeaderRequestID))
	}

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != incoming {
		t.Errorf("incoming id not reused: %q", w.Body.String())
	}
}
