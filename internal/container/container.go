package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/config"
	"github.com/festify/festify-web/internal/infrastructure/backend"
	"github.com/festify/festify-web/internal/infrastructure/cache"
	"github.com/festify/festify-web/internal/infrastructure/metrics"
	"github.com/festify/festify-web/internal/infrastructure/supabase"
	"github.com/festify/festify-web/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	appCache    cache.Cache

	backendClient  *backend.Client
	supabaseClient *supabase.Client
	backendMetrics *metrics.Backend
	cookies        *helpers.Manager
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

// SetRedis stores the optional Redis client. Nil disables rate limiting.
func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }
func SetCache(c cache.Cache)   { appCache = c }
func GetCache() cache.Cache    { return appCache }

func SetBackend(c *backend.Client)   { backendClient = c }
func GetBackend() *backend.Client    { return backendClient }
func SetSupabase(c *supabase.Client) { supabaseClient = c }
func GetSupabase() *supabase.Client  { return supabaseClient }
func SetMetrics(m *metrics.Backend)  { backendMetrics = m }
func GetMetrics() *metrics.Backend   { return backendMetrics }
func SetCookies(m *helpers.Manager)  { cookies = m }
func GetCookies() *helpers.Manager {
	if cookies != nil {
		return cookies
	}
	if cfg != nil {
		return helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	}
	return helpers.NewCookie("", false)
}
