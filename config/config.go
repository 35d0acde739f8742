package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Defaults target local development.
type Config struct {
	AppName  string
	Env      string // development, staging, production
	Port     string
	GinMode  string
	AppURL   string
	LogLevel string

	// Festify REST backend
	APIBaseURL string
	APITimeout time.Duration
	LoginPath  string

	// Supabase
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Cache
	CacheBackend string // memory or redis
	CacheTTL     time.Duration

	BatchConcurrency int

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS for /api/v1
	CORSAllowedOrigins string // comma-separated

	// Admin console
	AdminEmail        string
	AdminPasswordHash string

	MetricsEnabled bool

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName:  getenv("APP_NAME", "festify-web"),
		Env:      getenv("APP_ENV", "development"),
		Port:     getenv("PORT", "8080"),
		GinMode:  getenv("GIN_MODE", "release"),
		AppURL:   getenv("APP_URL", "http://localhost:8080"),
		LogLevel: getenv("LOG_LEVEL", ""),

		APIBaseURL: getenv("API_BASE_URL", "http://localhost:8081"),
		APITimeout: getdur("API_TIMEOUT", 15*time.Second),
		LoginPath:  getenv("LOGIN_PATH", "/auth/login"),

		SupabaseURL:       getenv("SUPABASE_URL", "http://localhost:54321"),
		SupabaseAnonKey:   getenv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: getenv("SUPABASE_JWT_SECRET", ""),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		CacheBackend: strings.ToLower(getenv("CACHE_BACKEND", "memory")),
		CacheTTL:     getdur("CACHE_TTL", 5*time.Minute),

		BatchConcurrency: getint("BATCH_CONCURRENCY", 4),

		CookieDomain: getenv("COOKIE_DOMAIN", "localhost"),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		AdminEmail:        getenv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getenv("ADMIN_PASSWORD_HASH", ""),

		MetricsEnabled: getbool("METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// RootURL is the app root used as the sign-up confirmation redirect.
func (c *Config) RootURL() string {
	return strings.TrimRight(c.AppURL, "/") + "/"
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
