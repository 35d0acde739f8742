package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/festify/festify-web/config"
	"github.com/festify/festify-web/internal/auth"
	"github.com/festify/festify-web/internal/container"
	"github.com/festify/festify-web/internal/infrastructure/backend"
	"github.com/festify/festify-web/internal/infrastructure/cache"
	"github.com/festify/festify-web/internal/infrastructure/metrics"
	"github.com/festify/festify-web/internal/infrastructure/supabase"
	handlers "github.com/festify/festify-web/internal/interface/http"
	"github.com/festify/festify-web/internal/interface/middleware"
	"github.com/festify/festify-web/internal/router"
	"github.com/festify/festify-web/pkg/helpers"
	"github.com/festify/festify-web/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		log.Fatal("SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}

	// Redis is optional: without it the cache stays in memory and rate limits are off
	rdb := connectRedis(cfg, logger)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	var appCache cache.Cache = cache.NewMemory(cfg.CacheTTL)
	if cfg.CacheBackend == "redis" {
		if rdb != nil {
			appCache = cache.NewRedis(rdb, "festify:cache:", cfg.CacheTTL)
		} else {
			logger.Warn("CACHE_BACKEND=redis but redis is unavailable; using memory cache")
		}
	}

	var observer *metrics.Backend
	opts := []backend.Option{
		backend.WithSessionSource(auth.ContextSessions{}),
		backend.WithNavigator(middleware.Navigator{}),
		backend.WithLoginPath(cfg.LoginPath),
		backend.WithTimeout(cfg.APITimeout),
		backend.WithLogger(logger),
	}
	if cfg.MetricsEnabled {
		observer = metrics.NewBackend()
		opts = append(opts, backend.WithObserver(observer))
	}
	api := backend.NewClient(cfg.APIBaseURL, opts...)

	supa := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseJWTSecret, logger)
	if cfg.SupabaseJWTSecret == "" {
		logger.Warn("SUPABASE_JWT_SECRET not set; session cookies are verified against GoTrue on every request")
	}
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		logger.Info("admin console disabled: ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set")
	}

	validation.Init()

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetCache(appCache)
	container.SetBackend(api)
	container.SetSupabase(supa)
	container.SetCookies(helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure))
	if observer != nil {
		container.SetMetrics(observer)
	}

	// Gin engine and global middleware
	r := gin.New()
	r.SetHTMLTemplate(handlers.Templates())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		reg.UseAPI(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "backend": cfg.APIBaseURL}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func connectRedis(cfg *config.Config, logger *logrus.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable; continuing without it")
		_ = rdb.Close()
		return nil
	}
	return rdb
}
