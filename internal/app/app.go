package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brightline-events/siteadmin/internal/auth"
	"github.com/brightline-events/siteadmin/internal/config"
	"github.com/brightline-events/siteadmin/internal/content"
	"github.com/brightline-events/siteadmin/internal/db"
	sitehttp "github.com/brightline-events/siteadmin/internal/http"
	"github.com/brightline-events/siteadmin/internal/http/api/admin"
	"github.com/brightline-events/siteadmin/internal/http/api/admin/handlers"
	"github.com/brightline-events/siteadmin/internal/http/api/front"
	"github.com/brightline-events/siteadmin/internal/security"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, cfg config.AppConfig) error {
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("app: database dsn is not configured")
	}
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer closeDatabase(conn)
	return db.Migrate(conn.WithContext(ctx))
}

// RunServer serves the admin and public APIs until ctx is cancelled.
func RunServer(ctx context.Context, cfg config.AppConfig) error {
	conn, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if conn != nil {
		defer closeDatabase(conn)
	}

	limiter, closeLimiter, err := buildRateLimiter(ctx, cfg.RateLimit)
	if err != nil {
		return err
	}
	defer closeLimiter()

	svc := NewAuthService(cfg, conn, limiter)
	var repo *content.Repository
	if conn != nil {
		repo = content.NewRepository(conn)
	}
	engine, err := NewEngine(cfg, svc, conn, repo)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("starting server on %s (config=%s)", cfg.Server.Addr, cfg.ConfigPath)
		if errServe := srv.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			serveErr <- errServe
		}
		close(serveErr)
	}()

	select {
	case errServe := <-serveErr:
		return errServe
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownGrace)*time.Second)
	defer cancel()
	if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
		return fmt.Errorf("app: shutdown: %w", errShutdown)
	}
	log.Info("server stopped")
	return nil
}

// NewAuthService builds the admin auth service. conn may be nil for env-only auth.
func NewAuthService(cfg config.AppConfig, conn *gorm.DB, limiter auth.RateLimiter) *auth.Service {
	deps := auth.Dependencies{
		Hasher:  security.NewBcryptHasher(cfg.Auth.BcryptCost),
		Limiter: limiter,
		Env:     auth.EnvCredentials{Username: cfg.Auth.AdminUser, Password: cfg.Auth.AdminPass},
		Clock:   nowUTC,
		Hooks:   []auth.Hook{auth.NewLogHook(), auth.NewMetricsHook()},
	}
	if conn != nil {
		deps.Store = auth.NewGormCredentialStore(conn)
	}
	return auth.NewService(deps, auth.Options{
		LegacyEnvFallback: cfg.Auth.LegacyFallbackEnabled(),
		LockPolicy: auth.LockPolicy{
			Threshold: cfg.Auth.LockThreshold,
			Duration:  cfg.Auth.LockDuration(),
		},
	})
}

// NewEngine assembles the gin engine with middleware and all routes.
func NewEngine(cfg config.AppConfig, svc *auth.Service, conn *gorm.DB, repo *content.Repository) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	if errProxies := engine.SetTrustedProxies(cfg.Server.TrustedProxies); errProxies != nil {
		return nil, fmt.Errorf("app: trusted proxies: %w", errProxies)
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		engine.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	}
	engine.Use(sitehttp.RequestLogMiddleware())

	healthHandler := handlers.NewHealthHandler(conn)
	engine.GET("/healthz", healthHandler.Healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin.RegisterAdminRoutes(engine, svc, repo)
	front.RegisterFrontRoutes(engine, repo)

	engine.NoRoute(func(c *gin.Context) {
		if isAPIRoute(c.Request.URL.Path) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})
	return engine, nil
}

// corsConfig allows the admin UI and public site origins to call the API.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", sitehttp.RequestIDHeader},
		ExposeHeaders: []string{"Retry-After", "WWW-Authenticate", sitehttp.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// openDatabase returns nil when no DSN is configured.
func openDatabase(cfg config.AppConfig) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		log.Warn("no database configured; admin auth uses ADMIN_USER/ADMIN_PASS and content routes are disabled")
		return nil, nil
	}
	conn, err := db.Open(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		closeDatabase(conn)
		return nil, errMigrate
	}
	return conn, nil
}

func closeDatabase(conn *gorm.DB) {
	sqlDB, err := conn.DB()
	if err != nil {
		return
	}
	if errClose := sqlDB.Close(); errClose != nil {
		log.WithError(errClose).Warn("close database")
	}
}

// buildRateLimiter returns the configured limiter and its cleanup.
func buildRateLimiter(ctx context.Context, cfg config.RateLimitConfig) (auth.RateLimiter, func(), error) {
	if cfg.Driver == config.RateLimitDriverRedis {
		limiter, err := auth.NewRedisRateLimiter(ctx, auth.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}, cfg.MaxAttempts, cfg.Window())
		if err != nil {
			return nil, nil, err
		}
		log.Infof("login rate limiter: redis at %s", cfg.Redis.Addr)
		return limiter, func() {
			if errClose := limiter.Close(); errClose != nil {
				log.WithError(errClose).Warn("close redis rate limiter")
			}
		}, nil
	}
	log.Info("login rate limiter: in-process memory")
	return auth.NewMemoryRateLimiter(cfg.MaxAttempts, cfg.Window(), nowUTC), func() {}, nil
}

// nowUTC returns the current UTC time.
func nowUTC() time.Time { return time.Now().UTC() }

// isAPIRoute reports whether a path targets API endpoints.
func isAPIRoute(requestPath string) bool {
	for _, prefix := range []string{"/api", "/healthz", "/metrics"} {
		if requestPath == prefix || strings.HasPrefix(requestPath, prefix+"/") {
			return true
		}
	}
	return false
}
