// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartcampus/campusai-go/internal/buildinfo"
	"github.com/smartcampus/campusai-go/internal/campus"
	"github.com/smartcampus/campusai-go/internal/config"
	"github.com/smartcampus/campusai-go/internal/engine"
	"github.com/smartcampus/campusai-go/internal/knowledge"
	"github.com/smartcampus/campusai-go/internal/logger"
	"github.com/smartcampus/campusai-go/internal/metrics"
	"github.com/smartcampus/campusai-go/internal/ratelimit"
	"github.com/smartcampus/campusai-go/internal/sentry"
)

// serviceName is reported by the /health endpoint.
const serviceName = "Smart Campus AI Chatbot"

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg         *config.Config
	logger      *logger.Logger
	metrics     *metrics.Metrics
	registry    *prometheus.Registry
	client      *campus.Client
	engine      *engine.Engine
	userLimiter *ratelimit.KeyedLimiter
	server      *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", "campusai-go")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if cfg.SentryEnabled {
		if err := sentry.Initialize(sentry.Config{
			DSN:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			Release:     buildinfo.Version,
			SampleRate:  cfg.SentrySampleRate,
		}); err != nil {
			log.WithError(err).Warn("Sentry initialization failed")
		} else {
			log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error tracking enabled")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	client := campus.NewClient(cfg.BackendURL, cfg.BackendTimeout, m)
	gateway := campus.NewGateway(client, log)
	kb := knowledge.Load(cfg.KnowledgeBasePath, log)
	eng := engine.New(gateway, kb, m, log)
	log.WithField("backend_url", cfg.BackendURL).Info("Campus backend gateway ready")

	var userLimiter *ratelimit.KeyedLimiter
	if cfg.RateLimitEnabled() {
		userLimiter = ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
			Name:          "user",
			Burst:         cfg.UserRateBurst,
			RefillRate:    cfg.UserRateRefill,
			CleanupPeriod: config.RateLimiterCleanupInterval,
			Metrics:       m,
		})
		log.WithField("burst", cfg.UserRateBurst).
			WithField("refill_per_second", cfg.UserRateRefill).
			Info("Per-user rate limiting enabled")
	}

	app := &Application{
		cfg:         cfg,
		logger:      log,
		metrics:     m,
		registry:    registry,
		client:      client,
		engine:      eng,
		userLimiter: userLimiter,
	}

	router := app.buildRouter()
	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.HTTPRead,
		ReadTimeout:       config.HTTPRead,
		WriteTimeout:      config.HTTPWrite,
		IdleTimeout:       config.HTTPIdle,
	}

	log.Info("Initialization complete")
	return app, nil
}

// buildRouter assembles the gin router with middleware and routes.
func (a *Application) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(a.logger))
	router.Use(corsMiddleware(a.cfg.CORSAllowOrigins))
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	router.GET("/", a.rootInfo)
	router.HEAD("/", a.rootInfo)
	router.GET("/health", a.healthCheck)
	router.HEAD("/health", a.healthCheck)
	router.GET("/healthz", a.livenessCheck)
	router.HEAD("/healthz", a.livenessCheck)
	router.GET("/ready", a.readinessCheck)
	router.HEAD("/ready", a.readinessCheck)

	router.POST("/chat", a.handleChat)
	router.POST("/chat/analyze", a.handleAnalyze)
	router.POST("/chat/suggestions", a.handleSuggestions)
	router.POST("/chat/leave-advice", a.handleLeaveAdvice)
	router.POST("/chat/library-renewal", a.handleLibraryRenewal)

	router.GET("/metrics",
		metricsAuthMiddleware(a.cfg.MetricsUsername, a.cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	return router
}

// corsMiddleware allows the configured origins, or any origin when none are
// configured.
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

func (a *Application) rootInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"version": buildinfo.Version,
	})
}

func (a *Application) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   serviceName,
		"version":   buildinfo.Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (a *Application) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.ReadinessProbe)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		a.logger.WithError(err).Warn("Readiness check failed: backend unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "backend unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"backend": "connected",
	})
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then drains in-flight requests and releases resources.
func (a *Application) Run() error {
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Error("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")

	return a.shutdown()
}

// shutdown stops accepting new requests, waits for in-flight requests to
// complete, then releases resources.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	if a.userLimiter != nil {
		a.userLimiter.Stop()
	}

	if sentry.IsEnabled() && !sentry.Flush(2*time.Second) {
		a.logger.Warn("Sentry flush timed out")
	}

	a.logger.Info("Shutdown complete")
	return nil
}
