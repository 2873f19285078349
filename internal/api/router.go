package api

import (
	"github.com/Conceptual-Machines/magda-composer/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/magda-composer/internal/api/middleware"
	"github.com/Conceptual-Machines/magda-composer/internal/config"
	"github.com/Conceptual-Machines/magda-composer/internal/metrics"
	"github.com/Conceptual-Machines/magda-composer/internal/middleware"
	"github.com/Conceptual-Machines/magda-composer/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires handlers and middleware. db may be nil when persistence
// is disabled, cw may be nil outside production.
func SetupRouter(db *gorm.DB, cfg *config.Config, version string, cw *metrics.Client) *gin.Engine {
	router := gin.New()

	sentryMetrics := metrics.NewSentryMetrics()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw, sentryMetrics))

	// CORS middleware
	router.Use(apimiddleware.CORS())

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	composer := services.NewComposerService(cfg, cw, sentryMetrics)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, cfg, composer.Counters())
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Keep the interface nil when there is no database
	var store services.CompositionStore
	if db != nil {
		store = services.NewCompositionStore(db)
	}

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware(cfg))
	{
		composerHandler := handlers.NewComposerHandler(composer)
		v1.POST("/isorhythm", composerHandler.Isorhythm)
		v1.POST("/canon", composerHandler.Canon)
		v1.POST("/hocket", composerHandler.Hocket)
		v1.POST("/tintinnabuli", composerHandler.Tintinnabuli)
		v1.POST("/lyrics/syllabify", composerHandler.Syllabify)
		v1.POST("/lyrics/apply", composerHandler.ApplyLyrics)
		v1.POST("/scales/pentatonic", composerHandler.Pentatonic)
		v1.POST("/scales/transpose", composerHandler.ScaleTranspose)
		v1.POST("/sets/analyze", composerHandler.AnalyzeSet)
		v1.POST("/sets/subsets", composerHandler.Subsets)
		v1.POST("/sets/t-operator", composerHandler.TOperator)
		v1.POST("/sets/compare", composerHandler.CompareSets)
		v1.POST("/dsl", composerHandler.DSL)

		compositionHandler := handlers.NewCompositionHandler(store, composer)
		v1.POST("/compositions", compositionHandler.Create)
		v1.GET("/compositions", compositionHandler.List)
		v1.GET("/compositions/:id", compositionHandler.Get)

		// Deleting is admin only once callers are authenticated
		if cfg.IsGatewayMode() || cfg.IsJWTMode() {
			v1.DELETE("/compositions/:id", middleware.AdminRequired(), compositionHandler.Delete)
		} else {
			v1.DELETE("/compositions/:id", compositionHandler.Delete)
		}
	}

	return router
}

// authMiddleware picks the middleware for AUTH_MODE
func authMiddleware(cfg *config.Config) gin.HandlerFunc {
	switch {
	case cfg.IsGatewayMode():
		return apimiddleware.GatewayAuth()
	case cfg.IsJWTMode():
		return middleware.JWTAuth(cfg)
	default:
		return apimiddleware.NoAuth()
	}
}
