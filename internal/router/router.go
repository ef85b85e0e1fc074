package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pageza/recipe-vault/backend/internal/api"
	"github.com/pageza/recipe-vault/backend/internal/metrics"
	"github.com/pageza/recipe-vault/backend/internal/middleware"
)

// Options carries everything the router wires together.
type Options struct {
	Logger      *slog.Logger
	Services    api.Services
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
	// Limiter guards shopping list generation. Nil disables rate limiting.
	Limiter middleware.Limiter
}

// SetupRouter configures the application routes
func SetupRouter(opts Options) *gin.Engine {
	router := gin.New()

	var rec middleware.HTTPRecorder
	if opts.Metrics != nil {
		rec = opts.Metrics
	}
	router.Use(
		middleware.RequestLogger(opts.Logger, rec),
		middleware.Recovery(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
	)
	router.NoRoute(middleware.NotFound())

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(opts.Gatherer)))
	}

	var generate []gin.HandlerFunc
	if opts.Limiter != nil {
		generate = append(generate, middleware.RateLimit(opts.Limiter, opts.Logger))
	}
	api.SetupAPI(router, opts.Services, opts.Logger, generate...)

	return router
}
