// Package http assembles the Gin engine: service construction, the
// middleware chain, and route registration.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/ymy1064-stack/App-backend/docs"
	"github.com/ymy1064-stack/App-backend/internal/cache"
	"github.com/ymy1064-stack/App-backend/internal/config"
	"github.com/ymy1064-stack/App-backend/internal/http/handlers"
	"github.com/ymy1064-stack/App-backend/internal/http/middleware"
	"github.com/ymy1064-stack/App-backend/internal/provider"
	"github.com/ymy1064-stack/App-backend/internal/quota"
	"github.com/ymy1064-stack/App-backend/internal/services"
)

// maxBodyBytes caps request payloads. The largest legitimate input is a
// full video script, which fits comfortably under 1 MiB.
const maxBodyBytes = 1 << 20

// Services bundles the constructed application services for route
// registration and for tests that want to reach past the HTTP layer.
type Services struct {
	SEO   *services.SEOService
	Learn *services.LearnService
	Quota services.Quota
}

// BuildServices wires providers, quota tracking and the response cache
// into the two application services. Stores are injected so callers pick
// memory or SQLite persistence.
func BuildServices(cfg config.Config, usageStore quota.Store, cacheStore cache.Store) Services {
	httpClient := provider.NewHTTPClient(cfg.Providers.Timeout)
	gemini := provider.NewGemini(httpClient, cfg.Providers.GeminiModel)
	openRouter := provider.NewOpenRouter(httpClient, cfg.Providers.OpenRouterModel)

	tracker := quota.NewTracker(usageStore, quota.Limits{
		SEO:   cfg.SEODailyLimit,
		Learn: cfg.LearnDailyLimit,
	})
	responseCache := cache.New(cacheStore, cfg.CacheTTL)

	// Each feature gets its own credential pair but shares the clients.
	// Order is fixed: the primary provider first, then the fallback.
	seoChain := provider.NewChain(
		provider.Attempt{Client: gemini, Credential: cfg.Providers.GeminiKeySEO},
		provider.Attempt{Client: openRouter, Credential: cfg.Providers.OpenRouterKeySEO},
	)
	learnChain := provider.NewChain(
		provider.Attempt{Client: gemini, Credential: cfg.Providers.GeminiKeyLearn},
		provider.Attempt{Client: openRouter, Credential: cfg.Providers.OpenRouterKeyLearn},
	)

	return Services{
		SEO:   &services.SEOService{Quota: tracker, Cache: responseCache, Chain: seoChain},
		Learn: &services.LearnService{Quota: tracker, Cache: responseCache, Chain: learnChain},
		Quota: tracker,
	}
}

// RegisterRoutes installs the middleware chain and all routes on r.
func RegisterRoutes(r *gin.Engine, cfg config.Config, svc Services) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.Metrics())

	if cfg.RateRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
		r.Use(rl.Handler())
	}

	corsCfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-User-ID", "X-Request-ID"},
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	secCfg := middleware.SecurityHeadersConfig{}
	if cfg.Security.EnableHSTS {
		secCfg.HSTSMaxAgeSeconds = int(cfg.Security.HSTSMaxAge.Seconds())
		secCfg.HSTSIncludeSubdomains = true
	}
	r.Use(middleware.SecurityHeaders(secCfg))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	meta := handlers.NewMetaHandler(svc.Quota)
	seo := &handlers.SEOHandler{Service: svc.SEO}
	learn := &handlers.LearnHandler{Service: svc.Learn}

	api := r.Group(cfg.APIBasePath)
	{
		api.GET("/health", meta.Health)
		api.GET("/quota", meta.RemainingQuota)
		api.POST("/seo/generate", seo.Generate)
		api.POST("/learn/ask", learn.Ask)
	}

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": "method not allowed"})
	})
}
