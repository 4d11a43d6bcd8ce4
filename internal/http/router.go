// Package httpapi wires the Gin transport to the question and answer
// services. It owns middleware ordering, the operational endpoints
// (/health, /metrics, /swagger) and the public API routes.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/go-qa-backend/internal/config"
	_ "github.com/tbourn/go-qa-backend/internal/docs"
	"github.com/tbourn/go-qa-backend/internal/http/handlers"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/services"
)

const maxBodyBytes = 1 << 20

// RegisterRoutes attaches middleware and endpoints to r. The store and
// censor are injected so the same router serves the in-memory and the
// relational backends.
//
// Middleware order matters:
//  1. OpenTelemetry
//  2. RequestID
//  3. access logger (redacting unless disabled)
//  4. Recovery
//  5. body size limit, gzip, metrics
//  6. rate limiter (probes exempt)
//  7. ErrorHandler, which renders errors recorded by everything below it
//     before metrics and the access log read the final status
//  8. origin guard, CORS, security headers
//  9. per-request deadline
func RegisterRoutes(r *gin.Engine, store services.Store, censor services.Censor, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	if cfg.LogRedact {
		r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))
	} else {
		r.Use(middleware.Logger())
	}
	r.Use(middleware.Recovery())

	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.Metrics())

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP()).
		Exempt("/health", "/metrics")
	r.Use(rl.Handler())
	r.Use(handlers.ErrorHandler())

	r.Use(middleware.OriginGuard(cfg.CORS.AllowedOrigins))
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(
		services.NewQuestionService(store, censor),
		services.NewAnswerService(store, censor),
	)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.GET("/questions", h.ListQuestions)
		api.POST("/questions", h.AddQuestion)
		api.GET("/questions/:id", h.GetQuestion)
		api.PUT("/questions/:id", h.UpdateQuestion)
		api.DELETE("/questions/:id", h.DeleteQuestion)
		api.GET("/questions/:id/answers", h.ListAnswers)

		api.POST("/answers", h.AddAnswer)
	}
}

// corsMiddleware allows any origin when allowed is empty and echoes
// allowlisted origins otherwise. Disallowed origins never reach it; the
// origin guard rejects them first.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(allowed) == 0 {
		base.AllowAllOrigins = true
		corsAll := cors.New(base)
		return func(c *gin.Context) {
			// ACAO: * even without an Origin header, so probes see it too.
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			corsAll(c)
		}
	}
	base.AllowOrigins = allowed
	return cors.New(base)
}

// limitBody caps request bodies at maxBytes. Reads past the cap fail and
// surface as a body decoding error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
