package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/visapath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/visapath-backend/internal/http/middleware"
	"github.com/yungbote/visapath-backend/internal/observability"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	CORSOrigins    []string

	AuthMiddleware *httpMW.AuthMiddleware

	AssessmentHandler *httpH.AssessmentHandler
	SuggestionHandler *httpH.SuggestionHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	protected := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Assessment
		if cfg.AssessmentHandler != nil {
			protected.GET("/assessment", cfg.AssessmentHandler.GetAssessment)
			protected.POST("/assessment/refresh", cfg.AssessmentHandler.RefreshAssessment)
		}

		// Suggestions
		if cfg.SuggestionHandler != nil {
			protected.POST("/suggestions/generate", cfg.SuggestionHandler.Generate)
			protected.GET("/suggestions", cfg.SuggestionHandler.ListActive)
			protected.GET("/suggestions/counts", cfg.SuggestionHandler.Counts)
			protected.POST("/suggestions/:id/complete", cfg.SuggestionHandler.Complete)
			protected.POST("/suggestions/:id/dismiss", cfg.SuggestionHandler.Dismiss)
		}
	}

	return r
}
