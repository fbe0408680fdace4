package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/visapath-backend/internal/http"
	"github.com/yungbote/visapath-backend/internal/observability"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return http.NewRouter(http.RouterConfig{
		Log:               log,
		Metrics:           metrics,
		ServiceName:       cfg.Otel.ServiceName,
		TracingEnabled:    cfg.Otel.Enabled,
		CORSOrigins:       cfg.HTTP.CORSOrigins,
		AuthMiddleware:    middleware.Auth,
		AssessmentHandler: handlers.Assessment,
		SuggestionHandler: handlers.Suggestion,
		HealthHandler:     handlers.Health,
	})
}
