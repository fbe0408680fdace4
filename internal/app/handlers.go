package app

import (
	httpH "github.com/yungbote/visapath-backend/internal/http/handlers"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Assessment *httpH.AssessmentHandler
	Suggestion *httpH.SuggestionHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, checks map[string]httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(checks),
		Assessment: httpH.NewAssessmentHandler(serviceset.Assessment),
		Suggestion: httpH.NewSuggestionHandler(serviceset.Suggestion),
	}
}
