package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/visapath-backend/internal/platform/logger"
	"github.com/yungbote/visapath-backend/internal/platform/rediscache"
	"github.com/yungbote/visapath-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Assessment services.AssessmentService
	Suggestion services.SuggestionService
}

// cache may be nil.
func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, cache rediscache.Cache) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(log, cfg.Auth.JWTSecret, cfg.Auth.AccessTTL),
		Assessment: services.NewAssessmentService(db, log, reposet.Profile, reposet.Assessment, cache, services.AssessmentConfig{
			Freshness: cfg.Assessment.Freshness,
		}),
		Suggestion: services.NewSuggestionService(db, log, reposet.Profile, reposet.Assessment, reposet.Suggestion, services.SuggestionConfig{
			CompletedRetention: cfg.Suggestion.CompletedRetention,
		}),
	}
}
