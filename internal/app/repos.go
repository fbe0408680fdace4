package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/visapath-backend/internal/data/repos"
	"github.com/yungbote/visapath-backend/internal/data/repos/assessment"
	"github.com/yungbote/visapath-backend/internal/data/repos/profile"
	"github.com/yungbote/visapath-backend/internal/data/repos/suggestion"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
)

type Repos struct {
	Profile    repos.ProfileRepo
	Assessment repos.AssessmentRepo
	Suggestion repos.SuggestionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile:    profile.NewProfileRepo(db, log),
		Assessment: assessment.NewAssessmentRepo(db, log),
		Suggestion: suggestion.NewSuggestionRepo(db, log),
	}
}
