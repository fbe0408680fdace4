package repos

import (
	"github.com/yungbote/visapath-backend/internal/data/repos/assessment"
	"github.com/yungbote/visapath-backend/internal/data/repos/profile"
	"github.com/yungbote/visapath-backend/internal/data/repos/suggestion"
)

type ProfileRepo = profile.ProfileRepo

type AssessmentRepo = assessment.AssessmentRepo
type SuggestionRepo = suggestion.SuggestionRepo
