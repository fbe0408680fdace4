// Package suggest derives smart-suggestion drafts from a profile snapshot and
// the latest assessment. Passes are pure; persistence lives in the store.
package suggest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

const day = 24 * time.Hour

// Input is the read-only view a pass works from. Assessment is nil when the
// user has never been assessed.
type Input struct {
	Snapshot   *profile.Snapshot
	Counts     profile.SectionCounts
	Assessment *assessment.Assessment
	Now        time.Time
}

// Draft is a suggestion before it is bound to a user and persisted.
type Draft struct {
	Type           string              `json:"suggestion_type"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Category       assessment.Category `json:"category"`
	Priority       assessment.Priority `json:"priority"`
	RelevanceScore int                 `json:"relevance_score"`
	ActionType     string              `json:"action_type"`
	ActionURL      string              `json:"action_url"`
	Data           map[string]any      `json:"data,omitempty"`
	ExpiresIn      time.Duration       `json:"-"`
}

// ToSuggestion binds d to userID; expiry is measured from now.
func (d Draft) ToSuggestion(userID uuid.UUID, now time.Time) (*assessment.Suggestion, error) {
	s := &assessment.Suggestion{
		UserID:         userID,
		SuggestionType: d.Type,
		Title:          d.Title,
		Category:       d.Category,
		Priority:       d.Priority,
		Description:    d.Description,
		ActionType:     d.ActionType,
		ActionURL:      d.ActionURL,
		RelevanceScore: d.RelevanceScore,
	}
	if d.ExpiresIn > 0 {
		exp := now.Add(d.ExpiresIn)
		s.ExpiresAt = &exp
	}
	if d.Data != nil {
		raw, err := json.Marshal(d.Data)
		if err != nil {
			return nil, fmt.Errorf("marshal data for %q: %w", d.Title, err)
		}
		s.Data = datatypes.JSON(raw)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
