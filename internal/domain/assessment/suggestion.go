package assessment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrInvalidPriority   = errors.New("invalid suggestion priority")
	ErrInvalidCategory   = errors.New("invalid suggestion category")
	ErrInvalidSuggestion = errors.New("invalid suggestion")
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities in display order.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities: urgent=1 through low=4; unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	}
	return 5
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

type Category string

const (
	CategoryProfile     Category = "profile"
	CategoryDocument    Category = "document"
	CategoryVisa        Category = "visa"
	CategoryAssessment  Category = "assessment"
	CategoryApplication Category = "application"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryProfile, CategoryDocument, CategoryVisa, CategoryAssessment, CategoryApplication:
		return true
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

const (
	TypeProfileCompletion  = "profile_completion"
	TypeDocumentUpload     = "document_upload"
	TypeVisaRecommendation = "visa_recommendation"
	TypeAssessment         = "assessment"
	TypeRiskMitigation     = "risk_mitigation"
	TypeNextStep           = "next_step"
)

// Suggestion is keyed by (user_id, suggestion_type, title); regeneration
// upserts on that key.
type Suggestion struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_suggestion_key,priority:1;index:idx_suggestion_user_state,priority:1" json:"user_id"`
	SuggestionType string    `gorm:"column:suggestion_type;not null;uniqueIndex:idx_suggestion_key,priority:2" json:"suggestion_type"`
	Title          string    `gorm:"column:title;not null;uniqueIndex:idx_suggestion_key,priority:3" json:"title"`

	Category       Category       `gorm:"column:category;not null" json:"category"`
	Priority       Priority       `gorm:"column:priority;not null" json:"priority"`
	Description    string         `gorm:"column:description" json:"description"`
	Data           datatypes.JSON `gorm:"column:data" json:"data"`
	ActionType     string         `gorm:"column:action_type" json:"action_type"`
	ActionURL      string         `gorm:"column:action_url" json:"action_url"`
	RelevanceScore int            `gorm:"column:relevance_score;not null;default:0" json:"relevance_score"`
	ExpiresAt      *time.Time     `gorm:"column:expires_at;index" json:"expires_at"`

	IsCompleted bool       `gorm:"column:is_completed;not null;default:false;index:idx_suggestion_user_state,priority:2" json:"is_completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
	IsDismissed bool       `gorm:"column:is_dismissed;not null;default:false;index:idx_suggestion_user_state,priority:3" json:"is_dismissed"`
	DismissedAt *time.Time `gorm:"column:dismissed_at" json:"dismissed_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Suggestion) TableName() string { return "smart_suggestion" }

// Validate rejects rows that must never reach the store.
func (s *Suggestion) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil", ErrInvalidSuggestion)
	}
	if s.UserID == uuid.Nil {
		return fmt.Errorf("%w: missing user_id", ErrInvalidSuggestion)
	}
	if strings.TrimSpace(s.SuggestionType) == "" || strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: missing suggestion_type or title", ErrInvalidSuggestion)
	}
	if !s.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, s.Priority)
	}
	if !s.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, s.Category)
	}
	if s.RelevanceScore < 0 || s.RelevanceScore > 100 {
		return fmt.Errorf("%w: relevance_score %d out of range", ErrInvalidSuggestion, s.RelevanceScore)
	}
	return nil
}

// IsActive reports not completed, not dismissed and not expired at now.
func (s *Suggestion) IsActive(now time.Time) bool {
	if s == nil || s.IsCompleted || s.IsDismissed {
		return false
	}
	return s.ExpiresAt == nil || !s.ExpiresAt.Before(now)
}

// PriorityCounts tallies active suggestions per priority.
type PriorityCounts struct {
	Urgent int `json:"urgent"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Total  int `json:"total"`
}

func (c *PriorityCounts) Add(p Priority, n int) {
	switch p {
	case PriorityUrgent:
		c.Urgent += n
	case PriorityHigh:
		c.High += n
	case PriorityMedium:
		c.Medium += n
	case PriorityLow:
		c.Low += n
	default:
		return
	}
	c.Total += n
}
