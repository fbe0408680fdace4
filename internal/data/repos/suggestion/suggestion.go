package suggestion

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/platform/dbctx"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
)

type SuggestionRepo interface {
	UpsertMany(dbc dbctx.Context, rows []*types.Suggestion, now time.Time) error
	PruneStale(dbc dbctx.Context, userID uuid.UUID, now time.Time, completedRetention time.Duration) (int64, error)
	ListActive(dbc dbctx.Context, userID uuid.UUID, now time.Time) ([]*types.Suggestion, error)
	CountActiveByPriority(dbc dbctx.Context, userID uuid.UUID, now time.Time) (types.PriorityCounts, error)
	GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.Suggestion, error)
	MarkCompleted(dbc dbctx.Context, userID, id uuid.UUID, now time.Time) (bool, error)
	Dismiss(dbc dbctx.Context, userID, id uuid.UUID, now time.Time) (bool, error)
}

type suggestionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSuggestionRepo(db *gorm.DB, baseLog *logger.Logger) SuggestionRepo {
	return &suggestionRepo{db: db, log: baseLog.With("repo", "SuggestionRepo")}
}

// draftColumns are overwritten on regeneration. Lifecycle flags stay.
var draftColumns = []string{
	"category",
	"priority",
	"description",
	"data",
	"action_type",
	"action_url",
	"relevance_score",
	"expires_at",
	"updated_at",
}

const priorityRankOrder = "CASE priority WHEN 'urgent' THEN 1 WHEN 'high' THEN 2 WHEN 'medium' THEN 3 WHEN 'low' THEN 4 ELSE 5 END ASC"

const activeWhere = "user_id = ? AND is_completed = ? AND is_dismissed = ? AND (expires_at IS NULL OR expires_at >= ?)"

// UpsertMany stamps created_at and updated_at with now.
func (r *suggestionRepo) UpsertMany(dbc dbctx.Context, rows []*types.Suggestion, now time.Time) error {
	if len(rows) == 0 {
		return nil
	}
	for _, s := range rows {
		if err := s.Validate(); err != nil {
			return err
		}
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		s.UpdatedAt = now
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "suggestion_type"},
				{Name: "title"},
			},
			DoUpdates: clause.AssignmentColumns(draftColumns),
		}).
		Create(&rows).Error
}

// PruneStale deletes completed rows older than the retention window and
// anything already expired.
func (r *suggestionRepo) PruneStale(dbc dbctx.Context, userID uuid.UUID, now time.Time, completedRetention time.Duration) (int64, error) {
	if userID == uuid.Nil {
		return 0, nil
	}
	cutoff := now.Add(-completedRetention)
	res := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Where(
			"(is_completed = ? AND completed_at IS NOT NULL AND completed_at < ?) OR (expires_at IS NOT NULL AND expires_at < ?)",
			true, cutoff, now,
		).
		Delete(&types.Suggestion{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune suggestions: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *suggestionRepo) ListActive(dbc dbctx.Context, userID uuid.UUID, now time.Time) ([]*types.Suggestion, error) {
	var out []*types.Suggestion
	if userID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where(activeWhere, userID, false, false, now).
		Order(priorityRankOrder).
		Order("relevance_score DESC").
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *suggestionRepo) CountActiveByPriority(dbc dbctx.Context, userID uuid.UUID, now time.Time) (types.PriorityCounts, error) {
	var counts types.PriorityCounts
	if userID == uuid.Nil {
		return counts, nil
	}
	var rows []struct {
		Priority types.Priority
		N        int
	}
	if err := dbc.DB(r.db).
		Model(&types.Suggestion{}).
		Select("priority, COUNT(*) AS n").
		Where(activeWhere, userID, false, false, now).
		Group("priority").
		Scan(&rows).Error; err != nil {
		return counts, err
	}
	for _, row := range rows {
		counts.Add(row.Priority, row.N)
	}
	return counts, nil
}

func (r *suggestionRepo) GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.Suggestion, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var rows []types.Suggestion
	if err := dbc.DB(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// MarkCompleted reports false only when no such suggestion belongs to userID.
// Completing twice keeps the first completed_at.
func (r *suggestionRepo) MarkCompleted(dbc dbctx.Context, userID, id uuid.UUID, now time.Time) (bool, error) {
	return r.setFlag(dbc, userID, id, "is_completed", "completed_at", now)
}

func (r *suggestionRepo) Dismiss(dbc dbctx.Context, userID, id uuid.UUID, now time.Time) (bool, error) {
	return r.setFlag(dbc, userID, id, "is_dismissed", "dismissed_at", now)
}

func (r *suggestionRepo) setFlag(dbc dbctx.Context, userID, id uuid.UUID, flagCol, atCol string, now time.Time) (bool, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return false, nil
	}
	res := dbc.DB(r.db).
		Model(&types.Suggestion{}).
		Where("id = ? AND user_id = ? AND "+flagCol+" = ?", id, userID, false).
		Updates(map[string]interface{}{
			flagCol:      true,
			atCol:        now,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	existing, err := r.GetByID(dbc, userID, id)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}
