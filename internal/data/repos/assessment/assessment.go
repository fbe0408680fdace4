package assessment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/platform/dbctx"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
)

type AssessmentRepo interface {
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.Assessment, error)
	Upsert(dbc dbctx.Context, row *types.Assessment) (*types.Assessment, error)
	DeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (r *assessmentRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.Assessment, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var rows []types.Assessment
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// upsertColumns is everything a recomputation replaces.
var upsertColumns = []string{
	"personal_info_score",
	"education_score",
	"work_experience_score",
	"language_proficiency_score",
	"financial_score",
	"travel_history_score",
	"passport_score",
	"profile_completeness",
	"document_readiness",
	"visa_eligibility",
	"overall_score",
	"strengths",
	"weaknesses",
	"recommendations",
	"missing_documents",
	"risk_level",
	"risk_factors",
	"recommended_visa_types",
	"eligible_countries",
	"visa_eligibility_breakdown",
	"ai_summary",
	"ai_metadata",
	"assessed_at",
	"assessment_version",
	"updated_at",
}

// Upsert writes row keyed by user_id and returns the stored record.
func (r *assessmentRepo) Upsert(dbc dbctx.Context, row *types.Assessment) (*types.Assessment, error) {
	if row == nil || row.UserID == uuid.Nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	if err := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByUserID(dbc, row.UserID)
}

func (r *assessmentRepo) DeleteByUserID(dbc dbctx.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).Where("user_id = ?", userID).Delete(&types.Assessment{}).Error
}
