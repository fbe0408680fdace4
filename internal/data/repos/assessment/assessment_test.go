package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/visapath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/platform/dbctx"
)

func TestAssessmentRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewAssessmentRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	userID := uuid.New()

	got, err := repo.GetByUserID(dbc, userID)
	if err != nil {
		t.Fatalf("GetByUserID (empty): %v", err)
	}
	if got != nil {
		t.Fatalf("GetByUserID (empty): expected nil")
	}

	first := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Second)
	created, err := repo.Upsert(dbc, &types.Assessment{
		UserID:            userID,
		EducationScore:    55,
		OverallScore:      40,
		RiskLevel:         types.RiskHigh,
		Strengths:         datatypes.JSONSlice[string]{"Strong international travel record"},
		Weaknesses:        datatypes.JSONSlice[string]{},
		AIMetadata:        datatypes.NewJSONType(types.AIMetadata{AlgorithmVersion: types.AlgorithmVersion, ConfidenceScore: 50}),
		AssessedAt:        first,
		AssessmentVersion: types.Version,
	})
	if err != nil {
		t.Fatalf("Upsert (create): %v", err)
	}
	if created == nil || created.ID == uuid.Nil {
		t.Fatalf("Upsert (create): expected stored row")
	}

	second := first.Add(24 * time.Hour)
	updated, err := repo.Upsert(dbc, &types.Assessment{
		UserID:            userID,
		EducationScore:    70,
		OverallScore:      66,
		RiskLevel:         types.RiskMedium,
		AssessedAt:        second,
		AssessmentVersion: types.Version,
	})
	if err != nil {
		t.Fatalf("Upsert (update): %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("Upsert (update): expected same row id %s, got %s", created.ID, updated.ID)
	}
	if updated.EducationScore != 70 || updated.RiskLevel != types.RiskMedium {
		t.Fatalf("Upsert (update): fields not replaced: %+v", updated)
	}
	if !updated.AssessedAt.Equal(second) {
		t.Fatalf("Upsert (update): assessed_at=%s want %s", updated.AssessedAt, second)
	}

	var n int64
	if err := tx.Model(&types.Assessment{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one row per user, got %d", n)
	}

	if err := repo.DeleteByUserID(dbc, userID); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	if got, _ := repo.GetByUserID(dbc, userID); got != nil {
		t.Fatalf("DeleteByUserID: row still present")
	}
}
