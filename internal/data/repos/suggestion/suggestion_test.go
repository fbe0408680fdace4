package suggestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/visapath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/platform/dbctx"
)

func newSuggestion(userID uuid.UUID, title string, p types.Priority, relevance int) *types.Suggestion {
	return &types.Suggestion{
		UserID:         userID,
		SuggestionType: types.TypeProfileCompletion,
		Title:          title,
		Category:       types.CategoryProfile,
		Priority:       p,
		RelevanceScore: relevance,
	}
}

func TestSuggestionRepoUpsertDedupesOnKey(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewSuggestionRepo(db, testutil.Logger(t))
	userID := uuid.New()
	now := time.Now().UTC()

	if err := repo.UpsertMany(dbc, []*types.Suggestion{
		newSuggestion(userID, "Add Work Experience", types.PriorityMedium, 80),
	}, now); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}
	list, err := repo.ListActive(dbc, userID, now)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListActive: len=%d err=%v", len(list), err)
	}
	if ok, err := repo.Dismiss(dbc, userID, list[0].ID, now); err != nil || !ok {
		t.Fatalf("Dismiss: ok=%v err=%v", ok, err)
	}

	again := newSuggestion(userID, "Add Work Experience", types.PriorityHigh, 85)
	if err := repo.UpsertMany(dbc, []*types.Suggestion{again}, now); err != nil {
		t.Fatalf("UpsertMany (again): %v", err)
	}

	var rows []types.Suggestion
	if err := tx.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row per key, got %d", len(rows))
	}
	if rows[0].Priority != types.PriorityHigh || rows[0].RelevanceScore != 85 {
		t.Fatalf("draft fields not refreshed: %+v", rows[0])
	}
	if !rows[0].IsDismissed {
		t.Fatalf("regeneration must keep the dismissed flag")
	}
}

func TestSuggestionRepoRejectsInvalidEnums(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewSuggestionRepo(db, testutil.Logger(t))

	bad := newSuggestion(uuid.New(), "Whatever", "critical", 10)
	if err := repo.UpsertMany(dbc, []*types.Suggestion{bad}, time.Now()); !errors.Is(err, types.ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestSuggestionRepoListActiveOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewSuggestionRepo(db, testutil.Logger(t))
	userID := uuid.New()
	now := time.Now().UTC()

	if err := repo.UpsertMany(dbc, []*types.Suggestion{
		newSuggestion(userID, "low", types.PriorityLow, 99),
		newSuggestion(userID, "urgent", types.PriorityUrgent, 10),
		newSuggestion(userID, "medium", types.PriorityMedium, 50),
		newSuggestion(userID, "high-a", types.PriorityHigh, 60),
		newSuggestion(userID, "high-b", types.PriorityHigh, 90),
	}, now); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}

	list, err := repo.ListActive(dbc, userID, now)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	want := []string{"urgent", "high-b", "high-a", "medium", "low"}
	if len(list) != len(want) {
		t.Fatalf("ListActive: expected %d rows, got %d", len(want), len(list))
	}
	for i, s := range list {
		if s.Title != want[i] {
			t.Fatalf("ListActive[%d]=%q want %q", i, s.Title, want[i])
		}
	}

	counts, err := repo.CountActiveByPriority(dbc, userID, now)
	if err != nil {
		t.Fatalf("CountActiveByPriority: %v", err)
	}
	if counts != (types.PriorityCounts{Urgent: 1, High: 2, Medium: 1, Low: 1, Total: 5}) {
		t.Fatalf("CountActiveByPriority: %+v", counts)
	}
}

func TestSuggestionRepoPruneStale(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewSuggestionRepo(db, testutil.Logger(t))
	userID := uuid.New()
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)
	longAgo := now.Add(-45 * 24 * time.Hour)
	recently := now.Add(-3 * 24 * time.Hour)

	expired := newSuggestion(userID, "expired", types.PriorityHigh, 50)
	expired.ExpiresAt = &yesterday
	live := newSuggestion(userID, "live", types.PriorityHigh, 50)
	live.ExpiresAt = &nextWeek
	oldDone := newSuggestion(userID, "old-done", types.PriorityLow, 50)
	oldDone.IsCompleted, oldDone.CompletedAt = true, &longAgo
	newDone := newSuggestion(userID, "new-done", types.PriorityLow, 50)
	newDone.IsCompleted, newDone.CompletedAt = true, &recently

	if err := repo.UpsertMany(dbc, []*types.Suggestion{expired, live, oldDone, newDone}, now); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}

	active, err := repo.ListActive(dbc, userID, now)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].Title != "live" {
		t.Fatalf("ListActive: expected only live, got %d rows", len(active))
	}

	pruned, err := repo.PruneStale(dbc, userID, now, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("PruneStale: %v", err)
	}
	if pruned != 2 {
		t.Fatalf("PruneStale: expected 2 rows, got %d", pruned)
	}

	var left []string
	if err := tx.Model(&types.Suggestion{}).Where("user_id = ?", userID).Order("title").Pluck("title", &left).Error; err != nil {
		t.Fatalf("pluck: %v", err)
	}
	if len(left) != 2 || left[0] != "live" || left[1] != "new-done" {
		t.Fatalf("PruneStale: unexpected survivors %v", left)
	}
}

func TestSuggestionRepoLifecycleIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewSuggestionRepo(db, testutil.Logger(t))
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	if err := repo.UpsertMany(dbc, []*types.Suggestion{
		newSuggestion(userID, "complete-me", types.PriorityHigh, 80),
	}, now); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}
	list, _ := repo.ListActive(dbc, userID, now)
	if len(list) != 1 {
		t.Fatalf("expected one active suggestion")
	}
	id := list[0].ID

	for i := 0; i < 2; i++ {
		ok, err := repo.MarkCompleted(dbc, userID, id, now.Add(time.Duration(i)*time.Hour))
		if err != nil || !ok {
			t.Fatalf("MarkCompleted #%d: ok=%v err=%v", i, ok, err)
		}
	}
	got, err := repo.GetByID(dbc, userID, id)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsCompleted || got.CompletedAt == nil || !got.CompletedAt.Equal(now) {
		t.Fatalf("MarkCompleted: expected first completed_at to stick, got %+v", got.CompletedAt)
	}

	if ok, err := repo.Dismiss(dbc, userID, id, now); err != nil || !ok {
		t.Fatalf("Dismiss: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.Dismiss(dbc, userID, id, now); err != nil || !ok {
		t.Fatalf("Dismiss (again): ok=%v err=%v", ok, err)
	}

	if ok, err := repo.MarkCompleted(dbc, uuid.New(), id, now); err != nil || ok {
		t.Fatalf("MarkCompleted (other user): ok=%v err=%v", ok, err)
	}
	if ok, err := repo.Dismiss(dbc, userID, uuid.New(), now); err != nil || ok {
		t.Fatalf("Dismiss (missing): ok=%v err=%v", ok, err)
	}
}

func TestSuggestionRepoUpsertStampsGivenTime(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewSuggestionRepo(db, testutil.Logger(t))
	userID := uuid.New()
	first := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	if err := repo.UpsertMany(dbc, []*types.Suggestion{
		newSuggestion(userID, "Add Work Experience", types.PriorityMedium, 80),
	}, first); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}
	if err := repo.UpsertMany(dbc, []*types.Suggestion{
		newSuggestion(userID, "Add Work Experience", types.PriorityHigh, 80),
	}, second); err != nil {
		t.Fatalf("UpsertMany (again): %v", err)
	}

	var row types.Suggestion
	if err := tx.Where("user_id = ?", userID).First(&row).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if !row.CreatedAt.Equal(first) {
		t.Fatalf("created_at: want %v, got %v", first, row.CreatedAt)
	}
	if !row.UpdatedAt.Equal(second) {
		t.Fatalf("updated_at: want %v, got %v", second, row.UpdatedAt)
	}
}
