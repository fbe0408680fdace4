package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/yungbote/visapath-backend/internal/data/repos"
	types "github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/modules/assessment/suggest"
	"github.com/yungbote/visapath-backend/internal/observability"
	"github.com/yungbote/visapath-backend/internal/platform/apierr"
	"github.com/yungbote/visapath-backend/internal/platform/dbctx"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
)

const DefaultCompletedRetention = 30 * 24 * time.Hour

type SuggestionService interface {
	// GenerateForUser prunes stale rows, runs every pass and upserts the
	// drafts. It returns the drafts that were written.
	GenerateForUser(ctx context.Context, userID uuid.UUID) ([]suggest.Draft, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]*types.Suggestion, error)
	CountByPriority(ctx context.Context, userID uuid.UUID) (types.PriorityCounts, error)
	MarkCompleted(ctx context.Context, userID, id uuid.UUID) error
	Dismiss(ctx context.Context, userID, id uuid.UUID) error
	Prune(ctx context.Context, userID uuid.UUID) (int64, error)
}

type SuggestionConfig struct {
	CompletedRetention time.Duration
	Passes             []suggest.Pass
	Now                func() time.Time
}

type suggestionService struct {
	db          *gorm.DB
	log         *logger.Logger
	profiles    repos.ProfileRepo
	assessments repos.AssessmentRepo
	suggestions repos.SuggestionRepo
	retention   time.Duration
	passes      []suggest.Pass
	now         func() time.Time
}

func NewSuggestionService(
	db *gorm.DB,
	log *logger.Logger,
	profiles repos.ProfileRepo,
	assessments repos.AssessmentRepo,
	suggestions repos.SuggestionRepo,
	cfg SuggestionConfig,
) SuggestionService {
	if cfg.CompletedRetention <= 0 {
		cfg.CompletedRetention = DefaultCompletedRetention
	}
	if cfg.Passes == nil {
		cfg.Passes = suggest.DefaultPasses
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &suggestionService{
		db:          db,
		log:         log.With("service", "SuggestionService"),
		profiles:    profiles,
		assessments: assessments,
		suggestions: suggestions,
		retention:   cfg.CompletedRetention,
		passes:      cfg.Passes,
		now:         cfg.Now,
	}
}

func requireUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apierr.New(http.StatusBadRequest, "invalid_user_id", fmt.Errorf("user id required"))
	}
	return nil
}

func (s *suggestionService) GenerateForUser(ctx context.Context, userID uuid.UUID) ([]suggest.Draft, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	ctx, span := observability.Tracer().Start(ctx, "SuggestionService.GenerateForUser")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID.String()))

	// One clock reading for prune, expiry and insert.
	now := s.now().UTC()
	metrics := observability.Current()

	var (
		written []suggest.Draft
		pruned  int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		snap, err := s.profiles.LoadSnapshot(dbc, userID)
		if err != nil {
			return err
		}
		if snap == nil {
			return apierr.New(http.StatusNotFound, "user_not_found", fmt.Errorf("user %s not found", userID))
		}
		counts, err := s.profiles.SectionCounts(dbc, snap, userID)
		if err != nil {
			return fmt.Errorf("count profile sections: %w", err)
		}
		latest, err := s.assessments.GetByUserID(dbc, userID)
		if err != nil {
			return fmt.Errorf("load assessment: %w", err)
		}

		res := suggest.Generate(suggest.Input{
			Snapshot:   snap,
			Counts:     counts,
			Assessment: latest,
			Now:        now,
		}, s.passes)
		for _, f := range res.Failures {
			metrics.SuggestionPassFailed(f.Pass)
			s.log.Error("Suggestion pass failed", "user_id", userID, "pass", f.Pass, "error", f.Err, "stack", f.Stack)
		}

		pruned, err = s.suggestions.PruneStale(dbc, userID, now, s.retention)
		if err != nil {
			return err
		}

		drafts := dedupeDrafts(res.Drafts)
		rows := make([]*types.Suggestion, 0, len(drafts))
		for _, d := range drafts {
			row, err := d.ToSuggestion(userID, now)
			if err != nil {
				s.log.Warn("Dropping invalid suggestion draft", "user_id", userID, "title", d.Title, "error", err)
				continue
			}
			rows = append(rows, row)
			written = append(written, d)
		}
		return s.suggestions.UpsertMany(dbc, rows, now)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics.SuggestionsPruned(pruned)
	byType := map[string]int{}
	for _, d := range written {
		byType[d.Type]++
	}
	for t, n := range byType {
		metrics.SuggestionsGenerated(t, n)
	}
	span.SetAttributes(attribute.Int("suggestions.written", len(written)), attribute.Int64("suggestions.pruned", pruned))
	s.log.Info("Suggestions generated", "user_id", userID, "written", len(written), "pruned", pruned)
	if written == nil {
		written = []suggest.Draft{}
	}
	return written, nil
}

// dedupeDrafts keeps the first draft per (type, title). A single INSERT ...
// ON CONFLICT cannot touch the same row twice.
func dedupeDrafts(in []suggest.Draft) []suggest.Draft {
	seen := make(map[string]struct{}, len(in))
	out := make([]suggest.Draft, 0, len(in))
	for _, d := range in {
		key := d.Type + "\x00" + d.Title
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}

func (s *suggestionService) ListActive(ctx context.Context, userID uuid.UUID) ([]*types.Suggestion, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.suggestions.ListActive(dbctx.Context{Ctx: ctx}, userID, s.now().UTC())
}

func (s *suggestionService) CountByPriority(ctx context.Context, userID uuid.UUID) (types.PriorityCounts, error) {
	if err := requireUser(userID); err != nil {
		return types.PriorityCounts{}, err
	}
	return s.suggestions.CountActiveByPriority(dbctx.Context{Ctx: ctx}, userID, s.now().UTC())
}

func (s *suggestionService) MarkCompleted(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	found, err := s.suggestions.MarkCompleted(dbctx.Context{Ctx: ctx}, userID, id, s.now().UTC())
	if err != nil {
		return err
	}
	if !found {
		return suggestionNotFound(id)
	}
	return nil
}

func (s *suggestionService) Dismiss(ctx context.Context, userID, id uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	found, err := s.suggestions.Dismiss(dbctx.Context{Ctx: ctx}, userID, id, s.now().UTC())
	if err != nil {
		return err
	}
	if !found {
		return suggestionNotFound(id)
	}
	return nil
}

func (s *suggestionService) Prune(ctx context.Context, userID uuid.UUID) (int64, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	n, err := s.suggestions.PruneStale(dbctx.Context{Ctx: ctx}, userID, s.now().UTC(), s.retention)
	if err != nil {
		return 0, err
	}
	observability.Current().SuggestionsPruned(n)
	return n, nil
}

func suggestionNotFound(id uuid.UUID) error {
	return apierr.New(http.StatusNotFound, "suggestion_not_found", fmt.Errorf("suggestion %s not found", id))
}
