package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungbote/visapath-backend/internal/data/repos"
	types "github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/modules/assessment/scoring"
	"github.com/yungbote/visapath-backend/internal/observability"
	"github.com/yungbote/visapath-backend/internal/platform/apierr"
	"github.com/yungbote/visapath-backend/internal/platform/dbctx"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
	"github.com/yungbote/visapath-backend/internal/platform/rediscache"
)

const DefaultAssessmentFreshness = 7 * 24 * time.Hour

type AssessmentService interface {
	// AssessProfile returns the stored assessment while it is fresh and
	// recomputes it otherwise. force always recomputes.
	AssessProfile(ctx context.Context, userID uuid.UUID, force bool) (*types.Assessment, error)
}

type AssessmentConfig struct {
	Freshness time.Duration
	Now       func() time.Time
}

type assessmentService struct {
	db          *gorm.DB
	log         *logger.Logger
	profiles    repos.ProfileRepo
	assessments repos.AssessmentRepo
	cache       rediscache.Cache
	freshness   time.Duration
	now         func() time.Time
	group       singleflight.Group
}

// NewAssessmentService builds the service. cache may be nil.
func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	profiles repos.ProfileRepo,
	assessments repos.AssessmentRepo,
	cache rediscache.Cache,
	cfg AssessmentConfig,
) AssessmentService {
	if cfg.Freshness <= 0 {
		cfg.Freshness = DefaultAssessmentFreshness
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &assessmentService{
		db:          db,
		log:         log.With("service", "AssessmentService"),
		profiles:    profiles,
		assessments: assessments,
		cache:       cache,
		freshness:   cfg.Freshness,
		now:         cfg.Now,
	}
}

func assessmentCacheKey(userID uuid.UUID) string { return "assessment:" + userID.String() }

func (s *assessmentService) AssessProfile(ctx context.Context, userID uuid.UUID, force bool) (*types.Assessment, error) {
	if userID == uuid.Nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_user_id", fmt.Errorf("user id required"))
	}
	ctx, span := observability.Tracer().Start(ctx, "AssessmentService.AssessProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID.String()), attribute.Bool("force", force))

	metrics := observability.Current()
	start := time.Now()

	if force {
		s.invalidate(ctx, userID)
	} else if cached := s.fromCache(ctx, userID); cached != nil {
		metrics.ObserveAssessment(observability.OutcomeCached, time.Since(start))
		span.SetAttributes(attribute.String("outcome", observability.OutcomeCached))
		return cached, nil
	}

	var (
		res      *types.Assessment
		computed bool
		err      error
	)
	if force {
		res, computed, err = s.assess(ctx, userID, true)
	} else {
		type result struct {
			row      *types.Assessment
			computed bool
		}
		// The shared computation outlives any single caller; each caller
		// still stops waiting when its own context ends.
		flightCtx := context.WithoutCancel(ctx)
		ch := s.group.DoChan(userID.String(), func() (interface{}, error) {
			row, computed, err := s.assess(flightCtx, userID, false)
			return result{row, computed}, err
		})
		select {
		case r := <-ch:
			if r.Err == nil {
				v := r.Val.(result)
				res, computed = v.row, v.computed
			}
			err = r.Err
		case <-ctx.Done():
			err = ctx.Err()
		}
	}
	if err != nil {
		metrics.ObserveAssessment(observability.OutcomeFailed, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var ae *apierr.Error
		if !errors.As(err, &ae) || ae.Status >= http.StatusInternalServerError {
			s.log.Error("Assessment failed", "user_id", userID, "error", err)
		}
		return nil, err
	}

	outcome := observability.OutcomeCached
	if computed {
		outcome = observability.OutcomeComputed
		s.log.Info("Assessment computed",
			"user_id", userID,
			"overall_score", res.OverallScore,
			"risk_level", res.RiskLevel,
			"duration", time.Since(start),
		)
	}
	metrics.ObserveAssessment(outcome, time.Since(start))
	span.SetAttributes(attribute.String("outcome", outcome))
	s.toCache(ctx, res)
	return res, nil
}

// assess runs in one transaction so a failed load never leaves a partial row.
func (s *assessmentService) assess(ctx context.Context, userID uuid.UUID, force bool) (*types.Assessment, bool, error) {
	now := s.now().UTC()
	metrics := observability.Current()

	var (
		out      *types.Assessment
		computed bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		existing, err := s.assessments.GetByUserID(dbc, userID)
		if err != nil {
			return fmt.Errorf("load assessment: %w", err)
		}
		if !force && existing.IsFresh(now, s.freshness) {
			metrics.AssessmentCache("db", true)
			out = existing
			return nil
		}
		metrics.AssessmentCache("db", false)

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

		row := scoring.Evaluate(scoring.Input{Snapshot: snap, Counts: counts, Now: now})
		if existing != nil {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
		}
		saved, err := s.assessments.Upsert(dbc, row)
		if err != nil {
			return fmt.Errorf("save assessment: %w", err)
		}
		out = saved
		computed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, computed, nil
}

func (s *assessmentService) fromCache(ctx context.Context, userID uuid.UUID) *types.Assessment {
	if s.cache == nil {
		return nil
	}
	var a types.Assessment
	err := s.cache.Get(ctx, assessmentCacheKey(userID), &a)
	if err != nil {
		if !errors.Is(err, rediscache.ErrCacheMiss) {
			s.log.Warn("Assessment cache read failed", "user_id", userID, "error", err)
		}
		observability.Current().AssessmentCache("redis", false)
		return nil
	}
	if !a.IsFresh(s.now().UTC(), s.freshness) {
		observability.Current().AssessmentCache("redis", false)
		return nil
	}
	observability.Current().AssessmentCache("redis", true)
	return &a
}

// toCache stores a for the rest of its freshness window.
func (s *assessmentService) toCache(ctx context.Context, a *types.Assessment) {
	if s.cache == nil || a == nil {
		return
	}
	ttl := s.freshness - s.now().UTC().Sub(a.AssessedAt)
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, assessmentCacheKey(a.UserID), a, ttl); err != nil {
		s.log.Warn("Assessment cache write failed", "user_id", a.UserID, "error", err)
	}
}

func (s *assessmentService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, assessmentCacheKey(userID)); err != nil {
		s.log.Warn("Assessment cache invalidate failed", "user_id", userID, "error", err)
	}
}
