package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/visapath-backend/internal/data/repos"
	"github.com/yungbote/visapath-backend/internal/data/repos/assessment"
	"github.com/yungbote/visapath-backend/internal/data/repos/profile"
	"github.com/yungbote/visapath-backend/internal/data/repos/suggestion"
	"github.com/yungbote/visapath-backend/internal/data/repos/testutil"
	types "github.com/yungbote/visapath-backend/internal/domain/assessment"
	profiletypes "github.com/yungbote/visapath-backend/internal/domain/profile"
	"github.com/yungbote/visapath-backend/internal/platform/dbctx"
	"github.com/yungbote/visapath-backend/internal/platform/apierr"
	"github.com/yungbote/visapath-backend/internal/platform/rediscache"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	tx          *gorm.DB
	clock       *clock
	profiles    repos.ProfileRepo
	assessments repos.AssessmentRepo
	suggestions repos.SuggestionRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	return &fixture{
		tx:          tx,
		clock:       &clock{t: testNow},
		profiles:    profile.NewProfileRepo(tx, log),
		assessments: assessment.NewAssessmentRepo(tx, log),
		suggestions: suggestion.NewSuggestionRepo(tx, log),
	}
}

func (f *fixture) assessmentService(t *testing.T, cache rediscache.Cache) AssessmentService {
	return NewAssessmentService(f.tx, testutil.Logger(t), f.profiles, f.assessments, cache, AssessmentConfig{Now: f.clock.Now})
}

func (f *fixture) suggestionService(t *testing.T, cfg SuggestionConfig) SuggestionService {
	cfg.Now = f.clock.Now
	return NewSuggestionService(f.tx, testutil.Logger(t), f.profiles, f.assessments, f.suggestions, cfg)
}

func (f *fixture) seedUser(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	return testutil.SeedUser(t, context.Background(), f.tx, id.String()+"@example.com").ID
}

func wantStatus(t *testing.T, err error, status int) {
	t.Helper()
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr, got %v", err)
	}
	if ae.Status != status {
		t.Fatalf("status: want %d, got %d (%v)", status, ae.Status, err)
	}
}

// memCache is an in-process rediscache.Cache with the same JSON round trip.
type memCache struct {
	mu    sync.Mutex
	items map[string][]byte
	ttls  map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memCache) Get(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return rediscache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
		delete(m.ttls, k)
	}
	return nil
}

func (m *memCache) Ping(context.Context) error { return nil }

// stubProfiles wraps a real ProfileRepo. LoadSnapshot can be held on a gate
// and SectionCounts can be made to fail.
type stubProfiles struct {
	repos.ProfileRepo
	countsErr error
	entered   chan struct{}
	release   chan struct{}
	once      sync.Once
	loads     atomic.Int32
}

func (s *stubProfiles) LoadSnapshot(dbc dbctx.Context, userID uuid.UUID) (*profiletypes.Snapshot, error) {
	s.loads.Add(1)
	if s.entered != nil {
		s.once.Do(func() { close(s.entered) })
	}
	if s.release != nil {
		<-s.release
	}
	return s.ProfileRepo.LoadSnapshot(dbc, userID)
}

func (s *stubProfiles) SectionCounts(dbc dbctx.Context, snap *profiletypes.Snapshot, userID uuid.UUID) (profiletypes.SectionCounts, error) {
	if s.countsErr != nil {
		return nil, s.countsErr
	}
	return s.ProfileRepo.SectionCounts(dbc, snap, userID)
}

// stubAssessments wraps a real AssessmentRepo. With upsertErr set, Upsert
// writes the row and then fails.
type stubAssessments struct {
	repos.AssessmentRepo
	upsertErr error
	upserts   atomic.Int32
}

func (s *stubAssessments) Upsert(dbc dbctx.Context, row *types.Assessment) (*types.Assessment, error) {
	s.upserts.Add(1)
	saved, err := s.AssessmentRepo.Upsert(dbc, row)
	if err != nil {
		return nil, err
	}
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	return saved, nil
}

func (f *fixture) stubbedAssessmentService(t *testing.T, p *stubProfiles, a *stubAssessments) AssessmentService {
	return NewAssessmentService(f.tx, testutil.Logger(t), p, a, nil, AssessmentConfig{Now: f.clock.Now})
}
