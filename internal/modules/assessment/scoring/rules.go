// Package scoring turns a profile snapshot into category scores, composite
// metrics and qualitative insights. Every function here is pure: callers load
// data, pick "now", and persist the result.
package scoring

import (
	"math"
	"time"

	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

const maxScore = 100.0

// Input is everything a scorer may look at.
type Input struct {
	Snapshot *profile.Snapshot
	Counts   profile.SectionCounts
	Now      time.Time
}

// rule grants points when its predicate holds.
type rule[T any] struct {
	name   string
	points float64
	when   func(T) bool
}

// tier is one rung of a first-match ladder.
type tier[T any] struct {
	name   string
	points float64
	when   func(T) bool
}

func evalRules[T any](subject T, rules []rule[T]) float64 {
	total := 0.0
	for _, r := range rules {
		if r.when(subject) {
			total += r.points
		}
	}
	return total
}

// evalEach applies rules to every record and sums the grants.
func evalEach[T any](records []T, rules []rule[T]) float64 {
	total := 0.0
	for _, rec := range records {
		total += evalRules(rec, rules)
	}
	return total
}

// firstTier returns the points of the first matching tier, or 0.
func firstTier[T any](subject T, tiers []tier[T]) float64 {
	for _, t := range tiers {
		if t.when(subject) {
			return t.points
		}
	}
	return 0
}

func capScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Min(v, maxScore)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func present(s string) bool { return s != "" }

// sixMonthsFrom is the validity cutoff used by passport rules.
func sixMonthsFrom(now time.Time) time.Time { return now.AddDate(0, 6, 0) }
