package scoring

import (
	"fmt"
	"strings"

	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

func ReadinessLabel(overall float64) string {
	switch {
	case overall >= 80:
		return "excellent"
	case overall >= 60:
		return "good"
	case overall >= 40:
		return "moderate"
	default:
		return "early-stage"
	}
}

func article(word string) string {
	if word != "" && strings.ContainsRune("aeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func displayName(s *profile.Snapshot) string {
	if s != nil && s.PersonalInfo != nil && strings.TrimSpace(s.PersonalInfo.FullName) != "" {
		return strings.TrimSpace(s.PersonalInfo.FullName)
	}
	if s != nil {
		if name := strings.TrimSpace(s.User.FullName()); name != "" {
			return name
		}
	}
	return "This applicant"
}

// Summary renders the narrative from the overall label and the first two
// strengths and weaknesses.
func Summary(s *profile.Snapshot, overall float64, strengths, weaknesses []string) string {
	var b strings.Builder
	label := ReadinessLabel(overall)
	fmt.Fprintf(&b, "%s has %s %s profile for international visa applications (overall score %.1f/100).",
		displayName(s), article(label), label, overall)
	if st := firstN(strengths, 2); len(st) > 0 {
		fmt.Fprintf(&b, " Key strengths: %s.", strings.Join(st, "; "))
	}
	if wk := firstN(weaknesses, 2); len(wk) > 0 {
		fmt.Fprintf(&b, " Areas to improve: %s.", strings.Join(wk, "; "))
	}
	return b.String()
}
