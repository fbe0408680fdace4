package suggest

import (
	"fmt"
	"strings"

	"github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

const (
	PassProfileCompletion = "profile_completion"
	PassDocuments         = "documents"
	PassVisa              = "visa_recommendation"
	PassRiskMitigation    = "risk_mitigation"
	PassNextStep          = "next_step"
)

// Pass is one independent suggestion rule set.
type Pass struct {
	Name string
	Run  func(Input) []Draft
}

// DefaultPasses run in this order; output order follows it.
var DefaultPasses = []Pass{
	{PassProfileCompletion, profileCompletion},
	{PassDocuments, documents},
	{PassVisa, visaRecommendations},
	{PassRiskMitigation, riskMitigation},
	{PassNextStep, nextSteps},
}

type sectionGap struct {
	missing func(Input) bool
	draft   Draft
}

var profileGaps = []sectionGap{
	{func(in Input) bool { return !in.Counts.Has(profile.SectionPassport) }, Draft{
		Title:          "Add Your Passport Information",
		Description:    "A valid passport is required before any visa application can start.",
		Priority:       assessment.PriorityHigh,
		RelevanceScore: 95,
		ActionURL:      "/profile/passport",
		ExpiresIn:      30 * day,
	}},
	{func(in Input) bool { return !in.Counts.Has(profile.SectionEducation) }, Draft{
		Title:          "Add Your Education History",
		Description:    "Education records unlock student and skilled visa routes.",
		Priority:       assessment.PriorityHigh,
		RelevanceScore: 90,
		ActionURL:      "/profile/education",
		ExpiresIn:      60 * day,
	}},
	{func(in Input) bool { return !in.Counts.Has(profile.SectionWorkExperience) }, Draft{
		Title:          "Add Work Experience",
		Description:    "Work history is weighed by most skilled-worker programs.",
		Priority:       assessment.PriorityMedium,
		RelevanceScore: 80,
		ActionURL:      "/profile/work-experience",
		ExpiresIn:      60 * day,
	}},
	{func(in Input) bool {
		return in.Snapshot == nil || !in.Snapshot.FinancialInfo.HasIncome()
	}, Draft{
		Title:          "Complete Your Financial Information",
		Description:    "Declare your monthly income so embassies can assess proof of funds.",
		Priority:       assessment.PriorityMedium,
		RelevanceScore: 75,
		ActionURL:      "/profile/financial",
		ExpiresIn:      90 * day,
	}},
	{func(in Input) bool { return !in.Counts.Has(profile.SectionLanguage) }, Draft{
		Title:          "Add Language Proficiency",
		Description:    "Language test scores carry heavy weight for English-speaking destinations.",
		Priority:       assessment.PriorityHigh,
		RelevanceScore: 85,
		ActionURL:      "/profile/languages",
		ExpiresIn:      60 * day,
	}},
}

func profileCompletion(in Input) []Draft {
	var out []Draft
	for _, g := range profileGaps {
		if !g.missing(in) {
			continue
		}
		d := g.draft
		d.Type = assessment.TypeProfileCompletion
		d.Category = assessment.CategoryProfile
		d.ActionType = "navigate"
		out = append(out, d)
	}
	return out
}

// passportLabel names a passport in a title. A passport without a number
// falls back to its id prefix so titles stay unique per passport.
func passportLabel(p profile.Passport) string {
	if n := strings.TrimSpace(p.PassportNumber); n != "" {
		return n
	}
	return p.ID.String()[:8]
}

func documents(in Input) []Draft {
	var out []Draft
	if in.Snapshot != nil {
		for _, p := range in.Snapshot.Passports {
			if p.FrontScanPath != "" {
				continue
			}
			out = append(out, Draft{
				Type:           assessment.TypeDocumentUpload,
				Title:          fmt.Sprintf("Upload Passport Scan (%s)", passportLabel(p)),
				Description:    "Upload the front page of your passport.",
				Category:       assessment.CategoryDocument,
				Priority:       assessment.PriorityHigh,
				RelevanceScore: 90,
				ActionType:     "upload",
				ActionURL:      "/profile/passport",
				Data:           map[string]any{"passport_id": p.ID.String()},
				ExpiresIn:      30 * day,
			})
		}
	}
	if !in.Counts.Has(profile.SectionCV) {
		out = append(out, Draft{
			Type:           assessment.TypeDocumentUpload,
			Title:          "Create Your CV",
			Description:    "A CV is requested by most employers and work visa programs.",
			Category:       assessment.CategoryDocument,
			Priority:       assessment.PriorityMedium,
			RelevanceScore: 70,
			ActionType:     "navigate",
			ActionURL:      "/cv/builder",
			ExpiresIn:      60 * day,
		})
	}
	return out
}

const visaSuggestThreshold = 70.0

type visaCandidate struct {
	country     string
	code        string
	visaType    string
	eligibility func(Input) (float64, bool)
}

var visaCandidates = []visaCandidate{
	{"Canada", "CA", "Student", func(in Input) (float64, bool) {
		s := in.Assessment.EducationScore
		return s, s >= 70
	}},
	{"Australia", "AU", "Skilled", func(in Input) (float64, bool) {
		s := in.Assessment.WorkExperienceScore
		return s, s >= 70 && in.Counts[profile.SectionWorkExperience] >= 2
	}},
	{"UK", "GB", "Tourist", func(in Input) (float64, bool) {
		s := in.Assessment.FinancialScore
		return s, s >= 70
	}},
	{"US", "US", "Family", func(in Input) (float64, bool) {
		return 75, in.Counts.Has(profile.SectionFamily)
	}},
}

func visaRecommendations(in Input) []Draft {
	if in.Assessment == nil {
		return []Draft{{
			Type:           assessment.TypeAssessment,
			Title:          "Complete Your Profile Assessment",
			Description:    "Get scored to see which countries and visa types fit your profile.",
			Category:       assessment.CategoryAssessment,
			Priority:       assessment.PriorityUrgent,
			RelevanceScore: 100,
			ActionType:     "navigate",
			ActionURL:      "/assessment",
			ExpiresIn:      7 * day,
		}}
	}
	var out []Draft
	for _, c := range visaCandidates {
		eligibility, ok := c.eligibility(in)
		if !ok || eligibility < visaSuggestThreshold {
			continue
		}
		priority := assessment.PriorityMedium
		if eligibility >= 85 {
			priority = assessment.PriorityHigh
		}
		out = append(out, Draft{
			Type:           assessment.TypeVisaRecommendation,
			Title:          fmt.Sprintf("Consider %s %s Visa", c.country, c.visaType),
			Description:    fmt.Sprintf("Your profile scores %.0f/100 for a %s %s visa.", eligibility, c.country, c.visaType),
			Category:       assessment.CategoryVisa,
			Priority:       priority,
			RelevanceScore: clampRelevance(eligibility),
			ActionType:     "navigate",
			ActionURL:      "/visa/" + c.code,
			Data: map[string]any{
				"country":     c.code,
				"visa_type":   c.visaType,
				"eligibility": eligibility,
			},
			ExpiresIn: 30 * day,
		})
	}
	return out
}

const riskThreshold = 60.0

func riskMitigation(in Input) []Draft {
	a := in.Assessment
	if a == nil {
		return nil
	}
	var out []Draft
	if a.RiskLevel == assessment.RiskHigh {
		scores := a.CategoryScores()
		for _, cat := range assessment.ScoreCategories {
			score := scores[cat]
			if score >= riskThreshold {
				continue
			}
			out = append(out, Draft{
				Type:           assessment.TypeRiskMitigation,
				Title:          "Improve Your " + cat.Label(),
				Description:    fmt.Sprintf("Your %s score is %.0f/100, which raises your overall risk.", cat.Label(), score),
				Category:       assessment.CategoryProfile,
				Priority:       assessment.PriorityUrgent,
				RelevanceScore: clampRelevance(100 - score),
				ActionType:     "navigate",
				ActionURL:      cat.Route(),
				Data:           map[string]any{"category": string(cat), "score": score},
				ExpiresIn:      14 * day,
			})
		}
	}
	if a.DocumentReadiness < riskThreshold {
		out = append(out, Draft{
			Type:           assessment.TypeRiskMitigation,
			Title:          "Complete Your Documents",
			Description:    fmt.Sprintf("Document readiness is %.0f%%. Upload the missing documents.", a.DocumentReadiness),
			Category:       assessment.CategoryDocument,
			Priority:       assessment.PriorityHigh,
			RelevanceScore: clampRelevance(100 - a.DocumentReadiness),
			ActionType:     "navigate",
			ActionURL:      "/documents",
			Data:           map[string]any{"missing_documents": []string(a.MissingDocuments)},
			ExpiresIn:      14 * day,
		})
	}
	return out
}

type nextStep struct {
	when  func(profile.SectionCounts) bool
	draft Draft
}

var nextStepRules = []nextStep{
	{func(c profile.SectionCounts) bool {
		return c.Has(profile.SectionPassport) && !c.Has(profile.SectionVisaApp)
	}, Draft{
		Title:          "Start Your Visa Application",
		Description:    "Your passport is on file. Start an application for your target country.",
		Priority:       assessment.PriorityHigh,
		RelevanceScore: 80,
		ActionURL:      "/visa/applications/new",
		ExpiresIn:      30 * day,
	}},
	{func(c profile.SectionCounts) bool {
		return c.Has(profile.SectionWorkExperience) && !c.Has(profile.SectionJobApp)
	}, Draft{
		Title:          "Browse Job Opportunities",
		Description:    "Find overseas roles that match your experience.",
		Priority:       assessment.PriorityMedium,
		RelevanceScore: 70,
		ActionURL:      "/jobs",
		ExpiresIn:      30 * day,
	}},
	{func(c profile.SectionCounts) bool {
		return c.Has(profile.SectionVisaApp) && !c.Has(profile.SectionInsurance)
	}, Draft{
		Title:          "Get Travel Insurance",
		Description:    "Most visa applications require travel insurance.",
		Priority:       assessment.PriorityMedium,
		RelevanceScore: 65,
		ActionURL:      "/insurance",
		ExpiresIn:      30 * day,
	}},
}

func nextSteps(in Input) []Draft {
	var out []Draft
	for _, r := range nextStepRules {
		if !r.when(in.Counts) {
			continue
		}
		d := r.draft
		d.Type = assessment.TypeNextStep
		d.Category = assessment.CategoryApplication
		d.ActionType = "navigate"
		out = append(out, d)
	}
	return out
}

func clampRelevance(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}
