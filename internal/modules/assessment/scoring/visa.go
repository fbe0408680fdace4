package scoring

import (
	"github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

type countryRule struct {
	country assessment.EligibleCountry
	when    func(s *profile.Snapshot, in Input) bool
}

var countryRules = []countryRule{
	{assessment.EligibleCountry{Code: "CA", Name: "Canada", Probability: 75}, func(s *profile.Snapshot, in Input) bool {
		return hasValidPassport(s, in) && hasBachelorOrAbove(s) && hasEnglish(s)
	}},
	{assessment.EligibleCountry{Code: "AU", Name: "Australia", Probability: 70}, func(s *profile.Snapshot, in Input) bool {
		return hasValidPassport(s, in) && len(s.WorkExperiences) >= 2 && hasEnglish(s)
	}},
	{assessment.EligibleCountry{Code: "GB", Name: "United Kingdom", Probability: 65}, func(s *profile.Snapshot, in Input) bool {
		return hasValidPassport(s, in) && hasBachelorOrAbove(s)
	}},
	{assessment.EligibleCountry{Code: "DE", Name: "Germany", Probability: 60}, func(s *profile.Snapshot, in Input) bool {
		return hasValidPassport(s, in) && hasBachelorOrAbove(s) && len(s.WorkExperiences) >= 1
	}},
	{assessment.EligibleCountry{Code: "US", Name: "United States", Probability: 55}, func(s *profile.Snapshot, in Input) bool {
		return hasValidPassport(s, in) && s.FinancialInfo.HasBankStatements()
	}},
	{assessment.EligibleCountry{Code: "MY", Name: "Malaysia", Probability: 80}, func(s *profile.Snapshot, in Input) bool {
		return hasValidPassport(s, in)
	}},
}

func EligibleCountries(in Input) []assessment.EligibleCountry {
	s := snap(in)
	out := make([]assessment.EligibleCountry, 0, len(countryRules))
	for _, r := range countryRules {
		if r.when(s, in) {
			out = append(out, r.country)
		}
	}
	return out
}

type visaTypeRule struct {
	visa assessment.VisaTypeRecommendation
	when func(s *profile.Snapshot, in Input, c CategoryScores) bool
}

var visaTypeRules = []visaTypeRule{
	{assessment.VisaTypeRecommendation{Type: "Student Visa", Suitability: 80, Reason: "Degree-level education on file"},
		func(s *profile.Snapshot, _ Input, c CategoryScores) bool {
			return hasBachelorOrAbove(s) && c.Language >= 40
		}},
	{assessment.VisaTypeRecommendation{Type: "Skilled Worker Visa", Suitability: 75, Reason: "Multiple positions and degree-level education"},
		func(s *profile.Snapshot, _ Input, _ CategoryScores) bool {
			return len(s.WorkExperiences) >= 2 && hasBachelorOrAbove(s)
		}},
	{assessment.VisaTypeRecommendation{Type: "Tourist Visa", Suitability: 70, Reason: "Valid passport and proof of funds"},
		func(s *profile.Snapshot, in Input, _ CategoryScores) bool {
			return hasValidPassport(s, in) && s.FinancialInfo.HasBankStatements()
		}},
	{assessment.VisaTypeRecommendation{Type: "Business Visa", Suitability: 65, Reason: "Work history with documented income"},
		func(s *profile.Snapshot, _ Input, _ CategoryScores) bool {
			return len(s.WorkExperiences) >= 1 && s.FinancialInfo.HasIncome()
		}},
}

func RecommendedVisaTypes(in Input, c CategoryScores) []assessment.VisaTypeRecommendation {
	s := snap(in)
	out := make([]assessment.VisaTypeRecommendation, 0, len(visaTypeRules))
	for _, r := range visaTypeRules {
		if r.when(s, in, c) {
			out = append(out, r.visa)
		}
	}
	return out
}

const (
	factorEducation = "education"
	factorWork      = "work_experience"
	factorLanguage  = "language"
	factorFinancial = "financial"
	factorPassport  = "passport"
)

// breakdownWeights are per-country factor weights; each row sums to 1.
var breakdownWeights = map[string]map[string]float64{
	"CA": {factorEducation: 0.25, factorWork: 0.20, factorLanguage: 0.30, factorFinancial: 0.10, factorPassport: 0.15},
	"AU": {factorEducation: 0.20, factorWork: 0.30, factorLanguage: 0.25, factorFinancial: 0.10, factorPassport: 0.15},
	"GB": {factorEducation: 0.25, factorWork: 0.15, factorLanguage: 0.25, factorFinancial: 0.20, factorPassport: 0.15},
	"US": {factorEducation: 0.20, factorWork: 0.20, factorLanguage: 0.15, factorFinancial: 0.30, factorPassport: 0.15},
	"DE": {factorEducation: 0.30, factorWork: 0.25, factorLanguage: 0.10, factorFinancial: 0.20, factorPassport: 0.15},
}

// BreakdownCountries is the fixed country list of the eligibility breakdown.
var BreakdownCountries = []string{"CA", "AU", "GB", "US", "DE"}

// EligibilityBreakdown scores each country as the weighted mean of the real
// factor scores.
func EligibilityBreakdown(c CategoryScores) map[string]assessment.CountryBreakdown {
	factors := map[string]float64{
		factorEducation: c.Education,
		factorWork:      c.WorkExperience,
		factorLanguage:  c.Language,
		factorFinancial: c.Financial,
		factorPassport:  c.Passport,
	}
	out := make(map[string]assessment.CountryBreakdown, len(BreakdownCountries))
	for _, code := range BreakdownCountries {
		score := 0.0
		for f, w := range breakdownWeights[code] {
			score += w * factors[f]
		}
		fs := make(map[string]float64, len(factors))
		for k, v := range factors {
			fs[k] = v
		}
		out[code] = assessment.CountryBreakdown{Score: round2(capScore(score)), Factors: fs}
	}
	return out
}
