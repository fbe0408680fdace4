package scoring

import (
	"fmt"
	"strings"

	"github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

// insight emits a canned string when its predicate holds.
type insight struct {
	text string
	when func(Input) bool
}

func collectInsights(in Input, table []insight) []string {
	out := make([]string, 0, len(table))
	for _, it := range table {
		if it.when(in) {
			out = append(out, it.text)
		}
	}
	return out
}

func snap(in Input) *profile.Snapshot {
	if in.Snapshot == nil {
		return &profile.Snapshot{}
	}
	return in.Snapshot
}

const (
	WeaknessNoEducation = "No education history added"
	WeaknessNoWork      = "No work experience added"
	WeaknessNoLanguage  = "No Language proficiency records"
	WeaknessNoPassport  = "No Passport information provided"
	WeaknessNoFinancial = "No Financial information provided"
)

var strengthTable = []insight{
	{"Advanced degree (Masters/PhD) strengthens skilled and study routes", func(in Input) bool {
		for _, e := range snap(in).Educations {
			if e.IsAdvanced() {
				return true
			}
		}
		return false
	}},
	{"Solid work history with 3 or more positions", func(in Input) bool {
		return len(snap(in).WorkExperiences) >= 3
	}},
	{"Excellent English proficiency (IELTS 7.0+)", func(in Input) bool {
		for _, l := range snap(in).Languages {
			if l.IsEnglish() && l.Test() == profile.TestIELTS && l.TestScore >= 7.0 {
				return true
			}
		}
		return false
	}},
	{"Strong international travel record", func(in Input) bool {
		return len(snap(in).TravelHistories) >= 3
	}},
	{"Bank statements available as proof of funds", func(in Input) bool {
		return snap(in).FinancialInfo.HasBankStatements()
	}},
}

// weaknessTable reads presence through Input.Counts, which the profile repo
// resolves from loaded collections or a count query.
var weaknessTable = []insight{
	{WeaknessNoEducation, func(in Input) bool { return !in.Counts.Has(profile.SectionEducation) }},
	{WeaknessNoWork, func(in Input) bool { return !in.Counts.Has(profile.SectionWorkExperience) }},
	{WeaknessNoLanguage, func(in Input) bool { return !in.Counts.Has(profile.SectionLanguage) }},
	{WeaknessNoPassport, func(in Input) bool { return !in.Counts.Has(profile.SectionPassport) }},
	{WeaknessNoFinancial, func(in Input) bool { return !in.Counts.Has(profile.SectionFinancial) }},
}

func Strengths(in Input) []string  { return collectInsights(in, strengthTable) }
func Weaknesses(in Input) []string { return collectInsights(in, weaknessTable) }

// recommendationRule matches a weakness by substring. Matching is case
// sensitive; one weakness may match several rules.
type recommendationRule struct {
	match string
	rec   assessment.Recommendation
}

var recommendationTable = []recommendationRule{
	{"education", assessment.Recommendation{
		Priority: assessment.PriorityHigh,
		Action:   "Add your education history with certificates",
		Benefit:  "Unlocks study and skilled-worker routes",
		Route:    assessment.CategoryEducation.Route(),
	}},
	{"work experience", assessment.Recommendation{
		Priority: assessment.PriorityHigh,
		Action:   "Add your work experience",
		Benefit:  "Required for most skilled-worker and business visas",
		Route:    assessment.CategoryWorkExperience.Route(),
	}},
	{"Language", assessment.Recommendation{
		Priority: assessment.PriorityMedium,
		Action:   "Add language proficiency and test results",
		Benefit:  "English test scores are weighted heavily by CA, AU and GB",
		Route:    assessment.CategoryLanguage.Route(),
	}},
	{"Passport", assessment.Recommendation{
		Priority: assessment.PriorityUrgent,
		Action:   "Add your passport details and scans",
		Benefit:  "No visa application can start without a valid passport",
		Route:    assessment.CategoryPassport.Route(),
	}},
	{"Financial", assessment.Recommendation{
		Priority: assessment.PriorityHigh,
		Action:   "Add your financial information and bank statements",
		Benefit:  "Proof of funds is checked for nearly every visa",
		Route:    assessment.CategoryFinancial.Route(),
	}},
}

// Recommendations maps weaknesses to actions in weakness order, without dedup.
func Recommendations(weaknesses []string) []assessment.Recommendation {
	out := make([]assessment.Recommendation, 0, len(weaknesses))
	for _, w := range weaknesses {
		for _, r := range recommendationTable {
			if strings.Contains(w, r.match) {
				out = append(out, r.rec)
			}
		}
	}
	return out
}

var missingDocumentTable = []insight{
	{"Passport scans (front and back)", func(in Input) bool {
		ps := snap(in).Passports
		for _, p := range ps {
			if p.HasBothScans() {
				return false
			}
		}
		return true
	}},
	{"Education certificates", func(in Input) bool { return !anyEducationCertificate(snap(in).Educations) }},
	{"Language test certificate", func(in Input) bool { return !anyLanguageCertificate(snap(in).Languages) }},
	{"Bank statements", func(in Input) bool { return !snap(in).FinancialInfo.HasBankStatements() }},
	{"Tax returns", func(in Input) bool { return !snap(in).FinancialInfo.HasTaxReturn() }},
}

func MissingDocuments(in Input) []string { return collectInsights(in, missingDocumentTable) }

func RiskLevel(overall float64) assessment.RiskLevel {
	switch {
	case overall >= 75:
		return assessment.RiskLow
	case overall >= 50:
		return assessment.RiskMedium
	default:
		return assessment.RiskHigh
	}
}

func RiskFactors(in Input) []string {
	s := snap(in)
	var out []string
	if s.SecurityInfo != nil && s.SecurityInfo.HasCriminalRecord {
		out = append(out, "Criminal record disclosed")
	}
	if s.SecurityInfo != nil && s.SecurityInfo.HasVisaRefusal {
		out = append(out, "Previous visa refusal disclosed")
	}
	rejected := 0
	for _, t := range s.TravelHistories {
		if t.Rejected() {
			rejected++
		}
	}
	if rejected > 0 {
		out = append(out, fmt.Sprintf("%d rejected visa application(s) in travel history", rejected))
	}
	if len(s.TravelHistories) == 0 {
		out = append(out, "No international travel history")
	}
	return out
}

func confidenceRules() []rule[*profile.Snapshot] {
	return []rule[*profile.Snapshot]{
		{"personal_info", 20, func(s *profile.Snapshot) bool { return s.PersonalInfo != nil }},
		{"education", 15, func(s *profile.Snapshot) bool { return len(s.Educations) > 0 }},
		{"work_experience", 15, func(s *profile.Snapshot) bool { return len(s.WorkExperiences) > 0 }},
		{"language", 15, func(s *profile.Snapshot) bool { return len(s.Languages) > 0 }},
		{"financial", 15, func(s *profile.Snapshot) bool { return s.FinancialInfo != nil }},
		{"passport", 20, func(s *profile.Snapshot) bool { return len(s.Passports) > 0 }},
	}
}

func dataQualityRules() []rule[*profile.Snapshot] {
	return []rule[*profile.Snapshot]{
		{"phone", 10, func(s *profile.Snapshot) bool { return s.PersonalInfo != nil && present(s.PersonalInfo.Phone) }},
		{"email", 10, func(s *profile.Snapshot) bool { return s.PersonalInfo != nil && present(s.PersonalInfo.Email) }},
		{"date_of_birth", 10, func(s *profile.Snapshot) bool { return s.PersonalInfo != nil && s.PersonalInfo.DateOfBirth != nil }},
		{"passport_scans", 20, func(s *profile.Snapshot) bool {
			for _, p := range s.Passports {
				if p.HasBothScans() {
					return true
				}
			}
			return false
		}},
		{"education_certificate", 15, func(s *profile.Snapshot) bool { return anyEducationCertificate(s.Educations) }},
		{"language_certificate", 15, func(s *profile.Snapshot) bool { return anyLanguageCertificate(s.Languages) }},
		{"bank_statements", 20, func(s *profile.Snapshot) bool { return s.FinancialInfo.HasBankStatements() }},
	}
}

// ConfidenceScore and DataQualityScore are on their own scale and are not
// derived from the category scores.
func ConfidenceScore(in Input) float64 {
	return capScore(evalRules(snap(in), confidenceRules()))
}

func DataQualityScore(in Input) float64 {
	return capScore(evalRules(snap(in), dataQualityRules()))
}
