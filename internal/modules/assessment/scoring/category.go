package scoring

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

// CategoryScores holds the seven 0-100 category scores.
type CategoryScores struct {
	PersonalInfo   float64 `json:"personal_info"`
	Education      float64 `json:"education"`
	WorkExperience float64 `json:"work_experience"`
	Language       float64 `json:"language_proficiency"`
	Financial      float64 `json:"financial"`
	TravelHistory  float64 `json:"travel_history"`
	Passport       float64 `json:"passport"`
}

func (c CategoryScores) Values() []float64 {
	return []float64{c.PersonalInfo, c.Education, c.WorkExperience, c.Language, c.Financial, c.TravelHistory, c.Passport}
}

// ScoreCategories runs all seven scorers; none depends on another.
func ScoreCategories(in Input) CategoryScores {
	return CategoryScores{
		PersonalInfo:   PersonalInfoScore(in),
		Education:      EducationScore(in),
		WorkExperience: WorkExperienceScore(in),
		Language:       LanguageScore(in),
		Financial:      FinancialScore(in),
		TravelHistory:  TravelHistoryScore(in),
		Passport:       PassportScore(in),
	}
}

var personalInfoRules = []rule[*profile.PersonalInfo]{
	{"full_name", 10, func(p *profile.PersonalInfo) bool { return present(p.FullName) }},
	{"phone", 10, func(p *profile.PersonalInfo) bool { return present(p.Phone) }},
	{"email", 10, func(p *profile.PersonalInfo) bool { return present(p.Email) }},
	{"date_of_birth", 10, func(p *profile.PersonalInfo) bool { return p.DateOfBirth != nil }},
	{"gender", 10, func(p *profile.PersonalInfo) bool { return present(p.Gender) }},
	{"nationality", 10, func(p *profile.PersonalInfo) bool { return present(p.Nationality) }},

	{"present_address", 5, func(p *profile.PersonalInfo) bool { return present(p.PresentAddress) }},
	{"permanent_address", 5, func(p *profile.PersonalInfo) bool { return present(p.PermanentAddress) }},
	{"city", 5, func(p *profile.PersonalInfo) bool { return present(p.City) }},
	{"country", 5, func(p *profile.PersonalInfo) bool { return present(p.Country) }},

	{"nid_number", 5, func(p *profile.PersonalInfo) bool { return present(p.NIDNumber) }},
	{"father_name", 5, func(p *profile.PersonalInfo) bool { return present(p.FatherName) }},
	{"mother_name", 5, func(p *profile.PersonalInfo) bool { return present(p.MotherName) }},
	{"marital_status", 5, func(p *profile.PersonalInfo) bool { return present(p.MaritalStatus) }},
}

func PersonalInfoScore(in Input) float64 {
	if in.Snapshot == nil || in.Snapshot.PersonalInfo == nil {
		return 0
	}
	return capScore(evalRules(in.Snapshot.PersonalInfo, personalInfoRules))
}

var educationRecordRules = []rule[profile.Education]{
	{"certificate", 10, func(e profile.Education) bool { return present(e.CertificatePath) }},
	{"gpa", 5, func(e profile.Education) bool { return e.GPA != nil && *e.GPA > 0 }},
	{"advanced_degree", 15, func(e profile.Education) bool { return e.IsAdvanced() }},
}

func EducationScore(in Input) float64 {
	if in.Snapshot == nil || len(in.Snapshot.Educations) == 0 {
		return 0
	}
	return capScore(40 + evalEach(in.Snapshot.Educations, educationRecordRules))
}

var experienceTiers = []tier[int]{
	{"five_years", 30, func(m int) bool { return m >= 60 }},
	{"three_years", 20, func(m int) bool { return m >= 36 }},
	{"one_year", 10, func(m int) bool { return m >= 12 }},
}

var workRecordRules = []rule[profile.WorkExperience]{
	{"described", 5, func(w profile.WorkExperience) bool {
		return present(strings.TrimSpace(w.Description)) && present(strings.TrimSpace(w.CompanyName))
	}},
}

// TotalExperienceMonths sums months across records. Overlapping ranges are
// counted once per record.
func TotalExperienceMonths(records []profile.WorkExperience, now time.Time) int {
	total := 0
	for _, w := range records {
		total += w.Months(now)
	}
	return total
}

func WorkExperienceScore(in Input) float64 {
	if in.Snapshot == nil || len(in.Snapshot.WorkExperiences) == 0 {
		return 0
	}
	months := TotalExperienceMonths(in.Snapshot.WorkExperiences, in.Now)
	return capScore(30 + firstTier(months, experienceTiers) + evalEach(in.Snapshot.WorkExperiences, workRecordRules))
}

func hasTestScore(l profile.Language) bool { return present(l.Test()) && l.TestScore > 0 }

var englishTiers = []tier[profile.Language]{
	{"ielts_7", 40, func(l profile.Language) bool { return l.Test() == profile.TestIELTS && l.TestScore >= 7.0 }},
	{"ielts_6", 30, func(l profile.Language) bool { return l.Test() == profile.TestIELTS && l.TestScore >= 6.0 }},
	{"ielts_any", 20, func(l profile.Language) bool { return l.Test() == profile.TestIELTS && l.TestScore > 0 }},
	{"toefl_100", 30, func(l profile.Language) bool { return l.Test() == profile.TestTOEFL && l.TestScore >= 100 }},
	{"toefl_any", 20, func(l profile.Language) bool { return l.Test() == profile.TestTOEFL && l.TestScore > 0 }},
	{"self_fluent", 20, func(l profile.Language) bool { return !hasTestScore(l) && l.IsFluent() }},
	{"self_intermediate", 10, func(l profile.Language) bool {
		return !hasTestScore(l) && l.Level() == profile.ProficiencyIntermediate
	}},
}

var otherLanguageTiers = []tier[profile.Language]{
	{"fluent", 15, func(l profile.Language) bool { return l.IsFluent() }},
	{"intermediate", 10, func(l profile.Language) bool { return l.Level() == profile.ProficiencyIntermediate }},
}

func LanguageScore(in Input) float64 {
	if in.Snapshot == nil || len(in.Snapshot.Languages) == 0 {
		return 0
	}
	total := 20.0
	for _, l := range in.Snapshot.Languages {
		if l.IsEnglish() {
			total += firstTier(l, englishTiers)
		} else {
			total += firstTier(l, otherLanguageTiers)
		}
	}
	return capScore(total)
}

var (
	incomeHigh = decimal.NewFromInt(100000)
	incomeMid  = decimal.NewFromInt(50000)
)

var financialRules = []rule[*profile.FinancialInfo]{
	{"bank_statements", 20, func(f *profile.FinancialInfo) bool { return f.HasBankStatements() }},
	{"tax_return", 15, func(f *profile.FinancialInfo) bool { return f.HasTaxReturn() }},
	{"salary_slips", 15, func(f *profile.FinancialInfo) bool { return f.HasSalarySlips() }},
	{"property_docs", 10, func(f *profile.FinancialInfo) bool { return present(f.PropertyDocPath) }},
	{"sponsor_docs", 10, func(f *profile.FinancialInfo) bool { return present(f.SponsorDocPath) }},
}

var incomeTiers = []tier[*profile.FinancialInfo]{
	{"income_100k", 10, func(f *profile.FinancialInfo) bool { return f.MonthlyIncome.GreaterThanOrEqual(incomeHigh) }},
	{"income_50k", 5, func(f *profile.FinancialInfo) bool { return f.MonthlyIncome.GreaterThanOrEqual(incomeMid) }},
}

func FinancialScore(in Input) float64 {
	if in.Snapshot == nil || in.Snapshot.FinancialInfo == nil {
		return 0
	}
	f := in.Snapshot.FinancialInfo
	return capScore(20 + evalRules(f, financialRules) + firstTier(f, incomeTiers))
}

// DevelopedCountries is the allowlist for the travel-history bonus.
var DevelopedCountries = map[string]bool{
	"US": true, "GB": true, "CA": true, "AU": true, "NZ": true,
	"DE": true, "FR": true, "IT": true, "ES": true, "NL": true,
	"BE": true, "AT": true, "CH": true, "IE": true, "SE": true,
	"NO": true, "DK": true, "FI": true, "JP": true, "KR": true,
	"SG": true,
}

var tripCountTiers = []tier[int]{
	{"five_trips", 20, func(n int) bool { return n >= 5 }},
	{"three_trips", 15, func(n int) bool { return n >= 3 }},
	{"one_trip", 10, func(n int) bool { return n >= 1 }},
}

var tripRules = []rule[profile.TravelHistory]{
	{"developed_country", 5, func(t profile.TravelHistory) bool {
		return DevelopedCountries[strings.ToUpper(strings.TrimSpace(t.CountryCode))]
	}},
}

// TravelHistoryScore treats an empty history as neutral (30), not as zero.
func TravelHistoryScore(in Input) float64 {
	if in.Snapshot == nil || len(in.Snapshot.TravelHistories) == 0 {
		return 30
	}
	trips := in.Snapshot.TravelHistories
	return capScore(50 + firstTier(len(trips), tripCountTiers) + evalEach(trips, tripRules))
}

func passportRules(now time.Time) []rule[profile.Passport] {
	cutoff := sixMonthsFrom(now)
	return []rule[profile.Passport]{
		{"front_scan", 10, func(p profile.Passport) bool { return present(p.FrontScanPath) }},
		{"back_scan", 10, func(p profile.Passport) bool { return present(p.BackScanPath) }},
		{"valid_six_months", 20, func(p profile.Passport) bool { return p.ValidBeyond(cutoff) }},
		{"primary", 10, func(p profile.Passport) bool { return p.IsPrimary }},
	}
}

func PassportScore(in Input) float64 {
	if in.Snapshot == nil || len(in.Snapshot.Passports) == 0 {
		return 0
	}
	return capScore(40 + evalEach(in.Snapshot.Passports, passportRules(in.Now)))
}
