package scoring

import (
	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

// Composite holds the four aggregate metrics.
type Composite struct {
	ProfileCompleteness float64 `json:"profile_completeness"`
	DocumentReadiness   float64 `json:"document_readiness"`
	VisaEligibility     float64 `json:"visa_eligibility"`
	OverallScore        float64 `json:"overall_score"`
}

const (
	weightCompleteness = 0.3
	weightDocuments    = 0.3
	weightEligibility  = 0.4
)

// documentChecks are the ten readiness checks. The last two are reserved
// slots that always pass, which fixes a +20 floor on readiness.
var documentChecks = []rule[*profile.Snapshot]{
	{"passport", 1, func(s *profile.Snapshot) bool { return len(s.Passports) > 0 }},
	{"education_certificate", 1, func(s *profile.Snapshot) bool { return anyEducationCertificate(s.Educations) }},
	{"identity_scan", 1, func(s *profile.Snapshot) bool {
		return s.PersonalInfo != nil && present(s.PersonalInfo.IdentityScanPath)
	}},
	{"bank_statements", 1, func(s *profile.Snapshot) bool { return s.FinancialInfo.HasBankStatements() }},
	{"tax_return", 1, func(s *profile.Snapshot) bool { return s.FinancialInfo.HasTaxReturn() }},
	{"salary_slips", 1, func(s *profile.Snapshot) bool { return s.FinancialInfo.HasSalarySlips() }},
	{"work_experience", 1, func(s *profile.Snapshot) bool { return len(s.WorkExperiences) > 0 }},
	{"language_certificate", 1, func(s *profile.Snapshot) bool { return anyLanguageCertificate(s.Languages) }},
	{"reserved_1", 1, func(*profile.Snapshot) bool { return true }},
	{"reserved_2", 1, func(*profile.Snapshot) bool { return true }},
}

func anyEducationCertificate(eds []profile.Education) bool {
	for _, e := range eds {
		if present(e.CertificatePath) {
			return true
		}
	}
	return false
}

func anyLanguageCertificate(ls []profile.Language) bool {
	for _, l := range ls {
		if present(l.CertificatePath) {
			return true
		}
	}
	return false
}

func ProfileCompleteness(c CategoryScores) float64 {
	vals := c.Values()
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return round2(sum / float64(len(vals)))
}

func DocumentReadiness(in Input) float64 {
	snap := in.Snapshot
	if snap == nil {
		snap = &profile.Snapshot{}
	}
	satisfied := evalRules(snap, documentChecks)
	return round2(satisfied / float64(len(documentChecks)) * 100)
}

func hasValidPassport(s *profile.Snapshot, in Input) bool {
	cutoff := sixMonthsFrom(in.Now)
	for _, p := range s.Passports {
		if p.ValidBeyond(cutoff) {
			return true
		}
	}
	return false
}

func hasBachelorOrAbove(s *profile.Snapshot) bool {
	for _, e := range s.Educations {
		if e.IsBachelorOrAbove() {
			return true
		}
	}
	return false
}

// hasStrongEnglish is IELTS >= 6.0 or TOEFL >= 80 on an English record.
func hasStrongEnglish(s *profile.Snapshot) bool {
	for _, l := range s.Languages {
		if !l.IsEnglish() {
			continue
		}
		switch l.Test() {
		case profile.TestIELTS:
			if l.TestScore >= 6.0 {
				return true
			}
		case profile.TestTOEFL:
			if l.TestScore >= 80 {
				return true
			}
		}
	}
	return false
}

func hasEnglish(s *profile.Snapshot) bool {
	for _, l := range s.Languages {
		if l.IsEnglish() {
			return true
		}
	}
	return false
}

func cleanRecord(s *profile.Snapshot) bool {
	if s.SecurityInfo == nil {
		return true
	}
	return !s.SecurityInfo.HasCriminalRecord && !s.SecurityInfo.HasVisaRefusal
}

func eligibilityRules(in Input) []rule[*profile.Snapshot] {
	return []rule[*profile.Snapshot]{
		{"valid_passport", 20, func(s *profile.Snapshot) bool { return hasValidPassport(s, in) }},
		{"bachelor_or_above", 20, hasBachelorOrAbove},
		{"two_jobs", 15, func(s *profile.Snapshot) bool { return len(s.WorkExperiences) >= 2 }},
		{"strong_english", 25, hasStrongEnglish},
		{"bank_statements", 15, func(s *profile.Snapshot) bool { return s.FinancialInfo.HasBankStatements() }},
		{"clean_record", 5, cleanRecord},
	}
}

func VisaEligibility(in Input) float64 {
	snap := in.Snapshot
	if snap == nil {
		snap = &profile.Snapshot{}
	}
	return round2(capScore(evalRules(snap, eligibilityRules(in))))
}

// OverallScore weights completeness 0.3, documents 0.3 and eligibility 0.4.
func OverallScore(completeness, documents, eligibility float64) float64 {
	return round2(weightCompleteness*completeness + weightDocuments*documents + weightEligibility*eligibility)
}

func ComputeComposite(in Input, c CategoryScores) Composite {
	out := Composite{
		ProfileCompleteness: ProfileCompleteness(c),
		DocumentReadiness:   DocumentReadiness(in),
		VisaEligibility:     VisaEligibility(in),
	}
	out.OverallScore = OverallScore(out.ProfileCompleteness, out.DocumentReadiness, out.VisaEligibility)
	return out
}
