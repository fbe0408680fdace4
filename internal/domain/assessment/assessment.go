package assessment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	Version          = "2.0"
	AlgorithmVersion = "rules-2.0"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type Recommendation struct {
	Priority Priority `json:"priority"`
	Action   string   `json:"action"`
	Benefit  string   `json:"benefit"`
	Route    string   `json:"route"`
}

type VisaTypeRecommendation struct {
	Type        string  `json:"type"`
	Suitability float64 `json:"suitability"`
	Reason      string  `json:"reason"`
}

type EligibleCountry struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

type CountryBreakdown struct {
	Score   float64            `json:"score"`
	Factors map[string]float64 `json:"factors"`
}

type AIMetadata struct {
	AlgorithmVersion string  `json:"algorithm_version"`
	ConfidenceScore  float64 `json:"confidence_score"`
	DataQualityScore float64 `json:"data_quality_score"`
}

// Assessment is the one-per-user scoring record. Rows are replaced wholesale
// by a recomputation; nothing else mutates them.
type Assessment struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	PersonalInfoScore        float64 `gorm:"column:personal_info_score;not null;default:0" json:"personal_info_score"`
	EducationScore           float64 `gorm:"column:education_score;not null;default:0" json:"education_score"`
	WorkExperienceScore      float64 `gorm:"column:work_experience_score;not null;default:0" json:"work_experience_score"`
	LanguageProficiencyScore float64 `gorm:"column:language_proficiency_score;not null;default:0" json:"language_proficiency_score"`
	FinancialScore           float64 `gorm:"column:financial_score;not null;default:0" json:"financial_score"`
	TravelHistoryScore       float64 `gorm:"column:travel_history_score;not null;default:0" json:"travel_history_score"`
	PassportScore            float64 `gorm:"column:passport_score;not null;default:0" json:"passport_score"`

	ProfileCompleteness float64 `gorm:"column:profile_completeness;not null;default:0" json:"profile_completeness"`
	DocumentReadiness   float64 `gorm:"column:document_readiness;not null;default:0" json:"document_readiness"`
	VisaEligibility     float64 `gorm:"column:visa_eligibility;not null;default:0" json:"visa_eligibility"`
	OverallScore        float64 `gorm:"column:overall_score;not null;default:0" json:"overall_score"`

	Strengths        datatypes.JSONSlice[string]         `gorm:"column:strengths" json:"strengths"`
	Weaknesses       datatypes.JSONSlice[string]         `gorm:"column:weaknesses" json:"weaknesses"`
	Recommendations  datatypes.JSONSlice[Recommendation] `gorm:"column:recommendations" json:"recommendations"`
	MissingDocuments datatypes.JSONSlice[string]         `gorm:"column:missing_documents" json:"missing_documents"`
	RiskLevel        RiskLevel                           `gorm:"column:risk_level;not null" json:"risk_level"`
	RiskFactors      datatypes.JSONSlice[string]         `gorm:"column:risk_factors" json:"risk_factors"`

	RecommendedVisaTypes     datatypes.JSONSlice[VisaTypeRecommendation]      `gorm:"column:recommended_visa_types" json:"recommended_visa_types"`
	EligibleCountries        datatypes.JSONSlice[EligibleCountry]             `gorm:"column:eligible_countries" json:"eligible_countries"`
	VisaEligibilityBreakdown datatypes.JSONType[map[string]CountryBreakdown] `gorm:"column:visa_eligibility_breakdown" json:"visa_eligibility_breakdown"`

	AISummary  string                          `gorm:"column:ai_summary" json:"ai_summary"`
	AIMetadata datatypes.JSONType[AIMetadata] `gorm:"column:ai_metadata" json:"ai_metadata"`

	AssessedAt        time.Time `gorm:"column:assessed_at;not null;index" json:"assessed_at"`
	AssessmentVersion string    `gorm:"column:assessment_version;not null" json:"assessment_version"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Assessment) TableName() string { return "profile_assessment" }

// IsFresh reports whether the row was assessed less than maxAge before now.
func (a *Assessment) IsFresh(now time.Time, maxAge time.Duration) bool {
	if a == nil || a.AssessedAt.IsZero() {
		return false
	}
	return now.Sub(a.AssessedAt) < maxAge
}

// CategoryScores returns the seven category scores keyed by category.
func (a *Assessment) CategoryScores() map[ScoreCategory]float64 {
	return map[ScoreCategory]float64{
		CategoryPersonalInfo:   a.PersonalInfoScore,
		CategoryEducation:      a.EducationScore,
		CategoryWorkExperience: a.WorkExperienceScore,
		CategoryLanguage:       a.LanguageProficiencyScore,
		CategoryFinancial:      a.FinancialScore,
		CategoryTravelHistory:  a.TravelHistoryScore,
		CategoryPassport:       a.PassportScore,
	}
}

// ScoreCategory names one of the seven profile dimensions.
type ScoreCategory string

const (
	CategoryPersonalInfo   ScoreCategory = "personal_info"
	CategoryEducation      ScoreCategory = "education"
	CategoryWorkExperience ScoreCategory = "work_experience"
	CategoryLanguage       ScoreCategory = "language_proficiency"
	CategoryFinancial      ScoreCategory = "financial"
	CategoryTravelHistory  ScoreCategory = "travel_history"
	CategoryPassport       ScoreCategory = "passport"
)

// ScoreCategories lists the categories in their canonical order.
var ScoreCategories = []ScoreCategory{
	CategoryPersonalInfo,
	CategoryEducation,
	CategoryWorkExperience,
	CategoryLanguage,
	CategoryFinancial,
	CategoryTravelHistory,
	CategoryPassport,
}

func (c ScoreCategory) Label() string {
	switch c {
	case CategoryPersonalInfo:
		return "Personal Information"
	case CategoryEducation:
		return "Education"
	case CategoryWorkExperience:
		return "Work Experience"
	case CategoryLanguage:
		return "Language Proficiency"
	case CategoryFinancial:
		return "Financial Information"
	case CategoryTravelHistory:
		return "Travel History"
	case CategoryPassport:
		return "Passport"
	}
	return string(c)
}

func (c ScoreCategory) Route() string {
	switch c {
	case CategoryPersonalInfo:
		return "/profile/personal"
	case CategoryEducation:
		return "/profile/education"
	case CategoryWorkExperience:
		return "/profile/work-experience"
	case CategoryLanguage:
		return "/profile/languages"
	case CategoryFinancial:
		return "/profile/financial"
	case CategoryTravelHistory:
		return "/profile/travel-history"
	case CategoryPassport:
		return "/profile/passport"
	}
	return "/profile"
}
