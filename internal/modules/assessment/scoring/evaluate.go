package scoring

import (
	"gorm.io/datatypes"

	"github.com/yungbote/visapath-backend/internal/domain/assessment"
)

// Evaluate computes a full assessment row for in.Snapshot. ID and timestamps
// other than AssessedAt are left for the repository.
func Evaluate(in Input) *assessment.Assessment {
	cats := ScoreCategories(in)
	comp := ComputeComposite(in, cats)

	strengths := Strengths(in)
	weaknesses := Weaknesses(in)

	a := &assessment.Assessment{
		UserID: in.Snapshot.UserID(),

		PersonalInfoScore:        cats.PersonalInfo,
		EducationScore:           cats.Education,
		WorkExperienceScore:      cats.WorkExperience,
		LanguageProficiencyScore: cats.Language,
		FinancialScore:           cats.Financial,
		TravelHistoryScore:       cats.TravelHistory,
		PassportScore:            cats.Passport,

		ProfileCompleteness: comp.ProfileCompleteness,
		DocumentReadiness:   comp.DocumentReadiness,
		VisaEligibility:     comp.VisaEligibility,
		OverallScore:        comp.OverallScore,

		Strengths:        datatypes.JSONSlice[string](nonNil(strengths)),
		Weaknesses:       datatypes.JSONSlice[string](nonNil(weaknesses)),
		Recommendations:  datatypes.JSONSlice[assessment.Recommendation](Recommendations(weaknesses)),
		MissingDocuments: datatypes.JSONSlice[string](nonNil(MissingDocuments(in))),
		RiskLevel:        RiskLevel(comp.OverallScore),
		RiskFactors:      datatypes.JSONSlice[string](nonNil(RiskFactors(in))),

		RecommendedVisaTypes:     datatypes.JSONSlice[assessment.VisaTypeRecommendation](RecommendedVisaTypes(in, cats)),
		EligibleCountries:        datatypes.JSONSlice[assessment.EligibleCountry](EligibleCountries(in)),
		VisaEligibilityBreakdown: datatypes.NewJSONType(EligibilityBreakdown(cats)),

		AISummary: Summary(in.Snapshot, comp.OverallScore, strengths, weaknesses),
		AIMetadata: datatypes.NewJSONType(assessment.AIMetadata{
			AlgorithmVersion: assessment.AlgorithmVersion,
			ConfidenceScore:  ConfidenceScore(in),
			DataQualityScore: DataQualityScore(in),
		}),

		AssessedAt:        in.Now,
		AssessmentVersion: assessment.Version,
	}
	return a
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
