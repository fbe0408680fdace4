package scoring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }
func ptrFloat(f float64) *float64    { return &f }

func inputFor(u *profile.User) Input {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s := profile.NewSnapshot(u)
	counts := profile.SectionCounts{}
	for _, sec := range profile.AllSections {
		if n, ok := s.LoadedCount(sec); ok {
			counts[sec] = n
		}
	}
	return Input{Snapshot: s, Counts: counts, Now: testNow}
}

func fullPassport(num string) profile.Passport {
	return profile.Passport{
		PassportNumber: num,
		FrontScanPath:  "passports/" + num + "-front.jpg",
		BackScanPath:   "passports/" + num + "-back.jpg",
		ExpiryDate:     ptrTime(testNow.AddDate(3, 0, 0)),
	}
}

func TestEmptyProfileScoresBaselines(t *testing.T) {
	in := inputFor(&profile.User{})
	got := ScoreCategories(in)

	assert.Equal(t, CategoryScores{TravelHistory: 30}, got)
	for _, v := range got.Values() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestNilSnapshotDoesNotPanic(t *testing.T) {
	in := Input{Now: testNow}
	got := ScoreCategories(in)
	assert.Equal(t, 30.0, got.TravelHistory)
	assert.Equal(t, 0.0, got.Passport)
}

func TestPersonalInfoScore(t *testing.T) {
	full := &profile.PersonalInfo{
		FullName: "Rahim Uddin", Phone: "+8801700000000", Email: "r@example.com",
		DateOfBirth: ptrTime(time.Date(1994, 5, 2, 0, 0, 0, 0, time.UTC)),
		Gender:      "male", Nationality: "BD",
		PresentAddress: "House 1", PermanentAddress: "House 2", City: "Dhaka", Country: "BD",
		NIDNumber: "1990", FatherName: "A", MotherName: "B", MaritalStatus: "single",
	}
	assert.Equal(t, 100.0, PersonalInfoScore(inputFor(&profile.User{PersonalInfo: full})))

	core := &profile.PersonalInfo{FullName: "Rahim", Phone: "1", City: "Dhaka"}
	assert.Equal(t, 25.0, PersonalInfoScore(inputFor(&profile.User{PersonalInfo: core})))
}

func TestEducationScore(t *testing.T) {
	cases := []struct {
		name string
		eds  []profile.Education
		want float64
	}{
		{"none", nil, 0},
		{"bare record", []profile.Education{{Level: "hsc"}}, 40},
		{"certificate and gpa", []profile.Education{{Level: "bachelor", CertificatePath: "c.pdf", GPA: ptrFloat(3.6)}}, 55},
		{"zero gpa ignored", []profile.Education{{Level: "bachelor", GPA: ptrFloat(0)}}, 40},
		{"masters", []profile.Education{{Level: "Masters"}}, 55},
		{"capped", []profile.Education{
			{Level: "phd", CertificatePath: "a", GPA: ptrFloat(4)},
			{Level: "masters", CertificatePath: "b", GPA: ptrFloat(4)},
			{Level: "bachelor", CertificatePath: "c", GPA: ptrFloat(4)},
		}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EducationScore(inputFor(&profile.User{Educations: tc.eds})))
		})
	}
}

func TestWorkExperienceScore(t *testing.T) {
	job := func(years int, described bool) profile.WorkExperience {
		w := profile.WorkExperience{
			StartDate: testNow.AddDate(-years, 0, 0),
			EndDate:   ptrTime(testNow),
		}
		if described {
			w.CompanyName = "Acme"
			w.Description = "Built things"
		}
		return w
	}
	assert.Equal(t, 0.0, WorkExperienceScore(inputFor(&profile.User{})))
	assert.Equal(t, 40.0, WorkExperienceScore(inputFor(&profile.User{WorkExperiences: []profile.WorkExperience{job(1, false)}})))
	assert.Equal(t, 55.0, WorkExperienceScore(inputFor(&profile.User{WorkExperiences: []profile.WorkExperience{job(3, true)}})))
	assert.Equal(t, 70.0, WorkExperienceScore(inputFor(&profile.User{WorkExperiences: []profile.WorkExperience{
		job(3, true), job(2, true),
	}})))

	open := profile.WorkExperience{StartDate: testNow.AddDate(-6, 0, 0)}
	assert.Equal(t, 60.0, WorkExperienceScore(inputFor(&profile.User{WorkExperiences: []profile.WorkExperience{open}})))
}

func TestTotalExperienceMonthsCountsOverlapTwice(t *testing.T) {
	a := profile.WorkExperience{StartDate: testNow.AddDate(-2, 0, 0), EndDate: ptrTime(testNow)}
	b := profile.WorkExperience{StartDate: testNow.AddDate(-2, 0, 0), EndDate: ptrTime(testNow)}
	assert.Equal(t, 48, TotalExperienceMonths([]profile.WorkExperience{a, b}, testNow))
}

func TestLanguageScore(t *testing.T) {
	cases := []struct {
		name string
		ls   []profile.Language
		want float64
	}{
		{"none", nil, 0},
		{"ielts 7.5", []profile.Language{{Language: "English", TestType: "IELTS", TestScore: 7.5}}, 60},
		{"ielts 6.5", []profile.Language{{Language: "English", TestType: "ielts", TestScore: 6.5}}, 50},
		{"ielts 5", []profile.Language{{Language: "english", TestType: "ielts", TestScore: 5}}, 40},
		{"toefl 105", []profile.Language{{Language: "English", TestType: "TOEFL", TestScore: 105}}, 50},
		{"toefl 90", []profile.Language{{Language: "English", TestType: "toefl", TestScore: 90}}, 40},
		{"self fluent", []profile.Language{{Language: "English", Proficiency: "fluent"}}, 40},
		{"self intermediate", []profile.Language{{Language: "English", Proficiency: "Intermediate"}}, 30},
		{"english basic", []profile.Language{{Language: "English", Proficiency: "basic"}}, 20},
		{"native bangla", []profile.Language{{Language: "Bangla", Proficiency: "native"}}, 35},
		{"accumulates and caps", []profile.Language{
			{Language: "English", TestType: "ielts", TestScore: 8},
			{Language: "Bangla", Proficiency: "native"},
			{Language: "Hindi", Proficiency: "fluent"},
			{Language: "Urdu", Proficiency: "intermediate"},
		}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LanguageScore(inputFor(&profile.User{Languages: tc.ls})))
		})
	}
}

func TestFinancialScore(t *testing.T) {
	assert.Equal(t, 0.0, FinancialScore(inputFor(&profile.User{})))
	assert.Equal(t, 20.0, FinancialScore(inputFor(&profile.User{FinancialInfo: &profile.FinancialInfo{}})))

	f := &profile.FinancialInfo{
		MonthlyIncome:     decimal.NewFromInt(60000),
		BankStatementPath: "b", TaxReturnPath: "t", SalarySlipPath: "s",
	}
	assert.Equal(t, 75.0, FinancialScore(inputFor(&profile.User{FinancialInfo: f})))

	f.MonthlyIncome = decimal.RequireFromString("100000.00")
	f.PropertyDocPath = "p"
	f.SponsorDocPath = "sp"
	assert.Equal(t, 100.0, FinancialScore(inputFor(&profile.User{FinancialInfo: f})))
}

func TestTravelHistoryScore(t *testing.T) {
	assert.Equal(t, 30.0, TravelHistoryScore(inputFor(&profile.User{})))
	one := []profile.TravelHistory{{CountryCode: "TH"}}
	assert.Equal(t, 60.0, TravelHistoryScore(inputFor(&profile.User{TravelHistories: one})))
	three := []profile.TravelHistory{{CountryCode: "us"}, {CountryCode: "JP"}, {CountryCode: "IN"}}
	assert.Equal(t, 75.0, TravelHistoryScore(inputFor(&profile.User{TravelHistories: three})))
	many := []profile.TravelHistory{
		{CountryCode: "US"}, {CountryCode: "GB"}, {CountryCode: "CA"}, {CountryCode: "DE"}, {CountryCode: "FR"}, {CountryCode: "JP"},
	}
	assert.Equal(t, 100.0, TravelHistoryScore(inputFor(&profile.User{TravelHistories: many})))
}

func TestPassportScore(t *testing.T) {
	assert.Equal(t, 0.0, PassportScore(inputFor(&profile.User{})))

	p := fullPassport("A1")
	assert.Equal(t, 80.0, PassportScore(inputFor(&profile.User{Passports: []profile.Passport{p}})))
	p.IsPrimary = true
	assert.Equal(t, 90.0, PassportScore(inputFor(&profile.User{Passports: []profile.Passport{p}})))

	expiring := profile.Passport{ExpiryDate: ptrTime(testNow.AddDate(0, 5, 0))}
	assert.Equal(t, 40.0, PassportScore(inputFor(&profile.User{Passports: []profile.Passport{expiring}})))

	three := []profile.Passport{fullPassport("A"), fullPassport("B"), fullPassport("C")}
	assert.Equal(t, 100.0, PassportScore(inputFor(&profile.User{Passports: three})))
}

func TestScoresNeverDecreaseWhenRecordsAdded(t *testing.T) {
	base := &profile.User{
		Educations: []profile.Education{{Level: "bachelor"}},
		Passports:  []profile.Passport{{FrontScanPath: "f"}},
		Languages:  []profile.Language{{Language: "English", Proficiency: "fluent"}},
	}
	before := ScoreCategories(inputFor(base))

	richer := *base
	richer.Educations = append(append([]profile.Education{}, base.Educations...), profile.Education{Level: "masters", CertificatePath: "c"})
	richer.Passports = append(append([]profile.Passport{}, base.Passports...), fullPassport("N2"))
	richer.Languages = append(append([]profile.Language{}, base.Languages...), profile.Language{Language: "French", Proficiency: "intermediate"})
	after := ScoreCategories(inputFor(&richer))

	bv, av := before.Values(), after.Values()
	require.Len(t, av, len(bv))
	for i := range bv {
		assert.GreaterOrEqual(t, av[i], bv[i], "category %d decreased", i)
	}
}

func TestStrongProfileScenario(t *testing.T) {
	u := &profile.User{
		Educations: []profile.Education{{Level: "masters"}},
		Languages:  []profile.Language{{Language: "English", TestType: "ielts", TestScore: 7.5}},
		Passports:  []profile.Passport{fullPassport("P1"), fullPassport("P2"), fullPassport("P3")},
	}
	got := ScoreCategories(inputFor(u))
	assert.GreaterOrEqual(t, got.Language, 60.0)
	assert.GreaterOrEqual(t, got.Education, 55.0)
	assert.Equal(t, 100.0, got.Passport)
}
