package profile

import "github.com/google/uuid"

// Section names a countable part of a profile.
type Section string

const (
	SectionEducation      Section = "education"
	SectionWorkExperience Section = "work_experience"
	SectionLanguage       Section = "language"
	SectionPassport       Section = "passport"
	SectionFinancial      Section = "financial"
	SectionTravel         Section = "travel"
	SectionFamily         Section = "family"
	SectionCV             Section = "cv"
	SectionVisaApp        Section = "visa_application"
	SectionJobApp         Section = "job_application"
	SectionInsurance      Section = "insurance_booking"
)

// AllSections is every section a snapshot can carry.
var AllSections = []Section{
	SectionEducation, SectionWorkExperience, SectionLanguage, SectionPassport,
	SectionFinancial, SectionTravel, SectionFamily,
	SectionCV, SectionVisaApp, SectionJobApp, SectionInsurance,
}

// Snapshot is a point-in-time read view over one user's profile. Collections
// are meaningful only for sections marked loaded; activity sections carry a
// count instead of records.
type Snapshot struct {
	User *User

	PersonalInfo    *PersonalInfo
	Educations      []Education
	WorkExperiences []WorkExperience
	Languages       []Language
	FinancialInfo   *FinancialInfo
	Passports       []Passport
	TravelHistories []TravelHistory
	SecurityInfo    *SecurityInfo
	FamilyMembers   []FamilyMember

	CVCount               int
	VisaApplicationCount  int
	JobApplicationCount   int
	InsuranceBookingCount int

	loaded map[Section]bool
}

// NewSnapshot builds a snapshot from a user whose relations were preloaded,
// marking every relation section as loaded.
func NewSnapshot(u *User) *Snapshot {
	s := &Snapshot{User: u}
	if u == nil {
		return s
	}
	s.PersonalInfo = u.PersonalInfo
	s.Educations = u.Educations
	s.WorkExperiences = u.WorkExperiences
	s.Languages = u.Languages
	s.FinancialInfo = u.FinancialInfo
	s.Passports = u.Passports
	s.TravelHistories = u.TravelHistories
	s.SecurityInfo = u.SecurityInfo
	s.FamilyMembers = u.FamilyMembers
	s.MarkLoaded(SectionEducation, SectionWorkExperience, SectionLanguage,
		SectionPassport, SectionFinancial, SectionTravel, SectionFamily)
	return s
}

func (s *Snapshot) UserID() uuid.UUID {
	if s == nil || s.User == nil {
		return uuid.Nil
	}
	return s.User.ID
}

func (s *Snapshot) MarkLoaded(sections ...Section) {
	if s.loaded == nil {
		s.loaded = make(map[Section]bool, len(sections))
	}
	for _, sec := range sections {
		s.loaded[sec] = true
	}
}

func (s *Snapshot) IsLoaded(sec Section) bool {
	return s != nil && s.loaded[sec]
}

// LoadedCount returns the in-memory count for sec and whether it can be trusted.
func (s *Snapshot) LoadedCount(sec Section) (int, bool) {
	if !s.IsLoaded(sec) {
		return 0, false
	}
	switch sec {
	case SectionEducation:
		return len(s.Educations), true
	case SectionWorkExperience:
		return len(s.WorkExperiences), true
	case SectionLanguage:
		return len(s.Languages), true
	case SectionPassport:
		return len(s.Passports), true
	case SectionFinancial:
		if s.FinancialInfo != nil {
			return 1, true
		}
		return 0, true
	case SectionTravel:
		return len(s.TravelHistories), true
	case SectionFamily:
		return len(s.FamilyMembers), true
	case SectionCV:
		return s.CVCount, true
	case SectionVisaApp:
		return s.VisaApplicationCount, true
	case SectionJobApp:
		return s.JobApplicationCount, true
	case SectionInsurance:
		return s.InsuranceBookingCount, true
	}
	return 0, false
}

// SectionCounts is the resolved count per section.
type SectionCounts map[Section]int

func (c SectionCounts) Has(sec Section) bool { return c[sec] > 0 }
