package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	EducationSSC      = "ssc"
	EducationHSC      = "hsc"
	EducationDiploma  = "diploma"
	EducationBachelor = "bachelor"
	EducationMasters  = "masters"
	EducationPhD      = "phd"
)

type Education struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Level           string   `gorm:"column:level;not null" json:"level"`
	Institution     string   `gorm:"column:institution" json:"institution"`
	Degree          string   `gorm:"column:degree" json:"degree"`
	GPA             *float64 `gorm:"column:gpa" json:"gpa"`
	CertificatePath string   `gorm:"column:certificate_path" json:"certificate_path"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Education) TableName() string { return "education" }

func (e Education) normalizedLevel() string { return strings.ToLower(strings.TrimSpace(e.Level)) }

func (e Education) IsAdvanced() bool {
	l := e.normalizedLevel()
	return l == EducationMasters || l == EducationPhD
}

func (e Education) IsBachelorOrAbove() bool {
	return e.normalizedLevel() == EducationBachelor || e.IsAdvanced()
}

type WorkExperience struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	CompanyName string     `gorm:"column:company_name" json:"company_name"`
	Position    string     `gorm:"column:position" json:"position"`
	Description string     `gorm:"column:description" json:"description"`
	StartDate   time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate     *time.Time `gorm:"column:end_date" json:"end_date"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (WorkExperience) TableName() string { return "work_experience" }

// Months counts whole months between start and end; an open record runs to now.
func (w WorkExperience) Months(now time.Time) int {
	end := now
	if w.EndDate != nil {
		end = *w.EndDate
	}
	if end.Before(w.StartDate) {
		return 0
	}
	months := (end.Year()-w.StartDate.Year())*12 + int(end.Month()) - int(w.StartDate.Month())
	if end.Day() < w.StartDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

const (
	ProficiencyNative       = "native"
	ProficiencyFluent       = "fluent"
	ProficiencyIntermediate = "intermediate"
	ProficiencyBasic        = "basic"

	TestIELTS = "ielts"
	TestTOEFL = "toefl"
)

type Language struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Language        string  `gorm:"column:language;not null" json:"language"`
	Proficiency     string  `gorm:"column:proficiency" json:"proficiency"`
	TestType        string  `gorm:"column:test_type" json:"test_type"`
	TestScore       float64 `gorm:"column:test_score" json:"test_score"`
	CertificatePath string  `gorm:"column:certificate_path" json:"certificate_path"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Language) TableName() string { return "language" }

func (l Language) IsEnglish() bool {
	return strings.EqualFold(strings.TrimSpace(l.Language), "english")
}

func (l Language) Test() string { return strings.ToLower(strings.TrimSpace(l.TestType)) }

func (l Language) Level() string { return strings.ToLower(strings.TrimSpace(l.Proficiency)) }

func (l Language) IsFluent() bool {
	lv := l.Level()
	return lv == ProficiencyFluent || lv == ProficiencyNative
}

type Passport struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	PassportNumber string     `gorm:"column:passport_number" json:"passport_number"`
	IssueDate      *time.Time `gorm:"column:issue_date" json:"issue_date"`
	ExpiryDate     *time.Time `gorm:"column:expiry_date" json:"expiry_date"`
	FrontScanPath  string     `gorm:"column:front_scan_path" json:"front_scan_path"`
	BackScanPath   string     `gorm:"column:back_scan_path" json:"back_scan_path"`
	IsPrimary      bool       `gorm:"column:is_primary;not null;default:false" json:"is_primary"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Passport) TableName() string { return "passport" }

// ValidBeyond reports whether the passport expires strictly after cutoff.
func (p Passport) ValidBeyond(cutoff time.Time) bool {
	return p.ExpiryDate != nil && p.ExpiryDate.After(cutoff)
}

func (p Passport) HasBothScans() bool { return p.FrontScanPath != "" && p.BackScanPath != "" }

const (
	VisaStatusApproved = "approved"
	VisaStatusRejected = "rejected"
)

type TravelHistory struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	CountryCode string     `gorm:"column:country_code" json:"country_code"`
	CountryName string     `gorm:"column:country_name" json:"country_name"`
	Purpose     string     `gorm:"column:purpose" json:"purpose"`
	VisaStatus  string     `gorm:"column:visa_status" json:"visa_status"`
	EntryDate   *time.Time `gorm:"column:entry_date" json:"entry_date"`
	ExitDate    *time.Time `gorm:"column:exit_date" json:"exit_date"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TravelHistory) TableName() string { return "travel_history" }

func (t TravelHistory) Rejected() bool {
	return strings.EqualFold(strings.TrimSpace(t.VisaStatus), VisaStatusRejected)
}

type FamilyMember struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Relationship string `gorm:"column:relationship" json:"relationship"`
	FullName     string `gorm:"column:full_name" json:"full_name"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (FamilyMember) TableName() string { return "family_member" }

// Activity records only feed the next-step suggestions; the core counts them.

type CV struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"column:title" json:"title"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CV) TableName() string { return "cv" }

type VisaApplication struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CountryCode string    `gorm:"column:country_code" json:"country_code"`
	Status      string    `gorm:"column:status" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (VisaApplication) TableName() string { return "visa_application" }

type JobApplication struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Status    string    `gorm:"column:status" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (JobApplication) TableName() string { return "job_application" }

type InsuranceBooking struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Status    string    `gorm:"column:status" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (InsuranceBooking) TableName() string { return "insurance_booking" }
