package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`

	PersonalInfo    *PersonalInfo    `gorm:"foreignKey:UserID;references:ID" json:"personal_info,omitempty"`
	Educations      []Education      `gorm:"foreignKey:UserID;references:ID" json:"educations,omitempty"`
	WorkExperiences []WorkExperience `gorm:"foreignKey:UserID;references:ID" json:"work_experiences,omitempty"`
	Languages       []Language       `gorm:"foreignKey:UserID;references:ID" json:"languages,omitempty"`
	FinancialInfo   *FinancialInfo   `gorm:"foreignKey:UserID;references:ID" json:"financial_info,omitempty"`
	Passports       []Passport       `gorm:"foreignKey:UserID;references:ID" json:"passports,omitempty"`
	TravelHistories []TravelHistory  `gorm:"foreignKey:UserID;references:ID" json:"travel_histories,omitempty"`
	SecurityInfo    *SecurityInfo    `gorm:"foreignKey:UserID;references:ID" json:"security_info,omitempty"`
	FamilyMembers   []FamilyMember   `gorm:"foreignKey:UserID;references:ID" json:"family_members,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

// FullName prefers the personal-info record and falls back to the account name.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	if u.PersonalInfo != nil && u.PersonalInfo.FullName != "" {
		return u.PersonalInfo.FullName
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	return name
}

type PersonalInfo struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	FullName    string     `gorm:"column:full_name" json:"full_name"`
	Phone       string     `gorm:"column:phone" json:"phone"`
	Email       string     `gorm:"column:email" json:"email"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth" json:"date_of_birth"`
	Gender      string     `gorm:"column:gender" json:"gender"`
	Nationality string     `gorm:"column:nationality" json:"nationality"`

	PresentAddress   string `gorm:"column:present_address" json:"present_address"`
	PermanentAddress string `gorm:"column:permanent_address" json:"permanent_address"`
	City             string `gorm:"column:city" json:"city"`
	Country          string `gorm:"column:country" json:"country"`

	NIDNumber     string `gorm:"column:nid_number" json:"nid_number"`
	FatherName    string `gorm:"column:father_name" json:"father_name"`
	MotherName    string `gorm:"column:mother_name" json:"mother_name"`
	MaritalStatus string `gorm:"column:marital_status" json:"marital_status"`

	IdentityScanPath string `gorm:"column:identity_scan_path" json:"identity_scan_path"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PersonalInfo) TableName() string { return "personal_info" }

type FinancialInfo struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	MonthlyIncome decimal.Decimal `gorm:"column:monthly_income;type:decimal(14,2)" json:"monthly_income"`

	BankStatementPath string `gorm:"column:bank_statement_path" json:"bank_statement_path"`
	TaxReturnPath     string `gorm:"column:tax_return_path" json:"tax_return_path"`
	SalarySlipPath    string `gorm:"column:salary_slip_path" json:"salary_slip_path"`
	PropertyDocPath   string `gorm:"column:property_doc_path" json:"property_doc_path"`
	SponsorDocPath    string `gorm:"column:sponsor_doc_path" json:"sponsor_doc_path"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (FinancialInfo) TableName() string { return "financial_info" }

func (f *FinancialInfo) HasBankStatements() bool { return f != nil && f.BankStatementPath != "" }
func (f *FinancialInfo) HasTaxReturn() bool      { return f != nil && f.TaxReturnPath != "" }
func (f *FinancialInfo) HasSalarySlips() bool    { return f != nil && f.SalarySlipPath != "" }
func (f *FinancialInfo) HasIncome() bool         { return f != nil && f.MonthlyIncome.IsPositive() }

type SecurityInfo struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	HasCriminalRecord bool `gorm:"column:has_criminal_record;not null;default:false" json:"has_criminal_record"`
	HasVisaRefusal    bool `gorm:"column:has_visa_refusal;not null;default:false" json:"has_visa_refusal"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (SecurityInfo) TableName() string { return "security_info" }
