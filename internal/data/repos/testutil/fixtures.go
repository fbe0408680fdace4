package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *profile.User {
	tb.Helper()
	u := &profile.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "Amina",
		LastName:  "Rahman",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// Seed inserts arbitrary profile rows for userID. Each value must be a
// pointer to a model with a UserID field already set.
func Seed(tb testing.TB, ctx context.Context, tx *gorm.DB, rows ...any) {
	tb.Helper()
	for _, row := range rows {
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed %T: %v", row, err)
		}
	}
}

// SeedStrongProfile gives userID a profile that passes most rules: a masters
// degree, two jobs, IELTS 7.5, a valid passport with scans and bank
// statements.
func SeedStrongProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) {
	tb.Helper()
	expiry := now.AddDate(4, 0, 0)
	dob := time.Date(1992, 7, 14, 0, 0, 0, 0, time.UTC)
	end := now.AddDate(-1, 0, 0)
	gpa := 3.8
	Seed(tb, ctx, tx,
		&profile.PersonalInfo{
			ID: uuid.New(), UserID: userID,
			FullName: "Amina Rahman", Phone: "+8801711000000", Email: "amina@example.com",
			DateOfBirth: &dob, Gender: "female", Nationality: "BD",
			IdentityScanPath: "ids/amina.jpg",
		},
		&profile.Education{ID: uuid.New(), UserID: userID, Level: profile.EducationMasters, CertificatePath: "edu/msc.pdf", GPA: &gpa},
		&profile.WorkExperience{ID: uuid.New(), UserID: userID, CompanyName: "Acme", Description: "Backend", StartDate: now.AddDate(-6, 0, 0), EndDate: &end},
		&profile.WorkExperience{ID: uuid.New(), UserID: userID, CompanyName: "Globex", Description: "Platform", StartDate: now.AddDate(-1, 0, 0)},
		&profile.Language{ID: uuid.New(), UserID: userID, Language: "English", TestType: profile.TestIELTS, TestScore: 7.5, CertificatePath: "lang/ielts.pdf"},
		&profile.Passport{ID: uuid.New(), UserID: userID, PassportNumber: "BD1234567", ExpiryDate: &expiry, FrontScanPath: "pp/f.jpg", BackScanPath: "pp/b.jpg", IsPrimary: true},
		&profile.FinancialInfo{ID: uuid.New(), UserID: userID, MonthlyIncome: decimal.NewFromInt(120000), BankStatementPath: "fin/bank.pdf", TaxReturnPath: "fin/tax.pdf"},
	)
}
