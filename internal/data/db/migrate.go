package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/visapath-backend/internal/domain/assessment"
	"github.com/yungbote/visapath-backend/internal/domain/profile"
)

// Models lists every table the service owns or reads.
func Models() []any {
	return []any{
		// Profile (read-only for scoring)
		&profile.User{},
		&profile.PersonalInfo{},
		&profile.Education{},
		&profile.WorkExperience{},
		&profile.Language{},
		&profile.FinancialInfo{},
		&profile.Passport{},
		&profile.TravelHistory{},
		&profile.SecurityInfo{},
		&profile.FamilyMember{},

		// Activity
		&profile.CV{},
		&profile.VisaApplication{},
		&profile.JobApplication{},
		&profile.InsuranceBooking{},

		// Assessment + suggestions
		&assessment.Assessment{},
		&assessment.Suggestion{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
