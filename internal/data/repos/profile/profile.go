package profile

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/visapath-backend/internal/domain/profile"
	"github.com/yungbote/visapath-backend/internal/platform/dbctx"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
)

// ProfileRepo is the read side of a user's profile.
//
// SectionCounts contract: a section marked loaded on the snapshot is counted
// from memory; every other section is counted with a COUNT query. A nil
// snapshot counts everything from the database.
type ProfileRepo interface {
	LoadSnapshot(dbc dbctx.Context, userID uuid.UUID) (*types.Snapshot, error)
	SectionCounts(dbc dbctx.Context, snap *types.Snapshot, userID uuid.UUID) (types.SectionCounts, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

var snapshotPreloads = []string{
	"PersonalInfo",
	"Educations",
	"WorkExperiences",
	"Languages",
	"FinancialInfo",
	"Passports",
	"TravelHistories",
	"SecurityInfo",
	"FamilyMembers",
}

// LoadSnapshot returns (nil, nil) when the user does not exist.
func (r *profileRepo) LoadSnapshot(dbc dbctx.Context, userID uuid.UUID) (*types.Snapshot, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	q := dbc.DB(r.db)
	for _, rel := range snapshotPreloads {
		q = q.Preload(rel)
	}
	var users []types.User
	if err := q.Where("id = ?", userID).Limit(1).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("load profile snapshot: %w", err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return types.NewSnapshot(&users[0]), nil
}

func sectionModel(sec types.Section) any {
	switch sec {
	case types.SectionEducation:
		return &types.Education{}
	case types.SectionWorkExperience:
		return &types.WorkExperience{}
	case types.SectionLanguage:
		return &types.Language{}
	case types.SectionPassport:
		return &types.Passport{}
	case types.SectionFinancial:
		return &types.FinancialInfo{}
	case types.SectionTravel:
		return &types.TravelHistory{}
	case types.SectionFamily:
		return &types.FamilyMember{}
	case types.SectionCV:
		return &types.CV{}
	case types.SectionVisaApp:
		return &types.VisaApplication{}
	case types.SectionJobApp:
		return &types.JobApplication{}
	case types.SectionInsurance:
		return &types.InsuranceBooking{}
	}
	return nil
}

func (r *profileRepo) SectionCounts(dbc dbctx.Context, snap *types.Snapshot, userID uuid.UUID) (types.SectionCounts, error) {
	out := make(types.SectionCounts, len(types.AllSections))
	for _, sec := range types.AllSections {
		if n, ok := snap.LoadedCount(sec); ok {
			out[sec] = n
			continue
		}
		model := sectionModel(sec)
		if model == nil || userID == uuid.Nil {
			out[sec] = 0
			continue
		}
		var n int64
		if err := dbc.DB(r.db).Model(model).Where("user_id = ?", userID).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", sec, err)
		}
		out[sec] = int(n)
	}
	if snap != nil {
		snap.CVCount = out[types.SectionCV]
		snap.VisaApplicationCount = out[types.SectionVisaApp]
		snap.JobApplicationCount = out[types.SectionJobApp]
		snap.InsuranceBookingCount = out[types.SectionInsurance]
		snap.MarkLoaded(types.SectionCV, types.SectionVisaApp, types.SectionJobApp, types.SectionInsurance)
	}
	return out, nil
}
