package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/nutrition"
	"github.com/mealsnap/backend/internal/types"
)

// ProfileService reads and updates the onboarding profile. Any change to a
// field that feeds the calorie formula recomputes the stored daily goal.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.HeightCm != nil {
		profile.HeightCm = *req.HeightCm
	}
	if req.WeightKg != nil {
		profile.WeightKg = *req.WeightKg
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		profile.BirthDate = &birthDate
	}
	if req.ActivityLevel != nil {
		profile.ActivityLevel = *req.ActivityLevel
	}
	if req.FitnessGoal != nil {
		profile.FitnessGoal = *req.FitnessGoal
	}
	if req.TargetWeightKg != nil {
		profile.TargetWeightKg = req.TargetWeightKg
	}
	if req.TargetWeeks != nil {
		profile.TargetWeeks = req.TargetWeeks
	}
	if req.CuisinePrefs != nil {
		profile.CuisinePreferences = models.JSONBStringArray(req.CuisinePrefs)
	}
	if req.TastePrefs != nil {
		profile.TastePreferences = models.JSONBStringArray(req.TastePrefs)
	}

	if profile.BirthDate != nil {
		profile.DailyCalorieGoal = nutrition.DailyCalorieGoal(
			profile.Gender, profile.WeightKg, profile.HeightCm, *profile.BirthDate,
			profile.ActivityLevel, profile.FitnessGoal,
			profile.TargetWeightKg, profile.TargetWeeks,
		)
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// RecordScanStreak bumps the consecutive-day scan streak: same day keeps it,
// the next day extends it, a gap resets it to 1.
func (s *ProfileService) RecordScanStreak(ctx context.Context, userID uuid.UUID, now time.Time) error {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	today := now.Truncate(24 * time.Hour)
	switch {
	case profile.LastScanDate == nil:
		profile.CurrentStreak = 1
	case profile.LastScanDate.Equal(today):
		// Already counted today.
	case today.Sub(*profile.LastScanDate) == 24*time.Hour:
		profile.CurrentStreak++
	default:
		profile.CurrentStreak = 1
	}
	profile.LastScanDate = &today

	return s.db.WithContext(ctx).Save(profile).Error
}
