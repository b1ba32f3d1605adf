package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/types"
)

// TrackerService records consumed meals and water against the daily goal.
type TrackerService struct {
	db *gorm.DB
}

func NewTrackerService(db *gorm.DB) *TrackerService {
	return &TrackerService{db: db}
}

// DailySummary is what the home screen renders for one day.
type DailySummary struct {
	Date             string           `json:"date"`
	CalorieGoal      int              `json:"calorie_goal"`
	CaloriesConsumed int              `json:"calories_consumed"`
	CaloriesLeft     int              `json:"calories_left"`
	Protein          float64          `json:"protein"`
	Carbs            float64          `json:"carbs"`
	Fat              float64          `json:"fat"`
	WaterGlasses     int              `json:"water_glasses"`
	Meals            []models.MealLog `json:"meals"`
}

// LogMeal stores one consumed meal. Macros are scaled by servings, so a
// half serving logs half the recipe's values.
func (s *TrackerService) LogMeal(ctx context.Context, userID uuid.UUID, req types.LogMealRequest) (*models.MealLog, error) {
	servings := req.Servings
	if servings <= 0 {
		servings = 1
	}

	meal := models.MealLog{
		UserID:     userID,
		RecipeID:   req.RecipeID,
		RecipeName: req.RecipeName,
		Calories:   req.Calories * servings,
		Protein:    req.Protein * servings,
		Carbs:      req.Carbs * servings,
		Fat:        req.Fat * servings,
		Servings:   servings,
	}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *TrackerService) DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.MealLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LogWater adds glasses to the given day's tally, creating the row on
// first use.
func (s *TrackerService) LogWater(ctx context.Context, userID uuid.UUID, date string, glasses int) (*models.WaterIntake, error) {
	var intake models.WaterIntake
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&intake).Error
	switch {
	case err == nil:
		intake.Glasses += glasses
		if err := s.db.WithContext(ctx).Save(&intake).Error; err != nil {
			return nil, err
		}
	case err == gorm.ErrRecordNotFound:
		intake = models.WaterIntake{UserID: userID, Date: date, Glasses: glasses}
		if err := s.db.WithContext(ctx).Create(&intake).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return &intake, nil
}

// Summary aggregates one day's meals and water against the profile's goal.
func (s *TrackerService) Summary(ctx context.Context, userID uuid.UUID, date string) (*DailySummary, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, err
	}
	start := day
	end := day.Add(24 * time.Hour)

	var meals []models.MealLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("created_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	summary := &DailySummary{Date: date, Meals: meals}
	var calories float64
	for _, m := range meals {
		calories += m.Calories
		summary.Protein += m.Protein
		summary.Carbs += m.Carbs
		summary.Fat += m.Fat
	}
	summary.CaloriesConsumed = int(calories)

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err == nil {
		summary.CalorieGoal = profile.DailyCalorieGoal
	}
	summary.CaloriesLeft = summary.CalorieGoal - summary.CaloriesConsumed
	if summary.CaloriesLeft < 0 {
		summary.CaloriesLeft = 0
	}

	var water models.WaterIntake
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&water).Error; err == nil {
		summary.WaterGlasses = water.Glasses
	}

	return summary, nil
}

// ListMeals returns the user's recent meals, newest first.
func (s *TrackerService) ListMeals(ctx context.Context, userID uuid.UUID, limit int) ([]models.MealLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var meals []models.MealLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Limit(limit).
		Find(&meals).Error
	return meals, err
}
