package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// UserProfile carries the onboarding biometrics and preferences that feed
// the calorie goal formula and the ingredient suggestion prompts.
type UserProfile struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Gender             string           `gorm:"size:10;not null;default:'other'" json:"gender"`
	HeightCm           float64          `gorm:"type:float" json:"height_cm"`
	WeightKg           float64          `gorm:"type:float" json:"weight_kg"`
	BirthDate          *time.Time       `gorm:"type:date" json:"birth_date,omitempty"`
	ActivityLevel      string           `gorm:"size:30;default:'sedentary'" json:"activity_level"`
	FitnessGoal        string           `gorm:"size:30;default:'maintain_weight'" json:"fitness_goal"`
	TargetWeightKg     *float64         `gorm:"type:float" json:"target_weight_kg,omitempty"`
	TargetWeeks        *int             `json:"target_weeks,omitempty"`
	CuisinePreferences JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"cuisine_preferences"`
	TastePreferences   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"taste_preferences"`
	DailyCalorieGoal   int              `json:"daily_calorie_goal"`
	CurrentStreak      int              `json:"current_streak"`
	LastScanDate       *time.Time       `gorm:"type:date" json:"last_scan_date,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	DeletedAt          gorm.DeletedAt   `gorm:"index" json:"-"`
}

// Subscription is read as an entitlement precondition only; billing itself
// happens outside this service.
type Subscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	PlanType  string    `gorm:"size:20;not null;default:'free'" json:"plan_type"`
	Status    string    `gorm:"size:20;not null;default:'inactive'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPremium reports whether the subscription grants unlimited usage.
func (s *Subscription) IsPremium() bool {
	return s != nil && s.PlanType == "premium" && s.Status == "active"
}
