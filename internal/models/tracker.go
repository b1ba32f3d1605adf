package models

import (
	"time"

	"github.com/google/uuid"
)

// MealLog records one consumed meal against the daily calorie goal.
type MealLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID   string    `gorm:"size:64" json:"recipe_id"`
	RecipeName string    `gorm:"size:255;not null" json:"recipe_name"`
	Calories   float64   `gorm:"type:float" json:"calories"`
	Protein    float64   `gorm:"type:float" json:"protein"`
	Carbs      float64   `gorm:"type:float" json:"carbs"`
	Fat        float64   `gorm:"type:float" json:"fat"`
	Servings   float64   `gorm:"type:float;not null;default:1" json:"servings"`
	CreatedAt  time.Time `json:"created_at"`
}

// WaterIntake tracks glasses of water per calendar day.
type WaterIntake struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Glasses   int       `gorm:"not null;default:0" json:"glasses"`
	Date      string    `gorm:"size:10;not null;index" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
