package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scan is one photographed set of ingredients. The vision analysis fills
// Ingredients; recipe generation overwrites Recipes with the full ranked set.
type Scan struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ImageURL    string         `gorm:"size:512" json:"image_url"`
	Ingredients IngredientList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Recipes     RecipeList     `gorm:"type:jsonb;not null;default:'[]'" json:"recipes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
