package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Recipe is a generated recipe persisted for discovery and search. The scan
// keeps its own denormalized copy in scan.recipes; rows here exist so the
// search endpoint can rank recipes by embedding distance.
type Recipe struct {
	ID          uuid.UUID            `gorm:"type:uuid;primarykey;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`
	Name        string               `gorm:"size:255;not null" json:"name"`
	Description string               `gorm:"type:text" json:"description"`
	ImageURL    string               `gorm:"size:512" json:"image_url"`
	Ingredients RecipeIngredientList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps       JSONBStringArray     `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Tags        JSONBStringArray     `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	MealTiming  string               `gorm:"size:20" json:"meal_timing"`
	Calories    int                  `json:"calories"`
	Protein     int                  `json:"protein"`
	Carbs       int                  `json:"carbs"`
	Fat         int                  `json:"fat"`
	PrepTime    int                  `json:"prep_time"`
	CookTime    int                  `json:"cook_time"`
	Servings    int                  `json:"servings"`
	HealthScore int                  `json:"health_score"`
	MatchScore  int                  `json:"match_score"`
	Embedding   pgvector.Vector      `gorm:"type:vector(3)" json:"-"`
	UserID      uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	ScanID      uuid.UUID            `gorm:"type:uuid;index" json:"scan_id"`
}
