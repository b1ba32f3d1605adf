package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/mealsnap/backend/internal/nutrition"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	return scanJSONB(value, a, func() { *a = JSONBStringArray{} })
}

// IngredientList stores a scan's ingredient pool as JSONB.
type IngredientList []nutrition.Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	return scanJSONB(value, l, func() { *l = IngredientList{} })
}

// RecipeList stores the generated recipes attached to a scan as JSONB.
type RecipeList []nutrition.Recipe

// Value implements the driver.Valuer interface
func (l RecipeList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *RecipeList) Scan(value interface{}) error {
	return scanJSONB(value, l, func() { *l = RecipeList{} })
}

// RecipeIngredientList stores a recipe's ingredient references as JSONB.
type RecipeIngredientList []nutrition.RecipeIngredient

// Value implements the driver.Valuer interface
func (l RecipeIngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *RecipeIngredientList) Scan(value interface{}) error {
	return scanJSONB(value, l, func() { *l = RecipeIngredientList{} })
}

func scanJSONB(value interface{}, dest interface{}, reset func()) error {
	if value == nil {
		reset()
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, dest)
}
