package main

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealsnap/backend/internal/models"
)

func main() {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Info)})
	for _, m := range []interface{}{&models.User{}, &models.UserProfile{}, &models.Subscription{}, &models.Scan{}, &models.Recipe{}, &models.MealLog{}, &models.WaterIntake{}} {
		if err := db.AutoMigrate(m); err != nil {
			fmt.Printf("FAIL %T: %v\n", m, err)
		}
	}
}
