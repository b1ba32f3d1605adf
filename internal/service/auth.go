package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/nutrition"
	"github.com/mealsnap/backend/internal/types"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidBirthDate   = errors.New("birth_date must be YYYY-MM-DD")
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// Register creates the user, their onboarding profile with a computed daily
// calorie goal, and a free subscription, then returns a session token.
func (s *AuthService) Register(req types.RegisterRequest) (string, error) {
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return "", ErrInvalidBirthDate
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return "", ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	activity := req.ActivityLevel
	if activity == "" {
		activity = nutrition.ActivitySedentary
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		profile := models.UserProfile{
			UserID:             user.ID,
			Gender:             req.Gender,
			HeightCm:           req.HeightCm,
			WeightKg:           req.WeightKg,
			BirthDate:          &birthDate,
			ActivityLevel:      activity,
			FitnessGoal:        req.FitnessGoal,
			TargetWeightKg:     req.TargetWeightKg,
			TargetWeeks:        req.TargetWeeks,
			CuisinePreferences: models.JSONBStringArray(req.CuisinePrefs),
			TastePreferences:   models.JSONBStringArray(req.TastePrefs),
			DailyCalorieGoal: nutrition.DailyCalorieGoal(
				req.Gender, req.WeightKg, req.HeightCm, birthDate,
				activity, req.FitnessGoal, req.TargetWeightKg, req.TargetWeeks,
			),
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		subscription := models.Subscription{
			UserID:   user.ID,
			PlanType: "free",
			Status:   "active",
		}
		return tx.Create(&subscription).Error
	})
	if err != nil {
		return "", err
	}

	return s.generateToken(user.ID)
}

func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user.ID)
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userIDStr, ok := claims["user_id"].(string)
		if !ok {
			return nil, errors.New("invalid token claims")
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, err
		}

		return &types.TokenClaims{
			UserID: userID,
		}, nil
	}

	return nil, errors.New("invalid token")
}
