package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/types"
)

func registerRequest() types.RegisterRequest {
	return types.RegisterRequest{
		Name:          "Test User",
		Email:         "test@example.com",
		Password:      "password123",
		Gender:        "male",
		HeightCm:      180,
		WeightKg:      80,
		BirthDate:     "1995-06-15",
		ActivityLevel: "moderately_active",
		FitnessGoal:   "maintain_weight",
		CuisinePrefs:  []string{"italian"},
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates user, profile and subscription", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewAuthService(db, "test-secret")

		token, err := svc.Register(registerRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		var user models.User
		require.NoError(t, db.Where("email = ?", "test@example.com").First(&user).Error)

		var profile models.UserProfile
		require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
		assert.Equal(t, 180.0, profile.HeightCm)
		assert.Positive(t, profile.DailyCalorieGoal)
		assert.Equal(t, []string{"italian"}, []string(profile.CuisinePreferences))

		var sub models.Subscription
		require.NoError(t, db.Where("user_id = ?", user.ID).First(&sub).Error)
		assert.Equal(t, "free", sub.PlanType)
		assert.False(t, sub.IsPremium())
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewAuthService(db, "test-secret")

		_, err := svc.Register(registerRequest())
		require.NoError(t, err)

		_, err = svc.Register(registerRequest())
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("rejects malformed birth date", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewAuthService(db, "test-secret")

		req := registerRequest()
		req.BirthDate = "15/06/1995"
		_, err := svc.Register(req)
		assert.ErrorIs(t, err, ErrInvalidBirthDate)
	})

	t.Run("does not store the plaintext password", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewAuthService(db, "test-secret")

		_, err := svc.Register(registerRequest())
		require.NoError(t, err)

		var user models.User
		require.NoError(t, db.Where("email = ?", "test@example.com").First(&user).Error)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NotEmpty(t, user.PasswordHash)
	})
}

func TestAuthService_Login(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login("test@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("test@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	token, err := svc.Register(registerRequest())
	require.NoError(t, err)

	t.Run("valid token resolves the user", func(t *testing.T) {
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)

		var user models.User
		require.NoError(t, db.Where("email = ?", "test@example.com").First(&user).Error)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		other := NewAuthService(db, "other-secret")
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage token fails", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}
