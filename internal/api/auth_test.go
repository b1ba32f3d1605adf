package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)

	t.Run("registers and returns a token", func(t *testing.T) {
		app.registerUser(t, "new@example.com")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		app.registerUser(t, "dup@example.com")
		w := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"name":         "Again",
			"email":        "dup@example.com",
			"password":     "password123",
			"gender":       "female",
			"height_cm":    165,
			"weight_kg":    60,
			"birth_date":   "1990-01-01",
			"fitness_goal": "lose_weight",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"email": "incomplete@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad birth date is rejected", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"name":         "Bad Date",
			"email":        "baddate@example.com",
			"password":     "password123",
			"gender":       "male",
			"height_cm":    180,
			"weight_kg":    80,
			"birth_date":   "June 15 1995",
			"fitness_goal": "gym",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.registerUser(t, "login@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "login@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "login@example.com",
			"password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{
		"/api/v1/profile",
		"/api/v1/scans",
		"/api/v1/meals",
		"/api/v1/usage",
	} {
		w := app.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := app.request(t, http.MethodGet, "/api/v1/profile", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
