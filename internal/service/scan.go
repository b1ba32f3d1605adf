package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/nutrition"
	"github.com/mealsnap/backend/internal/types"
)

var ErrNoImage = errors.New("image_base64 or image_url required")

// ImageAnalyzer is the slice of the AI client the scan flow needs.
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, imageURL string) ([]nutrition.Ingredient, error)
	SuggestIngredients(ctx context.Context, ingredients []string, prefs SuggestionPreferences) ([]nutrition.Ingredient, error)
}

// ScanService owns the scan lifecycle: photo intake, vision analysis,
// ingredient corrections and the scan history.
type ScanService struct {
	db       *gorm.DB
	ai       ImageAnalyzer
	images   ImageStore
	profiles *ProfileService
	logger   *zap.Logger
}

func NewScanService(db *gorm.DB, ai ImageAnalyzer, images ImageStore, profiles *ProfileService, logger *zap.Logger) *ScanService {
	return &ScanService{db: db, ai: ai, images: images, profiles: profiles, logger: logger}
}

// CreateScan analyzes the submitted photo and stores a new scan with the
// detected ingredient pool. Base64 uploads go to object storage; the vision
// model reads them as a data URI either way, so analysis does not depend on
// the upload succeeding.
func (s *ScanService) CreateScan(ctx context.Context, userID uuid.UUID, req types.CreateScanRequest) (*models.Scan, error) {
	visionURL := req.ImageURL
	storedURL := req.ImageURL

	if req.ImageBase64 != "" {
		data, contentType, err := decodeImage(req.ImageBase64)
		if err != nil {
			return nil, err
		}
		visionURL = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)

		if s.images != nil {
			url, err := s.images.UploadScanImage(ctx, data, contentType)
			if err != nil {
				s.logger.Warn("scan image upload failed", zap.Error(err))
			} else {
				storedURL = url
			}
		}
	}

	if visionURL == "" {
		return nil, ErrNoImage
	}

	ingredients, err := s.ai.AnalyzeImage(ctx, visionURL)
	if err != nil {
		return nil, err
	}

	scan := models.Scan{
		UserID:      userID,
		ImageURL:    storedURL,
		Ingredients: models.IngredientList(ingredients),
		Recipes:     models.RecipeList{},
	}
	if err := s.db.WithContext(ctx).Create(&scan).Error; err != nil {
		return nil, err
	}

	if err := s.profiles.RecordScanStreak(ctx, userID, time.Now()); err != nil {
		s.logger.Warn("failed to update scan streak", zap.Error(err))
	}

	s.logger.Info("created scan",
		zap.String("scan_id", scan.ID.String()),
		zap.Int("ingredients", len(ingredients)),
	)
	return &scan, nil
}

func (s *ScanService) GetScan(ctx context.Context, userID, scanID uuid.UUID) (*models.Scan, error) {
	var scan models.Scan
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", scanID, userID).
		First(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (s *ScanService) ListScans(ctx context.Context, userID uuid.UUID, limit int) ([]models.Scan, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	var scans []models.Scan
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&scans).Error
	return scans, err
}

// UpdateIngredients replaces the scan's pool with the user's corrections.
// Previously generated recipes are cleared since they scored against the
// old pool.
func (s *ScanService) UpdateIngredients(ctx context.Context, userID, scanID uuid.UUID, ingredients []nutrition.Ingredient) (*models.Scan, error) {
	scan, err := s.GetScan(ctx, userID, scanID)
	if err != nil {
		return nil, err
	}

	scan.Ingredients = models.IngredientList(ingredients)
	scan.Recipes = models.RecipeList{}
	if err := s.db.WithContext(ctx).Save(scan).Error; err != nil {
		return nil, err
	}
	return scan, nil
}

func (s *ScanService) DeleteScan(ctx context.Context, userID, scanID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", scanID, userID).
		Delete(&models.Scan{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SuggestIngredients asks for complementary ingredients biased by the
// user's stored preferences.
func (s *ScanService) SuggestIngredients(ctx context.Context, userID uuid.UUID, ingredients []string) ([]nutrition.Ingredient, error) {
	prefs := SuggestionPreferences{}
	if profile, err := s.profiles.GetProfile(ctx, userID); err == nil {
		prefs.CuisinePreferences = []string(profile.CuisinePreferences)
		prefs.TastePreferences = []string(profile.TastePreferences)
		prefs.FitnessGoal = profile.FitnessGoal
	}
	return s.ai.SuggestIngredients(ctx, ingredients, prefs)
}

// decodeImage accepts either a raw base64 string or a data URI and returns
// the bytes plus a content type.
func decodeImage(input string) ([]byte, string, error) {
	contentType := "image/jpeg"
	payload := input

	if strings.HasPrefix(input, "data:") {
		parts := strings.SplitN(input, ",", 2)
		if len(parts) != 2 {
			return nil, "", errors.New("malformed data URI")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		if i := strings.Index(meta, ";"); i >= 0 {
			meta = meta[:i]
		}
		if meta != "" {
			contentType = meta
		}
		payload = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.New("invalid base64 image data")
	}
	return data, contentType, nil
}
