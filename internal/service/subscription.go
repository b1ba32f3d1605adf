package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsnap/backend/internal/models"
)

// SubscriptionService reads plan entitlements. Billing happens elsewhere;
// this service only answers "what plan is this user on".
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

func (s *SubscriptionService) Get(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// IsPremium reports whether the user bypasses free-plan quotas. Missing
// subscription rows count as free.
func (s *SubscriptionService) IsPremium(ctx context.Context, userID uuid.UUID) bool {
	sub, err := s.Get(ctx, userID)
	if err != nil {
		return false
	}
	return sub.IsPremium()
}
