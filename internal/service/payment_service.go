package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

// PaymentService is a mock: subscriptions are recorded and toggle the
// user's premium flag, but no money moves anywhere.
type PaymentService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	logger        *zap.Logger
}

func NewPaymentService(subscriptions repository.SubscriptionRepository, users repository.UserRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{subscriptions: subscriptions, users: users, logger: logger}
}

func (s *PaymentService) Plans() []models.Plan {
	return models.PlanCatalog
}

func (s *PaymentService) Subscribe(ctx context.Context, userID string, planID models.PremiumPlan, cycle models.BillingCycle) (*models.Subscription, error) {
	plan, ok := models.FindPlan(planID)
	if !ok {
		return nil, ErrUnknownPlan
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	price := plan.Price
	duration := 30 * 24 * time.Hour
	if cycle == models.BillingYearly {
		price = plan.YearlyPrice
		duration = 365 * 24 * time.Hour
	}

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	start := time.Now().UTC()
	end := start.Add(duration)
	sub := &models.Subscription{
		UserID:       uID,
		PlanID:       plan.ID,
		PlanName:     plan.Name,
		Price:        price,
		BillingCycle: cycle,
		Status:       models.SubscriptionActive,
		StartDate:    start,
		EndDate:      end,
		Features:     plan.Features,
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}

	u.IsPremium = true
	u.PremiumPlan = plan.ID
	u.PremiumExpiresAt = &end
	if err := s.users.Update(ctx, u); err != nil {
		s.logger.Warn("subscription saved but premium flag update failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	return sub, nil
}

func (s *PaymentService) Subscriptions(ctx context.Context, userID string) ([]*models.Subscription, error) {
	return s.subscriptions.ByUser(ctx, userID)
}

func (s *PaymentService) Cancel(ctx context.Context, userID, subscriptionID string) error {
	sub, err := s.subscriptions.FindByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.UserID.Hex() != userID {
		return ErrNotOwner
	}

	sub.Status = models.SubscriptionCancelled
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("subscription cancelled but user lookup failed",
			zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	u.IsPremium = false
	u.PremiumPlan = models.PlanFree
	u.PremiumExpiresAt = nil
	if err := s.users.Update(ctx, u); err != nil {
		s.logger.Warn("subscription cancelled but premium flag update failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}
