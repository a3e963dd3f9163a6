package repository

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amirsoft21/bementor/internal/models"
)

type MemorySubscriptionRepo struct {
	mu   sync.RWMutex
	byID map[string]*models.Subscription
}

func NewMemorySubscriptionRepo() *MemorySubscriptionRepo {
	return &MemorySubscriptionRepo{byID: make(map[string]*models.Subscription)}
}

func (r *MemorySubscriptionRepo) Create(_ context.Context, s *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	stored := *s
	r.byID[stored.ID.Hex()] = &stored
	return nil
}

func (r *MemorySubscriptionRepo) FindByID(_ context.Context, id string) (*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *MemorySubscriptionRepo) ByUser(_ context.Context, userID string) ([]*models.Subscription, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Subscription, 0)
	for _, s := range r.byID {
		if s.UserID == objID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *MemorySubscriptionRepo) Update(_ context.Context, s *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[s.ID.Hex()]; !ok {
		return ErrNotFound
	}
	stored := *s
	r.byID[stored.ID.Hex()] = &stored
	return nil
}
