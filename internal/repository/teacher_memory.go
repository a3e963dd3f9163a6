package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amirsoft21/bementor/internal/models"
)

// MemoryTeacherRepo mirrors the Mongo teacher collection for development
// without a database. Same locking contract as MemoryUserRepo.
type MemoryTeacherRepo struct {
	mu     sync.RWMutex
	byID   map[string]*models.Teacher
	byUser map[string]*models.Teacher
}

func NewMemoryTeacherRepo() *MemoryTeacherRepo {
	return &MemoryTeacherRepo{
		byID:   make(map[string]*models.Teacher),
		byUser: make(map[string]*models.Teacher),
	}
}

func (r *MemoryTeacherRepo) Create(_ context.Context, t *models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt

	stored := *t
	r.byID[stored.ID.Hex()] = &stored
	r.byUser[stored.User.ID.Hex()] = &stored
	return nil
}

func (r *MemoryTeacherRepo) FindByID(_ context.Context, id string) (*models.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MemoryTeacherRepo) FindByUserID(_ context.Context, userID string) (*models.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MemoryTeacherRepo) Update(_ context.Context, t *models.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[t.ID.Hex()]; !ok {
		return ErrNotFound
	}
	t.UpdatedAt = time.Now().UTC()
	stored := *t
	r.byID[stored.ID.Hex()] = &stored
	r.byUser[stored.User.ID.Hex()] = &stored
	return nil
}

func (r *MemoryTeacherRepo) Search(_ context.Context, f TeacherFilter) ([]*models.Teacher, int64, error) {
	f.Normalize()

	r.mu.RLock()
	matched := make([]*models.Teacher, 0, len(r.byID))
	for _, t := range r.byID {
		if matchesFilter(t, f) {
			cp := *t
			matched = append(matched, &cp)
		}
	}
	r.mu.RUnlock()

	switch f.SortBy {
	case "price-low":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].HourlyRate < matched[j].HourlyRate })
	case "price-high":
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].HourlyRate > matched[j].HourlyRate })
	default:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Rating > matched[j].Rating })
	}

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start >= len(matched) {
		return []*models.Teacher{}, total, nil
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryTeacherRepo) Featured(_ context.Context, limit int) ([]*models.Teacher, error) {
	r.mu.RLock()
	featured := make([]*models.Teacher, 0)
	for _, t := range r.byID {
		if t.IsFeatured && t.IsActive {
			cp := *t
			featured = append(featured, &cp)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(featured, func(i, j int) bool { return featured[i].Rating > featured[j].Rating })
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

func matchesFilter(t *models.Teacher, f TeacherFilter) bool {
	if !t.IsActive {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.User.Name), needle) &&
			!containsFold(t.Subjects, needle) &&
			!strings.Contains(strings.ToLower(t.Bio), needle) {
			return false
		}
	}
	if f.Subject != "" && !containsExact(t.Subjects, f.Subject) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(t.User.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.MinPrice != nil && t.HourlyRate < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && t.HourlyRate > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && t.Rating < *f.MinRating {
		return false
	}
	return true
}

func containsFold(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func containsExact(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}
	return false
}
