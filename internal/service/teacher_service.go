package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/auth"
	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

const featuredLimit = 6

type TeacherService struct {
	teachers repository.TeacherRepository
	logger   *zap.Logger
}

func NewTeacherService(teachers repository.TeacherRepository, logger *zap.Logger) *TeacherService {
	return &TeacherService{teachers: teachers, logger: logger}
}

type Pagination struct {
	Current int  `json:"current"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

func (s *TeacherService) Search(ctx context.Context, f repository.TeacherFilter) ([]*models.Teacher, int64, Pagination, error) {
	f.Normalize()
	teachers, total, err := s.teachers.Search(ctx, f)
	if err != nil {
		return nil, 0, Pagination{}, err
	}
	pages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	p := Pagination{
		Current: f.Page,
		Pages:   pages,
		HasNext: f.Page < pages,
		HasPrev: f.Page > 1,
	}
	return teachers, total, p, nil
}

func (s *TeacherService) Featured(ctx context.Context) ([]*models.Teacher, error) {
	return s.teachers.Featured(ctx, featuredLimit)
}

func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	return s.teachers.FindByID(ctx, id)
}

type TeacherInput struct {
	Subjects        []string
	Education       *string
	Experience      *string
	HourlyRate      *float64
	Bio             *string
	Availability    []string
	Languages       []string
	Specializations []string
	Achievements    []string
}

// CreateProfile fills in the profile created empty at registration. It is
// rejected when the caller already completed one.
func (s *TeacherService) CreateProfile(ctx context.Context, ident *auth.Identity, in TeacherInput) (*models.Teacher, error) {
	existing, err := s.teachers.FindByUserID(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	if len(existing.Subjects) > 0 {
		return nil, ErrProfileExists
	}
	applyTeacherInput(existing, in)
	if err := s.teachers.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// UpdateProfile is owner-only, enforced by identity comparison.
func (s *TeacherService) UpdateProfile(ctx context.Context, ident *auth.Identity, teacherID string, in TeacherInput) (*models.Teacher, error) {
	t, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if t.User.ID.Hex() != ident.ID {
		return nil, ErrNotOwner
	}
	applyTeacherInput(t, in)
	if err := s.teachers.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func applyTeacherInput(t *models.Teacher, in TeacherInput) {
	if in.Subjects != nil {
		t.Subjects = in.Subjects
	}
	if in.Education != nil {
		t.Education = *in.Education
	}
	if in.Experience != nil {
		t.Experience = *in.Experience
	}
	if in.HourlyRate != nil {
		t.HourlyRate = *in.HourlyRate
	}
	if in.Bio != nil {
		t.Bio = *in.Bio
	}
	if in.Availability != nil {
		t.Availability = in.Availability
	}
	if in.Languages != nil {
		t.Languages = in.Languages
	}
	if in.Specializations != nil {
		t.Specializations = in.Specializations
	}
	if in.Achievements != nil {
		t.Achievements = in.Achievements
	}
}
