package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/amirsoft21/bementor/internal/auth"
	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func newTeacherFixture(t *testing.T, repo *repository.MemoryTeacherRepo, name string, rate float64) *models.Teacher {
	t.Helper()
	teacher := &models.Teacher{
		User:       models.TeacherUser{ID: primitive.NewObjectID(), Name: name},
		Subjects:   []string{"Mathematics"},
		HourlyRate: rate,
		Rating:     4,
		IsActive:   true,
	}
	require.NoError(t, repo.Create(context.Background(), teacher))
	return teacher
}

func TestTeacherSearchPaginationEnvelope(t *testing.T) {
	repo := repository.NewMemoryTeacherRepo()
	svc := NewTeacherService(repo, zap.NewNop())
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		newTeacherFixture(t, repo, name, float64(10+i))
	}

	teachers, total, page, err := svc.Search(context.Background(), repository.TeacherFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, teachers, 2)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, Pagination{Current: 2, Pages: 3, HasNext: true, HasPrev: true}, page)
}

func TestTeacherSearchLastPage(t *testing.T) {
	repo := repository.NewMemoryTeacherRepo()
	svc := NewTeacherService(repo, zap.NewNop())
	for _, name := range []string{"A", "B", "C"} {
		newTeacherFixture(t, repo, name, 20)
	}

	teachers, _, page, err := svc.Search(context.Background(), repository.TeacherFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, teachers, 1)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestCreateProfileFillsEmptyProfile(t *testing.T) {
	repo := repository.NewMemoryTeacherRepo()
	svc := NewTeacherService(repo, zap.NewNop())
	ctx := context.Background()

	userID := primitive.NewObjectID()
	require.NoError(t, repo.Create(ctx, &models.Teacher{
		User:     models.TeacherUser{ID: userID, Name: "Tess"},
		Subjects: []string{},
		IsActive: true,
	}))

	ident := &auth.Identity{ID: userID.Hex(), Role: models.RoleTeacher}
	got, err := svc.CreateProfile(ctx, ident, TeacherInput{
		Subjects:   []string{"Physics"},
		Education:  strPtr("MSc Physics"),
		Experience: strPtr("5 years"),
		Bio:        strPtr("Mechanics and optics"),
		HourlyRate: floatPtr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Physics"}, got.Subjects)
	assert.Equal(t, 45.0, got.HourlyRate)

	// second completion attempt is refused
	_, err = svc.CreateProfile(ctx, ident, TeacherInput{Subjects: []string{"Chemistry"}})
	assert.ErrorIs(t, err, ErrProfileExists)
}

func TestCreateProfileWithoutRegistration(t *testing.T) {
	svc := NewTeacherService(repository.NewMemoryTeacherRepo(), zap.NewNop())

	ident := &auth.Identity{ID: primitive.NewObjectID().Hex(), Role: models.RoleTeacher}
	_, err := svc.CreateProfile(context.Background(), ident, TeacherInput{Subjects: []string{"Physics"}})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	repo := repository.NewMemoryTeacherRepo()
	svc := NewTeacherService(repo, zap.NewNop())
	ctx := context.Background()

	teacher := newTeacherFixture(t, repo, "Tess", 30)

	owner := &auth.Identity{ID: teacher.User.ID.Hex(), Role: models.RoleTeacher}
	got, err := svc.UpdateProfile(ctx, owner, teacher.ID.Hex(), TeacherInput{HourlyRate: floatPtr(55)})
	require.NoError(t, err)
	assert.Equal(t, 55.0, got.HourlyRate)

	stranger := &auth.Identity{ID: primitive.NewObjectID().Hex(), Role: models.RoleTeacher}
	_, err = svc.UpdateProfile(ctx, stranger, teacher.ID.Hex(), TeacherInput{HourlyRate: floatPtr(1)})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateProfilePartialInput(t *testing.T) {
	repo := repository.NewMemoryTeacherRepo()
	svc := NewTeacherService(repo, zap.NewNop())
	ctx := context.Background()

	teacher := newTeacherFixture(t, repo, "Tess", 30)
	owner := &auth.Identity{ID: teacher.User.ID.Hex(), Role: models.RoleTeacher}

	got, err := svc.UpdateProfile(ctx, owner, teacher.ID.Hex(), TeacherInput{Bio: strPtr("Updated bio")})
	require.NoError(t, err)
	assert.Equal(t, "Updated bio", got.Bio)
	assert.Equal(t, 30.0, got.HourlyRate)
	assert.Equal(t, []string{"Mathematics"}, got.Subjects)
}
