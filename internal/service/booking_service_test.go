package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

func newBookingFixture(t *testing.T) (*BookingService, *models.User, *models.User) {
	t.Helper()
	users := repository.NewMemoryUserRepo()
	svc := NewBookingService(repository.NewMemoryBookingRepo(), users)

	student := &models.User{Name: "Student", Email: "s@example.com", Role: models.RoleStudent, IsActive: true}
	teacher := &models.User{Name: "Teacher", Email: "t@example.com", Role: models.RoleTeacher, IsActive: true}
	require.NoError(t, users.Create(context.Background(), student))
	require.NoError(t, users.Create(context.Background(), teacher))
	return svc, student, teacher
}

func TestCreateBookingPending(t *testing.T) {
	svc, student, teacher := newBookingFixture(t)
	when := time.Now().Add(48 * time.Hour)

	b, err := svc.Create(context.Background(), student.ID.Hex(), BookingInput{
		TeacherID:   teacher.ID.Hex(),
		Subject:     "Mathematics",
		ScheduledAt: when,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, student.ID, b.StudentID)
	assert.Equal(t, teacher.ID, b.TeacherID)
	assert.Equal(t, when.UTC(), b.ScheduledAt)
}

func TestCreateBookingRejectsNonTeacher(t *testing.T) {
	svc, student, _ := newBookingFixture(t)

	// booking another student is the same outcome as booking nobody
	_, err := svc.Create(context.Background(), student.ID.Hex(), BookingInput{
		TeacherID:   student.ID.Hex(),
		Subject:     "Mathematics",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Create(context.Background(), student.ID.Hex(), BookingInput{
		TeacherID:   primitive.NewObjectID().Hex(),
		Subject:     "Mathematics",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListBookingsEitherSide(t *testing.T) {
	svc, student, teacher := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, student.ID.Hex(), BookingInput{
		TeacherID:   teacher.ID.Hex(),
		Subject:     "Physics",
		ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	asStudent, err := svc.List(ctx, student.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, asStudent, 1)

	asTeacher, err := svc.List(ctx, teacher.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, asTeacher, 1)

	asStranger, err := svc.List(ctx, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Empty(t, asStranger)
}
