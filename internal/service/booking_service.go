package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

type BookingService struct {
	bookings repository.BookingRepository
	users    repository.UserRepository
}

func NewBookingService(bookings repository.BookingRepository, users repository.UserRepository) *BookingService {
	return &BookingService{bookings: bookings, users: users}
}

type BookingInput struct {
	TeacherID   string
	Subject     string
	ScheduledAt time.Time
}

func (s *BookingService) Create(ctx context.Context, studentID string, in BookingInput) (*models.Booking, error) {
	teacher, err := s.users.FindByID(ctx, in.TeacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != models.RoleTeacher {
		return nil, repository.ErrNotFound
	}

	sID, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	b := &models.Booking{
		StudentID:   sID,
		TeacherID:   teacher.ID,
		Subject:     in.Subject,
		ScheduledAt: in.ScheduledAt.UTC(),
		Status:      models.BookingPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) List(ctx context.Context, userID string) ([]*models.Booking, error) {
	return s.bookings.ByUser(ctx, userID)
}
