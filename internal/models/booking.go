package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID   primitive.ObjectID `bson:"student_id" json:"studentId"`
	TeacherID   primitive.ObjectID `bson:"teacher_id" json:"teacherId"`
	Subject     string             `bson:"subject" json:"subject"`
	ScheduledAt time.Time          `bson:"scheduled_at" json:"scheduledAt"`
	Status      BookingStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
