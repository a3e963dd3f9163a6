package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeacherUser is a denormalized snapshot of the owning user, embedded so
// directory listings and filters do not need a join.
type TeacherUser struct {
	ID       primitive.ObjectID `bson:"id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Location string             `bson:"location,omitempty" json:"location,omitempty"`
}

// Teacher is the directory profile, 1:1 with a User whose role is teacher.
// It is created empty at registration and only its owner may update it.
type Teacher struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            TeacherUser        `bson:"user" json:"user"`
	Subjects        []string           `bson:"subjects" json:"subjects"`
	Education       string             `bson:"education" json:"education"`
	Experience      string             `bson:"experience" json:"experience"`
	HourlyRate      float64            `bson:"hourly_rate" json:"hourlyRate"`
	Bio             string             `bson:"bio" json:"bio"`
	Availability    []string           `bson:"availability,omitempty" json:"availability,omitempty"`
	Languages       []string           `bson:"languages,omitempty" json:"languages,omitempty"`
	Specializations []string           `bson:"specializations,omitempty" json:"specializations,omitempty"`
	Achievements    []string           `bson:"achievements,omitempty" json:"achievements,omitempty"`
	Rating          float64            `bson:"rating" json:"rating"`
	ReviewCount     int                `bson:"review_count" json:"reviewCount"`
	IsFeatured      bool               `bson:"is_featured" json:"isFeatured"`
	IsVerified      bool               `bson:"is_verified" json:"isVerified"`
	IsActive        bool               `bson:"is_active" json:"-"`
	CreatedAt       time.Time          `bson:"created_at" json:"-"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"-"`
}

var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func ValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
