package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

type PremiumPlan string

const (
	PlanFree         PremiumPlan = "free"
	PlanPremium      PremiumPlan = "premium"
	PlanProfessional PremiumPlan = "professional"
)

const DefaultAvatar = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face"

// User is the credential + profile record. Email is unique and stored
// lowercased; the password hash never leaves the server.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"password_hash" json:"-"`
	Role             Role               `bson:"role" json:"role"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location         string             `bson:"location,omitempty" json:"location,omitempty"`
	Avatar           string             `bson:"avatar" json:"avatar"`
	Bio              string             `bson:"bio,omitempty" json:"bio,omitempty"`
	IsVerified       bool               `bson:"is_verified" json:"isVerified"`
	IsPremium        bool               `bson:"is_premium" json:"isPremium"`
	PremiumPlan      PremiumPlan        `bson:"premium_plan" json:"premiumPlan"`
	PremiumExpiresAt *time.Time         `bson:"premium_expires_at,omitempty" json:"premiumExpiresAt,omitempty"`
	LastLogin        *time.Time         `bson:"last_login,omitempty" json:"-"`
	IsActive         bool               `bson:"is_active" json:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"-"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"-"`
}

// PublicUser is the transport shape returned on auth success paths.
type PublicUser struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Avatar      string      `json:"avatar"`
	IsPremium   bool        `json:"isPremium"`
	PremiumPlan PremiumPlan `json:"premiumPlan"`
}

// ProfileUser extends PublicUser with the fields exposed on /me.
type ProfileUser struct {
	PublicUser
	Phone      string `json:"phone,omitempty"`
	Location   string `json:"location,omitempty"`
	Bio        string `json:"bio,omitempty"`
	IsVerified bool   `json:"isVerified"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Avatar:      u.Avatar,
		IsPremium:   u.IsPremium,
		PremiumPlan: u.PremiumPlan,
	}
}

func (u *User) Profile() ProfileUser {
	return ProfileUser{
		PublicUser: u.Public(),
		Phone:      u.Phone,
		Location:   u.Location,
		Bio:        u.Bio,
		IsVerified: u.IsVerified,
	}
}

func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}
