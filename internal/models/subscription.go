package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a mock payment record; no real billing happens.
type Subscription struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	PlanID       PremiumPlan        `bson:"plan_id" json:"planId"`
	PlanName     string             `bson:"plan_name" json:"planName"`
	Price        float64            `bson:"price" json:"price"`
	BillingCycle BillingCycle       `bson:"billing_cycle" json:"billingCycle"`
	Status       SubscriptionStatus `bson:"status" json:"status"`
	StartDate    time.Time          `bson:"start_date" json:"startDate"`
	EndDate      time.Time          `bson:"end_date" json:"endDate"`
	Features     []string           `bson:"features" json:"features"`
}

// Plan describes a purchasable tier in the static catalog.
type Plan struct {
	ID          PremiumPlan `json:"id"`
	Name        string      `json:"name"`
	Price       float64     `json:"price"`
	YearlyPrice float64     `json:"yearlyPrice,omitempty"`
	Features    []string    `json:"features"`
}

// PlanCatalog mirrors the marketing tiers shown on the pricing page.
var PlanCatalog = []Plan{
	{
		ID:       PlanFree,
		Name:     "Free",
		Price:    0,
		Features: []string{"5 teachers per month", "Basic support", "Chat"},
	},
	{
		ID:          PlanPremium,
		Name:        "Premium",
		Price:       9.99,
		YearlyPrice: 99,
		Features:    []string{"Unlimited teachers", "Priority support", "Video calls"},
	},
	{
		ID:          PlanProfessional,
		Name:        "Professional",
		Price:       19.99,
		YearlyPrice: 199,
		Features:    []string{"All Premium features", "Personal manager", "Special rates"},
	},
}

// FindPlan returns a purchasable (paid) plan by id.
func FindPlan(id PremiumPlan) (Plan, bool) {
	for _, p := range PlanCatalog {
		if p.ID == id && p.ID != PlanFree {
			return p, true
		}
	}
	return Plan{}, false
}
