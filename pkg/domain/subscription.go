package domain

import (
	"strings"
	"time"
)

// Subscription statuses reported by the backend.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
	SubscriptionPending   = "pending"
)

// Plan is an entry of the subscription catalogue.
type Plan struct {
	ID           FlexibleID `json:"id"`
	Product      string     `json:"product"`
	Slug         string     `json:"slug,omitempty"`
	Name         string     `json:"name"`
	MonthlyPrice float64    `json:"monthlyPrice"`
	YearlyPrice  float64    `json:"yearlyPrice"`
	Currency     string     `json:"currency,omitempty"`
	Features     []string   `json:"features,omitempty"`
}

// Key is the plan identifier sent to /payments/create-order.
func (p Plan) Key() string {
	if p.Slug != "" {
		return p.Slug
	}
	return strings.ToLower(p.Name)
}

// Price returns the plan price for a billing cycle.
func (p Plan) Price(cycle string) float64 {
	if cycle == BillingYearly {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}

// Subscription is a purchased plan.
type Subscription struct {
	ID                FlexibleID `json:"id"`
	Product           string     `json:"product"`
	Plan              string     `json:"plan"`
	BillingCycle      string     `json:"billingCycle"`
	Status            string     `json:"status"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd,omitempty"`
	CurrentPeriodEnd  *time.Time `json:"currentPeriodEnd,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// Cancellable reports whether a cancel request makes sense.
func (s Subscription) Cancellable() bool {
	return s.Status == SubscriptionActive && !s.CancelAtPeriodEnd
}

// Reactivatable reports whether a reactivate request makes sense.
func (s Subscription) Reactivatable() bool {
	return s.Status == SubscriptionCancelled || s.CancelAtPeriodEnd
}
