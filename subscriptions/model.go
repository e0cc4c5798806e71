package subscriptions

import (
	"time"

	"clubreg-backend/ages"
)

// Plan types. Anything else is billed as a full year.
const (
	TypeYearly   = "yearly"
	TypeHalfYear = "half-year"
	TypeQuarter  = "quarter"
	TypeMonth    = "month"
)

// Payment lifecycle of a subscription.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Plan is a priced, time-bounded membership offering tied to one discipline.
// AgeGroup is the explicit eligibility attribute; rows seeded before the
// column existed leave it empty and fall back to the name-token match.
type Plan struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	SeasonLabel  string     `json:"season_label"`
	Price        float64    `json:"price"`
	DisciplineID int        `json:"discipline_id"`
	AgeGroup     ages.Group `json:"age_group"`
	Active       bool       `json:"active"`
}

// Subscription captures the plan's season label, type and price at creation
// time; it is never re-read from the plan at renewal.
type Subscription struct {
	ID              int       `json:"id"`
	MemberID        int       `json:"member_id"`
	PlanID          int       `json:"plan_id"`
	SeasonLabel     string    `json:"season_label"`
	Type            string    `json:"type"`
	Price           float64   `json:"price"`
	PaymentStatus   string    `json:"payment_status"`
	PaymentMethod   string    `json:"payment_method"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	IdempotencyKey  string    `json:"-"`
	StripeSessionID string    `json:"-"`
}

// EndDateFor returns the coverage end for a plan type starting at start:
// one year for yearly, six months for half-year, three for quarter, one for
// month. Unrecognized types default to a year.
func EndDateFor(planType string, start time.Time) time.Time {
	switch planType {
	case TypeHalfYear:
		return start.AddDate(0, 6, 0)
	case TypeQuarter:
		return start.AddDate(0, 3, 0)
	case TypeMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(1, 0, 0)
	}
}
