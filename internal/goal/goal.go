package goal

import (
	"time"

	"github.com/google/uuid"
)

// Average calendar lengths used to spread a monthly requirement.
const (
	WeeksPerMonth = 4.345
	DaysPerMonth  = 30.437
)

// Goal is a savings target. The required savings rates and the deadline are
// derived once when the goal is written and are only read afterwards.
type Goal struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	Slug                   string
	TargetAmount           int64
	TargetMonths           int
	StartDate              *time.Time
	RequiredMonthlySavings float64
	RequiredWeeklySavings  float64
	RequiredDailySavings   float64
	Deadline               time.Time
	CreatedAt              time.Time
}

// Anchor is the instant progress is measured from.
func (g *Goal) Anchor() time.Time {
	if g.StartDate != nil {
		return *g.StartDate
	}

	return g.CreatedAt
}

type Required struct {
	Monthly  float64
	Weekly   float64
	Daily    float64
	Deadline time.Time
}

// ComputeRequired spreads target evenly over months calendar months
// starting at start. months must be positive.
func ComputeRequired(target int64, months int, start time.Time) Required {
	t := float64(target)
	m := float64(months)

	return Required{
		Monthly:  t / m,
		Weekly:   t / (m * WeeksPerMonth),
		Daily:    t / (m * DaysPerMonth),
		Deadline: start.AddDate(0, months, 0),
	}
}

func (g *Goal) apply(r Required) {
	g.RequiredMonthlySavings = r.Monthly
	g.RequiredWeeklySavings = r.Weekly
	g.RequiredDailySavings = r.Daily
	g.Deadline = r.Deadline
}
