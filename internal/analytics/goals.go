package analytics

import (
	"math"
	"time"

	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

type Feasibility struct {
	DaysLeft                 int64
	RequiredDaily            float64
	RemainingRequiredSavings int64
	Feasible                 bool
}

type GoalProgress struct {
	GoalID             string
	Slug               string
	TotalIncomeLogged  int64
	TotalExpenseLogged int64
	// NetSavings is contributions minus withdrawals and may be negative.
	NetSavings int64
	// Saved is NetSavings floored at zero.
	Saved              int64
	Remaining          int64
	ProgressPercentage float64
	// ProjectedCompletionDate extrapolates the average daily net savings.
	// It is nil when that average is not positive and is now, never a past
	// date, once the target is already met.
	ProjectedCompletionDate *time.Time
	Feasibility             Feasibility
}

// ComputeGoalProgress measures g against the entries tagged to it.
// Income and transfers count as contributions, expenses as withdrawals.
// Savings entries and entries of other goals are ignored.
func ComputeGoalProgress(g *goal.Goal, txs []*transaction.Transaction, now time.Time) *GoalProgress {
	p := &GoalProgress{
		GoalID: g.ID.String(),
		Slug:   g.Slug,
	}

	for _, tx := range txs {
		if tx.GoalID == nil || *tx.GoalID != g.ID {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome, transaction.TypeTransfer:
			p.TotalIncomeLogged += tx.Amount
		case transaction.TypeExpense:
			p.TotalExpenseLogged += tx.Amount
		}
	}

	p.NetSavings = p.TotalIncomeLogged - p.TotalExpenseLogged
	p.Saved = max(0, p.NetSavings)
	p.Remaining = max(0, g.TargetAmount-p.Saved)
	p.ProgressPercentage = percentOf(p.Saved, g.TargetAmount)

	if avg := float64(p.NetSavings) / float64(daysSince(g.Anchor(), now)); avg > 0 {
		needed := max(0, int64(math.Ceil(float64(g.TargetAmount-p.Saved)/avg)))
		p.ProjectedCompletionDate = new(now.Add(time.Duration(needed) * day))
	}

	daysLeft := max(0, ceilDays(g.Deadline.Sub(now)))
	p.Feasibility = Feasibility{
		DaysLeft:                 daysLeft,
		RequiredDaily:            g.RequiredDailySavings,
		RemainingRequiredSavings: p.Remaining,
		Feasible:                 float64(p.Remaining) <= float64(daysLeft)*g.RequiredDailySavings,
	}

	return p
}

// percentOf is saved as a share of target, capped at 100. A zero target is
// already met.
func percentOf(saved, target int64) float64 {
	if target <= 0 {
		return 100
	}

	return min(100, float64(saved)/float64(target)*100)
}

// daysSince counts elapsed whole days, rounded up, never less than one.
func daysSince(anchor, now time.Time) int64 {
	return max(1, ceilDays(now.Sub(anchor)))
}
