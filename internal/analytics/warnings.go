package analytics

import (
	"time"

	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

// Pace thresholds relative to a goal's required daily savings.
const (
	aheadFactor  = 1.1
	behindFactor = 0.9
)

type Warnings struct {
	Overspending bool
	GoalAchieved bool
	Ahead        bool
	Behind       bool
}

type WarningParams struct {
	Month PeriodTotals
	// Week covers the trailing seven days.
	Week  PeriodTotals
	Goals []*goal.Goal
	// Net is all-time income minus expense across every wallet.
	Net int64
	Now time.Time
}

// ComputeWarnings flags overspending in the month or trailing week and
// compares the global savings pace against each goal. Each goal flag is
// set when any goal matches.
func ComputeWarnings(p WarningParams) Warnings {
	w := Warnings{
		Overspending: p.Month.Expense > p.Month.Income || p.Week.Expense > p.Week.Income,
	}

	for _, g := range p.Goals {
		if p.Net >= g.TargetAmount {
			w.GoalAchieved = true
		}

		avg := float64(p.Net) / float64(daysSince(g.Anchor(), p.Now))

		if avg >= g.RequiredDailySavings*aheadFactor {
			w.Ahead = true
		}

		if avg < g.RequiredDailySavings*behindFactor {
			w.Behind = true
		}
	}

	return w
}

// NetAllTime is total income minus total expense over the whole history.
func NetAllTime(txs []*transaction.Transaction) int64 {
	var net int64

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			net += tx.Amount
		case transaction.TypeExpense:
			net -= tx.Amount
		}
	}

	return net
}
