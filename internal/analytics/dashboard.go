package analytics

import (
	"time"

	"github.com/MrJamesThe3rd/savr/internal/debt"
	"github.com/MrJamesThe3rd/savr/internal/goal"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
	"github.com/MrJamesThe3rd/savr/internal/wallet"
)

// Snapshot is the slice of a user's ledger the figures are derived from.
type Snapshot struct {
	Wallets      []*wallet.Wallet
	Transactions []*transaction.Transaction
	Goals        []*goal.Goal
	Debts        []*debt.Debt
}

type GoalSummary struct {
	Slug      string
	Progress  float64
	Remaining int64
	Saved     int64
}

type DashboardStats struct {
	Wallets            []*wallet.Wallet
	TotalBalance       int64
	Month              PeriodTotals
	PreviousMonth      PeriodTotals
	Trends             Trends
	GoalProgress       []GoalSummary
	SpendingByCategory []CategoryAmount
	Week               WeekHistory
	Debts              debt.Summary
	Warnings           Warnings
}

// BuildDashboard derives every dashboard figure from s as of now.
func BuildDashboard(s Snapshot, now time.Time, loc *time.Location, topN int) *DashboardStats {
	txs := byTime(s.Transactions)

	var total int64
	for _, w := range s.Wallets {
		total += w.Balance
	}

	monthStart, monthEnd := monthWindow(now, loc)
	prevStart, prevEnd := previousMonthWindow(now, loc)

	month := SumPeriod(txs, monthStart, monthEnd)
	prev := SumPeriod(txs, prevStart, prevEnd)

	stats := &DashboardStats{
		Wallets:       s.Wallets,
		TotalBalance:  total,
		Month:         month,
		PreviousMonth: prev,
		Trends: Trends{
			Balance: Trend(total, total-month.Net()),
			Income:  Trend(month.Income, prev.Income),
			Expense: Trend(month.Expense, prev.Expense),
			Net:     Trend(month.Net(), prev.Net()),
		},
		GoalProgress:       make([]GoalSummary, 0, len(s.Goals)),
		SpendingByCategory: TopCategories(txs, monthStart, monthEnd, topN),
		Week:               WeekdayHistory(txs, sundayOf(now, loc), loc),
		Debts:              debt.Summarize(s.Debts),
		Warnings: ComputeWarnings(WarningParams{
			Month: month,
			Week:  SumPeriod(txs, now.Add(-7*day), now),
			Goals: s.Goals,
			Net:   NetAllTime(txs),
			Now:   now,
		}),
	}

	for _, g := range s.Goals {
		p := ComputeGoalProgress(g, txs, now)
		stats.GoalProgress = append(stats.GoalProgress, GoalSummary{
			Slug:      g.Slug,
			Progress:  p.ProgressPercentage,
			Remaining: p.Remaining,
			Saved:     p.Saved,
		})
	}

	return stats
}
