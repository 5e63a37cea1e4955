package analytics

import (
	"time"

	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

// PeriodTotals sums entries by type over a time window. Savings and debt
// payments are not counted as income or expense.
type PeriodTotals struct {
	Income   int64
	Expense  int64
	Transfer int64
}

func (p PeriodTotals) Net() int64 {
	return p.Income - p.Expense
}

// SumPeriod totals the entries created inside [from, to].
func SumPeriod(txs []*transaction.Transaction, from, to time.Time) PeriodTotals {
	var p PeriodTotals

	for _, tx := range txs {
		if !within(tx.CreatedAt, from, to) {
			continue
		}

		switch tx.Type {
		case transaction.TypeIncome:
			p.Income += tx.Amount
		case transaction.TypeExpense:
			p.Expense += tx.Amount
		case transaction.TypeTransfer:
			p.Transfer += tx.Amount
		}
	}

	return p
}

// Trend is the percentage change from prev to cur. A move away from a zero
// baseline reads as 100.
func Trend(cur, prev int64) float64 {
	if prev == 0 {
		if cur > 0 {
			return 100
		}

		return 0
	}

	return float64(cur-prev) / float64(prev) * 100
}

type Trends struct {
	// Balance compares the current total against the total minus this
	// month's net, which ignores transfers and savings.
	Balance float64
	Income  float64
	Expense float64
	Net     float64
}

// DayAmount is one weekday bucket. Day is the three-letter English
// abbreviation.
type DayAmount struct {
	Day    string
	Amount int64
}

type WeekHistory struct {
	Spending []DayAmount
	Income   []DayAmount
	Transfer []DayAmount
}

// WeekdayHistory buckets the entries of the week starting at weekStart
// (a Sunday) by weekday, Sunday first.
func WeekdayHistory(txs []*transaction.Transaction, weekStart time.Time, loc *time.Location) WeekHistory {
	var spending, income, transfer [7]int64

	weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond)

	for _, tx := range txs {
		if !within(tx.CreatedAt, weekStart, weekEnd) {
			continue
		}

		wd := tx.CreatedAt.In(loc).Weekday()

		switch tx.Type {
		case transaction.TypeExpense:
			spending[wd] += tx.Amount
		case transaction.TypeIncome:
			income[wd] += tx.Amount
		case transaction.TypeTransfer:
			transfer[wd] += tx.Amount
		}
	}

	return WeekHistory{
		Spending: days(spending),
		Income:   days(income),
		Transfer: days(transfer),
	}
}

func days(amounts [7]int64) []DayAmount {
	out := make([]DayAmount, 7)
	for i, a := range amounts {
		out[i] = DayAmount{Day: time.Weekday(i).String()[:3], Amount: a}
	}

	return out
}
