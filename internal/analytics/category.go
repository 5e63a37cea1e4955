package analytics

import (
	"slices"
	"time"

	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

const Uncategorized = "Uncategorized"

type CategoryAmount struct {
	Label  string
	Amount int64
}

// TopCategories ranks expense categories inside [from, to] by total spent
// and keeps the first n. Ties keep the order in which categories first
// appear in txs.
func TopCategories(txs []*transaction.Transaction, from, to time.Time, n int) []CategoryAmount {
	index := make(map[string]int)
	var totals []CategoryAmount

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense || !within(tx.CreatedAt, from, to) {
			continue
		}

		label := tx.Category
		if label == "" {
			label = Uncategorized
		}

		i, ok := index[label]
		if !ok {
			i = len(totals)
			index[label] = i
			totals = append(totals, CategoryAmount{Label: label})
		}

		totals[i].Amount += tx.Amount
	}

	slices.SortStableFunc(totals, func(a, b CategoryAmount) int {
		switch {
		case a.Amount > b.Amount:
			return -1
		case a.Amount < b.Amount:
			return 1
		}

		return 0
	})

	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}

	return totals
}
