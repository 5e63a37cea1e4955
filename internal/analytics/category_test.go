package analytics_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/savr/internal/analytics"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

func TestTopCategories(t *testing.T) {
	w := uuid.New()
	from, to := at(2025, 3, 1, 0), at(2025, 3, 31, 23)

	txs := []*transaction.Transaction{
		expense(w, 100, "Transport", at(2025, 3, 2, 9)),
		expense(w, 500, "Food", at(2025, 3, 3, 9)),
		expense(w, 100, "", at(2025, 3, 4, 9)),
		expense(w, 300, "Bills", at(2025, 3, 5, 9)),
		expense(w, 200, "Food", at(2025, 3, 6, 9)),
		income(w, 10_000, at(2025, 3, 7, 9)),
		expense(w, 9_000, "Rent", at(2025, 2, 28, 9)),
	}

	type testCase struct {
		name string
		n    int
		want []analytics.CategoryAmount
	}

	tests := []testCase{
		{
			name: "AllWithStableTies",
			n:    5,
			want: []analytics.CategoryAmount{
				{Label: "Food", Amount: 700},
				{Label: "Bills", Amount: 300},
				{Label: "Transport", Amount: 100},
				{Label: analytics.Uncategorized, Amount: 100},
			},
		},
		{
			name: "Truncated",
			n:    2,
			want: []analytics.CategoryAmount{
				{Label: "Food", Amount: 700},
				{Label: "Bills", Amount: 300},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analytics.TopCategories(txs, from, to, tt.n))
		})
	}
}

func TestTopCategories_Empty(t *testing.T) {
	assert.Empty(t, analytics.TopCategories(nil, at(2025, 3, 1, 0), at(2025, 3, 31, 0), 5))
}
