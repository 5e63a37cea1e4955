package debt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/savr/internal/debt"
)

func TestDebt_Pay(t *testing.T) {
	type testCase struct {
		name          string
		remaining     int64
		amount        int64
		wantRemaining int64
		wantStatus    debt.Status
	}

	tests := []testCase{
		{name: "partial", remaining: 1000, amount: 300, wantRemaining: 700, wantStatus: debt.StatusActive},
		{name: "exact", remaining: 1000, amount: 1000, wantRemaining: 0, wantStatus: debt.StatusPaid},
		{name: "overpay clamps", remaining: 1000, amount: 5000, wantRemaining: 0, wantStatus: debt.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &debt.Debt{TotalAmount: 1000, RemainingAmount: tt.remaining, Status: debt.StatusActive}
			d.Pay(tt.amount)

			assert.Equal(t, tt.wantRemaining, d.RemainingAmount)
			assert.Equal(t, tt.wantStatus, d.Status)
		})
	}
}

func TestDebt_SetTotal(t *testing.T) {
	type testCase struct {
		name          string
		debt          debt.Debt
		total         int64
		wantRemaining int64
		wantStatus    debt.Status
	}

	tests := []testCase{
		{
			name:          "increase shifts remaining",
			debt:          debt.Debt{TotalAmount: 1000, RemainingAmount: 400, Status: debt.StatusActive},
			total:         1500,
			wantRemaining: 900,
			wantStatus:    debt.StatusActive,
		},
		{
			name:          "decrease below paid settles",
			debt:          debt.Debt{TotalAmount: 1000, RemainingAmount: 400, Status: debt.StatusActive},
			total:         500,
			wantRemaining: 0,
			wantStatus:    debt.StatusPaid,
		},
		{
			name:          "paid debt reopens",
			debt:          debt.Debt{TotalAmount: 1000, RemainingAmount: 0, Status: debt.StatusPaid},
			total:         1200,
			wantRemaining: 200,
			wantStatus:    debt.StatusActive,
		},
		{
			name:          "defaulted stays defaulted",
			debt:          debt.Debt{TotalAmount: 1000, RemainingAmount: 800, Status: debt.StatusDefaulted},
			total:         1100,
			wantRemaining: 900,
			wantStatus:    debt.StatusDefaulted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.debt
			d.SetTotal(tt.total)

			assert.Equal(t, tt.total, d.TotalAmount)
			assert.Equal(t, tt.wantRemaining, d.RemainingAmount)
			assert.Equal(t, tt.wantStatus, d.Status)
		})
	}
}

func TestType_Sign(t *testing.T) {
	assert.Equal(t, int64(-1), debt.TypeOwedByYou.Sign())
	assert.Equal(t, int64(1), debt.TypeOwedToYou.Sign())
}

func TestSummarize(t *testing.T) {
	debts := []*debt.Debt{
		{Type: debt.TypeOwedToYou, RemainingAmount: 500, Status: debt.StatusActive},
		{Type: debt.TypeOwedToYou, RemainingAmount: 250, Status: debt.StatusActive},
		{Type: debt.TypeOwedByYou, RemainingAmount: 1000, Status: debt.StatusActive},
		{Type: debt.TypeOwedByYou, RemainingAmount: 0, Status: debt.StatusPaid},
		{Type: debt.TypeOwedToYou, RemainingAmount: 9999, Status: debt.StatusDefaulted},
	}

	assert.Equal(t, debt.Summary{ActiveCount: 3, TotalOwedToYou: 750, TotalOwedByYou: 1000}, debt.Summarize(debts))
	assert.Equal(t, debt.Summary{}, debt.Summarize(nil))
}
