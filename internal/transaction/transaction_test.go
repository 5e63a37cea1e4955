package transaction_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

func TestTransaction_Effects(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	loan := uuid.New()

	type testCase struct {
		name string
		tx   transaction.Transaction
		want []transaction.Effect
	}

	tests := []testCase{
		{
			name: "income",
			tx:   transaction.Transaction{Type: transaction.TypeIncome, WalletID: &a, Amount: 500},
			want: []transaction.Effect{{WalletID: a, Delta: 500}},
		},
		{
			name: "expense",
			tx:   transaction.Transaction{Type: transaction.TypeExpense, WalletID: &a, Amount: 500},
			want: []transaction.Effect{{WalletID: a, Delta: -500}},
		},
		{
			name: "savings deducts",
			tx:   transaction.Transaction{Type: transaction.TypeSavings, WalletID: &a, Amount: 70},
			want: []transaction.Effect{{WalletID: a, Delta: -70}},
		},
		{
			name: "transfer is zero sum",
			tx:   transaction.Transaction{Type: transaction.TypeTransfer, TransferFromWalletID: &a, TransferToWalletID: &b, Amount: 200},
			want: []transaction.Effect{{WalletID: a, Delta: -200}, {WalletID: b, Delta: 200}},
		},
		{
			name: "paying what you owe",
			tx:   transaction.Transaction{Type: transaction.TypeDebtPayment, WalletID: &a, DebtID: &loan, DebtSign: -1, Amount: 300},
			want: []transaction.Effect{{WalletID: a, Delta: -300}},
		},
		{
			name: "being repaid",
			tx:   transaction.Transaction{Type: transaction.TypeDebtPayment, WalletID: &a, DebtID: &loan, DebtSign: 1, Amount: 300},
			want: []transaction.Effect{{WalletID: a, Delta: 300}},
		},
		{
			name: "payment without a sign is skipped",
			tx:   transaction.Transaction{Type: transaction.TypeDebtPayment, WalletID: &a, DebtID: &loan, Amount: 300},
			want: nil,
		},
		{
			name: "no wallet",
			tx:   transaction.Transaction{Type: transaction.TypeIncome, Amount: 300},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tx.Effects())
		})
	}
}

func TestTransaction_Touches(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	tx := transaction.Transaction{Type: transaction.TypeTransfer, TransferFromWalletID: &a, TransferToWalletID: &b}

	assert.True(t, tx.Touches(a))
	assert.True(t, tx.Touches(b))
	assert.False(t, tx.Touches(c))
}
