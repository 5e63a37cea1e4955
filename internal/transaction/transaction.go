package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Type is the closed set of ledger entry kinds.
type Type string

const (
	TypeIncome      Type = "income"
	TypeExpense     Type = "expense"
	TypeTransfer    Type = "transfer"
	TypeSavings     Type = "savings"
	TypeDebtPayment Type = "debt_payment"
)

func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer, TypeSavings, TypeDebtPayment:
		return true
	}

	return false
}

const (
	CategoryOpeningBalance = "Opening Balance"
	CategoryAdjustment     = "Balance Adjustment"
	CategoryDebtCreation   = "Debt Creation"
	CategoryLoanProceeds   = "Loan Proceeds"
	CategoryDebtPayment    = "Debt Payment"
)

// Transaction is an immutable ledger entry. Exactly one of WalletID or the
// transfer pair is set, depending on Type.
type Transaction struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	WalletID             *uuid.UUID
	TransferFromWalletID *uuid.UUID
	TransferToWalletID   *uuid.UUID
	GoalID               *uuid.UUID
	DebtID               *uuid.UUID
	Amount               int64 // Amount in centavos, always > 0
	Type                 Type
	Category             string
	Method               string
	Notes                string
	CreatedAt            time.Time

	// DebtSign is set on debt payments when they are written: -1 when the
	// user repays what they owe, +1 when they are repaid. It is stored with
	// the entry so history stays replayable after the debt is deleted.
	DebtSign int64
}

// Effect is a signed balance change applied to one wallet.
type Effect struct {
	WalletID uuid.UUID
	Delta    int64
}

// Effects lists the balance changes this entry causes. It is the single
// definition shared by the write path and by history replay, so both always
// agree on what a transaction does to a wallet.
func (t *Transaction) Effects() []Effect {
	switch t.Type {
	case TypeIncome:
		return single(t.WalletID, t.Amount)
	case TypeExpense, TypeSavings:
		return single(t.WalletID, -t.Amount)
	case TypeTransfer:
		var effects []Effect
		if t.TransferFromWalletID != nil {
			effects = append(effects, Effect{WalletID: *t.TransferFromWalletID, Delta: -t.Amount})
		}

		if t.TransferToWalletID != nil {
			effects = append(effects, Effect{WalletID: *t.TransferToWalletID, Delta: t.Amount})
		}

		return effects
	case TypeDebtPayment:
		if t.DebtSign != 1 && t.DebtSign != -1 {
			return nil
		}

		return single(t.WalletID, t.DebtSign*t.Amount)
	}

	return nil
}

// Touches reports whether the entry moves money in or out of walletID.
func (t *Transaction) Touches(walletID uuid.UUID) bool {
	for _, id := range []*uuid.UUID{t.WalletID, t.TransferFromWalletID, t.TransferToWalletID} {
		if id != nil && *id == walletID {
			return true
		}
	}

	return false
}

func single(walletID *uuid.UUID, delta int64) []Effect {
	if walletID == nil {
		return nil
	}

	return []Effect{{WalletID: *walletID, Delta: delta}}
}
