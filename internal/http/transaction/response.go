package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/savr/internal/money"
	"github.com/MrJamesThe3rd/savr/internal/transaction"
)

type transactionResponse struct {
	ID                   uuid.UUID        `json:"id"`
	Type                 transaction.Type `json:"type"`
	Amount               decimal.Decimal  `json:"amount"`
	Category             string           `json:"category,omitempty"`
	Method               string           `json:"method,omitempty"`
	Notes                string           `json:"notes,omitempty"`
	WalletID             *uuid.UUID       `json:"wallet_id,omitempty"`
	TransferFromWalletID *uuid.UUID       `json:"transfer_from_wallet_id,omitempty"`
	TransferToWalletID   *uuid.UUID       `json:"transfer_to_wallet_id,omitempty"`
	GoalID               *uuid.UUID       `json:"goal_id,omitempty"`
	DebtID               *uuid.UUID       `json:"debt_id,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:                   tx.ID,
		Type:                 tx.Type,
		Amount:               money.ToDecimal(tx.Amount),
		Category:             tx.Category,
		Method:               tx.Method,
		Notes:                tx.Notes,
		WalletID:             tx.WalletID,
		TransferFromWalletID: tx.TransferFromWalletID,
		TransferToWalletID:   tx.TransferToWalletID,
		GoalID:               tx.GoalID,
		DebtID:               tx.DebtID,
		CreatedAt:            tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type totalsResponse struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}
