package activity

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeIncome       Type = "income"
	TypeExpense      Type = "expense"
	TypeSavings      Type = "savings"
	TypeTransfer     Type = "transfer"
	TypeImport       Type = "import"
	TypeWalletCreate Type = "wallet_create"
	TypeWalletUpdate Type = "wallet_update"
	TypeWalletDelete Type = "wallet_delete"
	TypeGoalCreate   Type = "goal_create"
	TypeGoalUpdate   Type = "goal_update"
	TypeGoalDelete   Type = "goal_delete"
	TypeDebtCreate   Type = "debt_create"
	TypeDebtUpdate   Type = "debt_update"
	TypeDebtDelete   Type = "debt_delete"
	TypeDebtPayment  Type = "debt_payment"
)

// Activity is a human readable feed entry written alongside a ledger change.
type Activity struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        Type
	Description string
	Amount      *int64
	RelatedID   *uuid.UUID
	CreatedAt   time.Time
}
