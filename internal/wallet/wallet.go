package wallet

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeCash    Type = "cash"
	TypeBank    Type = "bank"
	TypeEWallet Type = "e_wallet"
	TypeCustom  Type = "custom"
)

func (t Type) Valid() bool {
	switch t {
	case TypeCash, TypeBank, TypeEWallet, TypeCustom:
		return true
	}

	return false
}

// Wallet is a named store of funds. Balance is in centavos and only changes
// through ledger entries.
type Wallet struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Slug      string
	Name      string
	Type      Type
	Balance   int64
	CreatedAt time.Time
}
