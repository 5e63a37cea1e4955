package transaction

import "errors"

var (
	ErrNotFound          = errors.New("transaction not found")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrGoalNotFound      = errors.New("goal not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrWalletRequired    = errors.New("wallet is required")
	ErrTransferWallets   = errors.New("transfer requires distinct from and to wallets")
)
