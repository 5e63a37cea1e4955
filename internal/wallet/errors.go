package wallet

import "errors"

var (
	ErrNotFound        = errors.New("wallet not found")
	ErrInvalidName     = errors.New("wallet name is required")
	ErrInvalidType     = errors.New("invalid wallet type")
	ErrNegativeBalance = errors.New("balance cannot be negative")
	ErrSlugTaken       = errors.New("wallet slug already in use")
)
