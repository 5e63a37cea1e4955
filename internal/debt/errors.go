package debt

import "errors"

var (
	ErrNotFound      = errors.New("debt not found")
	ErrInvalidName   = errors.New("debt name is required")
	ErrInvalidType   = errors.New("invalid debt type")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)
