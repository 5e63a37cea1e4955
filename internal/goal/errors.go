package goal

import "errors"

var (
	ErrNotFound      = errors.New("goal not found")
	ErrInvalidSlug   = errors.New("goal name is required")
	ErrInvalidTarget = errors.New("target amount must be greater than zero")
	ErrInvalidMonths = errors.New("target months must be greater than zero")
	ErrSlugTaken     = errors.New("goal slug already in use")
)
