package analytics

import "errors"

var ErrInvalidPeriod = errors.New("period must be daily, weekly or monthly")
