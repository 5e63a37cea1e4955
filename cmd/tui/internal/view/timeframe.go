package view

import (
	"time"
)

// Timeframe represents a predefined date range selection.
type Timeframe int

const (
	TimeframeAll Timeframe = iota
	TimeframeThisWeek
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	timeframeCount
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisWeek:
		return "This Week"
	case TimeframeLastWeek:
		return "Last Week"
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeAll:
		return "All Time"
	}

	return "Unknown"
}

func (t Timeframe) Next() Timeframe {
	return (t + 1) % timeframeCount
}

// Range returns the inclusive bounds of the timeframe around now, in loc.
// Weeks start on Monday. TimeframeAll has no bounds.
func (t Timeframe) Range(now time.Time, loc *time.Location) (*time.Time, *time.Time) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	var start, end time.Time

	switch t {
	case TimeframeThisWeek:
		start, end = monday, monday.AddDate(0, 0, 7)
	case TimeframeLastWeek:
		start, end = monday.AddDate(0, 0, -7), monday
	case TimeframeThisMonth:
		start, end = firstOfMonth, firstOfMonth.AddDate(0, 1, 0)
	case TimeframeLastMonth:
		start, end = firstOfMonth.AddDate(0, -1, 0), firstOfMonth
	default:
		return nil, nil
	}

	return &start, new(end.Add(-time.Nanosecond))
}
