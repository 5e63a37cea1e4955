package analytics

import (
	"math"
	"time"
)

const day = 24 * time.Hour

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// monthWindow returns the first and last instant of the calendar month
// containing t.
func monthWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)

	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// previousMonthWindow steps back one calendar month from the first of the
// current month, so January rolls over to December of the previous year.
func previousMonthWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	start, _ := monthWindow(now, loc)
	return monthWindow(start.AddDate(0, -1, 0), loc)
}

// sundayOf returns Sunday 00:00 of the week containing t.
func sundayOf(t time.Time, loc *time.Location) time.Time {
	d := startOfDay(t, loc)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// mondayOf returns Monday 00:00 of the ISO week containing t.
func mondayOf(t time.Time, loc *time.Location) time.Time {
	d := startOfDay(t, loc)
	offset := (int(d.Weekday()) + 6) % 7

	return d.AddDate(0, 0, -offset)
}

// ceilDays rounds a duration up to whole days. Negative durations round
// toward zero.
func ceilDays(d time.Duration) int64 {
	return int64(math.Ceil(float64(d) / float64(day)))
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
