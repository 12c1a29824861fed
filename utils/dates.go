// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

func IsWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// AddBusinessDays advances a date by n weekdays, skipping weekends.
func AddBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if !IsWeekend(t) {
			n--
		}
	}
	return t
}

// DefaultDeliveryDate is the delivery date proposed for a new repair:
// four business days from now.
func DefaultDeliveryDate(now time.Time) time.Time {
	return BeginningOfDay(AddBusinessDays(now, 4))
}
