package dates

import "time"

// Day returns the calendar day y-m-d at midnight UTC.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock part of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Day(y, m, d)
}

// AddYears moves t by whole calendar years. A day that does not exist in the
// target month is clamped to the month's last day, so Feb 29 plus one year
// lands on Feb 28.
func AddYears(t time.Time, years int) time.Time {
	y, m, d := t.Date()
	last := daysIn(y+years, m)
	if d > last {
		d = last
	}
	return Day(y+years, m, d)
}

// AddDays moves t by a fixed number of days.
func AddDays(t time.Time, days int) time.Time {
	return Truncate(t).AddDate(0, 0, days)
}

func daysIn(year int, month time.Month) int {
	return Day(year, month+1, 0).Day()
}
