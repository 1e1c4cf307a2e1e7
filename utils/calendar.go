package utils

import "time"

// DayFormat is the canonical UTC calendar day layout. Lexicographic order of
// day strings in this format equals chronological order.
const DayFormat = "2006-01-02"

// nowFunc supplies wall-clock time. Tests swap it to freeze "now".
var nowFunc = time.Now

// SetNowFunc replaces the clock used for day and timestamp computation and
// returns a function that restores the previous clock.
func SetNowFunc(f func() time.Time) func() {
	prev := nowFunc
	nowFunc = f
	return func() { nowFunc = prev }
}

// CurrentDay returns the current UTC calendar day as YYYY-MM-DD.
func CurrentDay() string {
	return nowFunc().UTC().Format(DayFormat)
}

// DayRange returns the n consecutive UTC calendar days ending today, oldest
// first unless newestFirst is set. n must be >= 1; callers short-circuit
// non-positive windows before calling.
func DayRange(n int, newestFirst bool) []string {
	today := nowFunc().UTC()
	days := make([]string, 0, n)
	if newestFirst {
		for i := 0; i < n; i++ {
			days = append(days, today.AddDate(0, 0, -i).Format(DayFormat))
		}
		return days
	}
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i).Format(DayFormat))
	}
	return days
}

// NowTimestamp returns the current UTC instant as an ISO-8601 string, used
// for every created_at stamp.
func NowTimestamp() string {
	return nowFunc().UTC().Format(time.RFC3339)
}

// ToDay converts an arbitrary instant to its UTC calendar day.
func ToDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// FormatDayShort renders a canonical day string like "Apr 5" for templates.
// Unparseable input is returned unchanged.
func FormatDayShort(day string) string {
	t, err := time.Parse(DayFormat, day)
	if err != nil {
		return day
	}
	return t.Format("Jan 2")
}
