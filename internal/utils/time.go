package utils

import "time"

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

// MonthLabel renders the short month name used by the dashboard's
// monthly revenue series.
func MonthLabel(t time.Time) string {
	return t.Format("Jan")
}

// DateLabel renders the day key used by daily series, e.g. "2024-01-31".
func DateLabel(t time.Time) string {
	return t.Format("2006-01-02")
}
