package quote

import "time"

// FormatDate renders an ISO calendar date (YYYY-MM-DD) in day.month.year
// order. Empty or unparseable input renders as the empty string rather
// than an error.
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(isoDate, iso)
	if err != nil {
		return ""
	}
	return t.Format("02.01.2006")
}
