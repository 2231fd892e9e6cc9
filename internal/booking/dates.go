package booking

import "time"

// dateLayout is the wire format for calendar days.  Dates travel as plain
// day strings rather than timestamps so comparisons never drift across
// timezones.
const dateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed YYYY-MM-DD day string.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// dateOnOrAfter reports whether day a falls on or after day b.  For the
// fixed-width YYYY-MM-DD format a lexicographic comparison is a calendar
// comparison, so no parsing is needed.
func dateOnOrAfter(a, b string) bool { return a >= b }
