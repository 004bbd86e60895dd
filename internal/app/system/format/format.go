// Package format renders counts and timestamps for dashboard display.
//
// All functions are pure: deterministic, no side effects, and they never
// return errors. Missing values (nil pointers) render as their display
// placeholders ("0" for counts, "-" for timestamps) rather than failing.
package format

import (
	"fmt"
	"time"
)

// KST is the fixed Korea Standard Time zone (UTC+9, no DST).
// A fixed zone avoids a runtime dependency on the host tz database.
var KST = time.FixedZone("KST", 9*60*60)

// TimestampLayout is the ko-KR style layout used across the dashboard.
const TimestampLayout = "2006. 01. 02. 15:04"

// Count formats a nullable counter for display.
// nil renders as "0"; present values get thousands separators.
func Count(n *int64) string {
	if n == nil {
		return "0"
	}
	return CountValue(*n)
}

// CountValue formats an integer with commas.
func CountValue(n int64) string {
	if n < 0 {
		return "-" + CountValue(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return CountValue(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}

// Timestamp formats a nullable time for display in KST.
// nil renders as "-".
func Timestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(KST).Format(TimestampLayout)
}

// MonthKey returns the "YYYY-MM" grouping key for a time in KST.
func MonthKey(t time.Time) string {
	return t.In(KST).Format("2006-01")
}

// Day returns the "YYYY-MM-DD" calendar date for a time in KST.
func Day(t time.Time) string {
	return t.In(KST).Format("2006-01-02")
}
