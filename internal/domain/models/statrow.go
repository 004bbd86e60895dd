// internal/domain/models/statrow.go
package models

// MonthlyStatRow is one row of the device_stats_monthly reporting view.
//
// The view is maintained by the Telo backend; this service only reads it.
// Counter fields are pointers because the backend leaves them null for
// months where a device reported no activity of that kind. Display code
// treats nil as zero.
type MonthlyStatRow struct {
	Email          string `bson:"email"`
	Year           int    `bson:"year"`
	Month          int    `bson:"month"`
	DMCount        *int64 `bson:"dm_count"`
	InviteSuccess  *int64 `bson:"invite_success"`
	InviteFailed   *int64 `bson:"invite_failed"`
	ContactSuccess *int64 `bson:"contact_success"`
	ContactTotal   *int64 `bson:"contact_total"`
	LinkCount      *int64 `bson:"link_count"`
}

// DailyStatRow is one row of the device_stats_daily reporting view.
// Day is a KST calendar date in "YYYY-MM-DD" form.
type DailyStatRow struct {
	Day            string `bson:"day"`
	Email          string `bson:"email"`
	DMCount        *int64 `bson:"dm_count"`
	InviteSuccess  *int64 `bson:"invite_success"`
	InviteFailed   *int64 `bson:"invite_failed"`
	ContactSuccess *int64 `bson:"contact_success"`
	ContactTotal   *int64 `bson:"contact_total"`
	LinkCount      *int64 `bson:"link_count"`
}
