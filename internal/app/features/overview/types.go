// internal/app/features/overview/types.go
package overview

import "github.com/teloworks/telodash/internal/app/system/viewdata"

// OverviewVM is the view model for the overview panel fragment.
type OverviewVM struct {
	viewdata.BaseVM
	Error    string
	Summary  SummaryVM
	TopUsers []TopUserVM
}

// SummaryVM holds the formatted summary cards.
type SummaryVM struct {
	MonthLabel          string // "2025-08"
	TotalUsers          string
	MonthDMCount        string
	MonthInviteSuccess  string
	MonthInviteFailed   string
	MonthContactSuccess string
	TodayActive         string
}

// TopUserVM is one row of the top-senders table.
type TopUserVM struct {
	Rank          int
	Email         string
	InviteSuccess string
}

// ChartSeries is the JSON payload for the 7-day activity chart.
// Slices are index-aligned with Labels and zero-filled for days with
// no rows.
type ChartSeries struct {
	Labels         []string `json:"labels"`
	DMCount        []int64  `json:"dm_count"`
	InviteSuccess  []int64  `json:"invite_success"`
	InviteFailed   []int64  `json:"invite_failed"`
	ContactSuccess []int64  `json:"contact_success"`
}
