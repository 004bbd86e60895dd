package overview

import (
	"reflect"
	"testing"
	"time"

	statsstore "github.com/teloworks/telodash/internal/app/store/stats"
	"github.com/teloworks/telodash/internal/domain/models"
)

func ptr(n int64) *int64 { return &n }

func TestBuildSummary_SumsNullAsZero(t *testing.T) {
	month := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	rows := []models.MonthlyStatRow{
		{Email: "a@x.com", Year: 2025, Month: 8, DMCount: ptr(1200), InviteSuccess: ptr(30), InviteFailed: nil, ContactSuccess: ptr(10)},
		{Email: "b@x.com", Year: 2025, Month: 8, DMCount: nil, InviteSuccess: ptr(5), InviteFailed: ptr(2), ContactSuccess: nil},
		// A prior month. Counts toward TotalUsers, not the month cards.
		{Email: "c@x.com", Year: 2025, Month: 7, DMCount: ptr(9999), InviteSuccess: ptr(99)},
	}

	got := BuildSummary(rows, 3, month)

	if got.MonthLabel != "2025-08" {
		t.Errorf("MonthLabel = %q, want %q", got.MonthLabel, "2025-08")
	}
	if got.TotalUsers != "3" {
		t.Errorf("TotalUsers = %q, want %q", got.TotalUsers, "3")
	}
	if got.MonthDMCount != "1,200" {
		t.Errorf("MonthDMCount = %q, want %q", got.MonthDMCount, "1,200")
	}
	if got.MonthInviteSuccess != "35" {
		t.Errorf("MonthInviteSuccess = %q, want %q", got.MonthInviteSuccess, "35")
	}
	if got.MonthInviteFailed != "2" {
		t.Errorf("MonthInviteFailed = %q, want %q", got.MonthInviteFailed, "2")
	}
	if got.MonthContactSuccess != "10" {
		t.Errorf("MonthContactSuccess = %q, want %q", got.MonthContactSuccess, "10")
	}
	if got.TodayActive != "3" {
		t.Errorf("TodayActive = %q, want %q", got.TodayActive, "3")
	}
}

func TestBuildSummary_CountsEachEmailOnce(t *testing.T) {
	month := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	rows := []models.MonthlyStatRow{
		{Email: "a@x.com", Year: 2025, Month: 8},
		{Email: "a@x.com", Year: 2025, Month: 7},
		{Email: "a@x.com", Year: 2024, Month: 12},
	}
	if got := BuildSummary(rows, 0, month); got.TotalUsers != "1" {
		t.Errorf("TotalUsers = %q, want %q", got.TotalUsers, "1")
	}
}

func TestBuildSummary_EmptyMonth(t *testing.T) {
	got := BuildSummary(nil, 0, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if got.MonthDMCount != "0" || got.TotalUsers != "0" || got.TodayActive != "0" {
		t.Errorf("empty month should render zeroes, got %+v", got)
	}
}

func TestBuildTopUsers_SumsAcrossMonths(t *testing.T) {
	// a@x.com has two monthly rows; the ranking sums them before
	// comparing, so a 10+3 beats a single 6.
	rows := []models.MonthlyStatRow{
		{Email: "a@x.com", Year: 2025, Month: 4, InviteSuccess: ptr(10)},
		{Email: "b@x.com", Year: 2025, Month: 5, InviteSuccess: ptr(6)},
		{Email: "a@x.com", Year: 2025, Month: 5, InviteSuccess: ptr(3)},
	}

	got := BuildTopUsers(rows, 5)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Email != "a@x.com" || got[0].InviteSuccess != "13" {
		t.Errorf("rank 1 = %s %s, want a@x.com 13", got[0].Email, got[0].InviteSuccess)
	}
	if got[1].Email != "b@x.com" || got[1].InviteSuccess != "6" {
		t.Errorf("rank 2 = %s %s, want b@x.com 6", got[1].Email, got[1].InviteSuccess)
	}
}

func TestBuildTopUsers_OrderAndTies(t *testing.T) {
	rows := []models.MonthlyStatRow{
		{Email: "c@x.com", InviteSuccess: ptr(10)},
		{Email: "a@x.com", InviteSuccess: ptr(50)},
		{Email: "b@x.com", InviteSuccess: ptr(10)},
		{Email: "d@x.com", InviteSuccess: nil},
	}

	got := BuildTopUsers(rows, 3)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantEmails := []string{"a@x.com", "b@x.com", "c@x.com"}
	for i, want := range wantEmails {
		if got[i].Email != want {
			t.Errorf("rank %d email = %q, want %q", i+1, got[i].Email, want)
		}
		if got[i].Rank != i+1 {
			t.Errorf("Rank = %d, want %d", got[i].Rank, i+1)
		}
	}
	if got[0].InviteSuccess != "50" {
		t.Errorf("top InviteSuccess = %q, want %q", got[0].InviteSuccess, "50")
	}
}

func TestBuildTopUsers_DoesNotMutateInput(t *testing.T) {
	rows := []models.MonthlyStatRow{
		{Email: "b@x.com", InviteSuccess: ptr(1)},
		{Email: "a@x.com", InviteSuccess: ptr(2)},
	}
	BuildTopUsers(rows, 2)
	if rows[0].Email != "b@x.com" {
		t.Errorf("input slice was reordered")
	}
}

func TestBuildTopUsers_FewerThanN(t *testing.T) {
	rows := []models.MonthlyStatRow{{Email: "a@x.com", InviteSuccess: ptr(1)}}
	if got := BuildTopUsers(rows, 5); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestLastNDays(t *testing.T) {
	// 2025-08-28 01:00 UTC is 2025-08-28 10:00 KST.
	now := time.Date(2025, 8, 28, 1, 0, 0, 0, time.UTC)
	got := LastNDays(now, 3)
	want := []string{"2025-08-26", "2025-08-27", "2025-08-28"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LastNDays = %v, want %v", got, want)
	}
}

func TestLastNDays_KSTRollover(t *testing.T) {
	// 16:00 UTC is already the next day in KST.
	now := time.Date(2025, 8, 27, 16, 0, 0, 0, time.UTC)
	got := LastNDays(now, 2)
	want := []string{"2025-08-27", "2025-08-28"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LastNDays = %v, want %v", got, want)
	}
}

func TestBuildChartSeries_ZeroFillsGaps(t *testing.T) {
	days := []string{"2025-08-25", "2025-08-26", "2025-08-27"}
	sums := []statsstore.DaySum{
		{Day: "2025-08-25", DMCount: 10, InviteSuccess: 2, InviteFailed: 1, ContactSuccess: 5},
		{Day: "2025-08-27", DMCount: 7, InviteSuccess: 3},
	}

	got := BuildChartSeries(days, sums)

	wantLabels := []string{"08-25", "08-26", "08-27"}
	if !reflect.DeepEqual(got.Labels, wantLabels) {
		t.Errorf("Labels = %v, want %v", got.Labels, wantLabels)
	}
	if !reflect.DeepEqual(got.DMCount, []int64{10, 0, 7}) {
		t.Errorf("DMCount = %v, want [10 0 7]", got.DMCount)
	}
	if !reflect.DeepEqual(got.InviteSuccess, []int64{2, 0, 3}) {
		t.Errorf("InviteSuccess = %v, want [2 0 3]", got.InviteSuccess)
	}
	if !reflect.DeepEqual(got.InviteFailed, []int64{1, 0, 0}) {
		t.Errorf("InviteFailed = %v, want [1 0 0]", got.InviteFailed)
	}
	if !reflect.DeepEqual(got.ContactSuccess, []int64{5, 0, 0}) {
		t.Errorf("ContactSuccess = %v, want [5 0 0]", got.ContactSuccess)
	}
}
