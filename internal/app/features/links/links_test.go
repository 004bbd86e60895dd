package links

import (
	"testing"
	"time"

	"github.com/teloworks/telodash/internal/domain/models"
)

func tptr(t time.Time) *time.Time { return &t }

func TestGroupByMonth_NewestFirstNeverLast(t *testing.T) {
	july := time.Date(2025, 7, 10, 3, 0, 0, 0, time.UTC)
	august := time.Date(2025, 8, 5, 3, 0, 0, 0, time.UTC)

	rows := []models.InviteLink{
		{Email: "b@x.com", InviteLink: "https://t.me/j1", GroupName: "Gamma", FirstUsedAt: tptr(july)},
		{Email: "a@x.com", InviteLink: "https://t.me/a1", GroupName: "Alpha", FirstUsedAt: tptr(august)},
		{Email: "c@x.com", InviteLink: "https://t.me/n1", GroupName: "Beta"},
		{Email: "a@x.com", InviteLink: "https://t.me/a2", GroupName: "Beta", FirstUsedAt: tptr(august)},
	}

	groups := GroupByMonth(rows)

	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}
	if groups[0].Month != "2025-08" || groups[1].Month != "2025-07" {
		t.Errorf("months = %q, %q; want newest first", groups[0].Month, groups[1].Month)
	}
	if groups[2].Month != "Never used" {
		t.Errorf("last group = %q, want %q", groups[2].Month, "Never used")
	}
	if groups[0].Count != 2 {
		t.Errorf("august count = %d, want 2", groups[0].Count)
	}
	if len(groups[0].Emails) != 1 || groups[0].Emails[0].Email != "a@x.com" {
		t.Errorf("august emails = %+v, want only a@x.com", groups[0].Emails)
	}
}

func TestGroupByMonth_SplitsMonthByEmail(t *testing.T) {
	used := time.Date(2025, 8, 5, 3, 0, 0, 0, time.UTC)
	rows := []models.InviteLink{
		{Email: "b@x.com", GroupName: "Zeta", FirstUsedAt: tptr(used)},
		{Email: "a@x.com", GroupName: "Beta", FirstUsedAt: tptr(used)},
		{Email: "b@x.com", GroupName: "Alpha", FirstUsedAt: tptr(used)},
	}

	groups := GroupByMonth(rows)
	if len(groups) != 1 {
		t.Fatalf("len(groups) = %d, want 1", len(groups))
	}
	if groups[0].Count != 3 {
		t.Errorf("month count = %d, want 3", groups[0].Count)
	}

	emails := groups[0].Emails
	if len(emails) != 2 {
		t.Fatalf("len(emails) = %d, want 2", len(emails))
	}
	if emails[0].Email != "a@x.com" || emails[0].Count != 1 {
		t.Errorf("emails[0] = %s (%d), want a@x.com (1)", emails[0].Email, emails[0].Count)
	}
	if emails[1].Email != "b@x.com" || emails[1].Count != 2 {
		t.Errorf("emails[1] = %s (%d), want b@x.com (2)", emails[1].Email, emails[1].Count)
	}
	// Within an email, links order by group name.
	if emails[1].Links[0].GroupName != "Alpha" || emails[1].Links[1].GroupName != "Zeta" {
		t.Errorf("b@x.com groups = %s, %s; want Alpha then Zeta",
			emails[1].Links[0].GroupName, emails[1].Links[1].GroupName)
	}
}

func TestGroupByMonth_KSTBoundary(t *testing.T) {
	// 2025-07-31 16:00 UTC is 2025-08-01 01:00 KST, so it belongs to August.
	rows := []models.InviteLink{
		{Email: "a@x.com", FirstUsedAt: tptr(time.Date(2025, 7, 31, 16, 0, 0, 0, time.UTC))},
	}
	groups := GroupByMonth(rows)
	if groups[0].Month != "2025-08" {
		t.Errorf("month = %q, want %q", groups[0].Month, "2025-08")
	}
}

func TestGroupByMonth_Empty(t *testing.T) {
	if got := GroupByMonth(nil); len(got) != 0 {
		t.Errorf("GroupByMonth(nil) = %v, want empty", got)
	}
}

func TestMonthBounds(t *testing.T) {
	start, end, ok := monthBounds("2025-08")
	if !ok {
		t.Fatal("monthBounds returned !ok")
	}
	// Midnight KST on Aug 1 is 15:00 UTC on Jul 31.
	wantStart := time.Date(2025, 7, 31, 15, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	wantEnd := time.Date(2025, 8, 31, 14, 59, 59, 0, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
}

func TestMonthBounds_Invalid(t *testing.T) {
	if _, _, ok := monthBounds(""); ok {
		t.Error("empty month should not parse")
	}
	if _, _, ok := monthBounds("August 2025"); ok {
		t.Error("malformed month should not parse")
	}
}
