package daily

import (
	"testing"

	"github.com/teloworks/telodash/internal/domain/models"
)

func ptr(n int64) *int64 { return &n }

func TestBuildRows(t *testing.T) {
	rows := []models.DailyStatRow{
		{
			Day:           "2025-08-28",
			Email:         "a@x.com",
			DMCount:       ptr(4200),
			InviteSuccess: nil,
			LinkCount:     ptr(3),
		},
	}

	got := BuildRows(rows)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}

	row := got[0]
	if row.Day != "2025-08-28" {
		t.Errorf("Day = %q, want %q", row.Day, "2025-08-28")
	}
	if row.DMCount != "4,200" {
		t.Errorf("DMCount = %q, want %q", row.DMCount, "4,200")
	}
	if row.InviteSuccess != "0" {
		t.Errorf("InviteSuccess = %q, want %q (null counter)", row.InviteSuccess, "0")
	}
	if row.LinkCount != "3" {
		t.Errorf("LinkCount = %q, want %q", row.LinkCount, "3")
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid date", "2025-08-28", "2025-08-28"},
		{"empty", "", ""},
		{"whitespace trimmed", "  2025-08-28  ", "2025-08-28"},
		{"wrong format", "08/28/2025", ""},
		{"impossible date", "2025-02-30", ""},
		{"injection attempt", "2025-08-28' OR 1=1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDay(tt.in); got != tt.want {
				t.Errorf("parseDay(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
