package loginstore

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/teloworks/telodash/internal/domain/models"
	"github.com/teloworks/telodash/internal/testutil"
)

func TestRecordAndHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2025, 8, 28, 1, 0, 0, 0, time.UTC)
	events := []models.LoginEvent{
		{Email: "a@x.com", Action: models.ActionLogin, CreatedAt: base},
		{Email: "a@x.com", Action: models.ActionLogout, CreatedAt: base.Add(time.Hour)},
		{Email: "b@x.com", Action: models.ActionLogin, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, ev := range events {
		if err := s.Record(ctx, ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.History(ctx, Filter{})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Latest first.
	if got[0].Email != "b@x.com" {
		t.Errorf("got[0].Email = %q, want b@x.com", got[0].Email)
	}
	// Record derives the KST string from CreatedAt.
	if got[0].CreatedAtStr != "2025-08-28 12:00:00" {
		t.Errorf("CreatedAtStr = %q, want %q", got[0].CreatedAtStr, "2025-08-28 12:00:00")
	}
}

func TestHistory_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2025, 8, 28, 1, 0, 0, 0, time.UTC)
	seed := []models.LoginEvent{
		{Email: "kim@x.com", Action: models.ActionLogin, CreatedAt: base},
		{Email: "kim@x.com", Action: models.ActionLogout, CreatedAt: base.Add(time.Minute)},
		{Email: "lee@x.com", Action: models.ActionLogin, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, ev := range seed {
		if err := s.Record(ctx, ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.History(ctx, Filter{Action: models.ActionLogin, EmailSub: "KIM"})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 1 || got[0].Email != "kim@x.com" || got[0].Action != models.ActionLogin {
		t.Errorf("got = %+v, want kim login only", got)
	}

	end := base.Add(30 * time.Second)
	got, err = s.History(ctx, Filter{End: &end})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1 event before end bound", len(got))
	}
}

func TestActiveEmails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seed := []models.LoginEvent{
		{Email: "a@x.com", Action: models.ActionLogin, CreatedAtStr: "2025-08-28 09:00:00", CreatedAt: time.Now().UTC()},
		{Email: "a@x.com", Action: models.ActionLogin, CreatedAtStr: "2025-08-28 14:00:00", CreatedAt: time.Now().UTC()},
		{Email: "b@x.com", Action: models.ActionLogout, CreatedAtStr: "2025-08-28 10:00:00", CreatedAt: time.Now().UTC()},
		{Email: "c@x.com", Action: models.ActionLogin, CreatedAtStr: "2025-08-27 23:00:00", CreatedAt: time.Now().UTC()},
	}
	for _, ev := range seed {
		if err := s.Record(ctx, ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	emails, err := s.ActiveEmails(ctx, "2025-08-28")
	if err != nil {
		t.Fatalf("ActiveEmails() error = %v", err)
	}
	if len(emails) != 1 || emails[0] != "a@x.com" {
		t.Errorf("ActiveEmails() = %v, want [a@x.com] (logins only, that day only)", emails)
	}
}

func TestRecordFrom_ClientIP(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	r := httptest.NewRequest("POST", "/login", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if err := s.RecordFrom(ctx, r, "a@x.com", models.ActionLogin); err != nil {
		t.Fatalf("RecordFrom() error = %v", err)
	}

	got, err := s.History(ctx, Filter{})
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].IPAddress != "203.0.113.7" {
		t.Errorf("IPAddress = %q, want first X-Forwarded-For entry", got[0].IPAddress)
	}
}
