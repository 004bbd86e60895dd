package userstore

import (
	"errors"
	"testing"

	"github.com/teloworks/telodash/internal/domain/models"
	"github.com/teloworks/telodash/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateAndGetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, models.User{
		FullName: "Kim Operator",
		Email:    "  Kim@Example.COM ",
		Role:     models.RoleOperator,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Email != "kim@example.com" {
		t.Errorf("Email = %q, want normalized lowercase", created.Email)
	}
	if created.AuthMethod != "password" || created.Status != "active" {
		t.Errorf("defaults not applied: %+v", created)
	}

	// Lookup is case-insensitive.
	got, err := s.GetByEmail(ctx, "KIM@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByEmail() ID = %v, want %v", got.ID, created.ID)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := models.User{FullName: "A", Email: "dup@x.com", Role: models.RoleAdmin}
	if _, err := s.Create(ctx, u); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	if _, err := s.Create(ctx, u); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("second Create() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestCreate_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := s.Create(ctx, models.User{Email: "x@x.com", Role: "superuser"})
	if err == nil {
		t.Error("Create() with invalid role should fail")
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := s.GetByEmail(ctx, "missing@x.com")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByEmail() error = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestSetRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, models.User{Email: "op@x.com", Role: models.RoleOperator})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.SetRole(ctx, created.ID, models.RoleAdmin); err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}

	got, err := s.GetByEmail(ctx, "op@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want %q", got.Role, models.RoleAdmin)
	}
}

func TestSetRole_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, models.User{Email: "op2@x.com", Role: models.RoleOperator})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.SetRole(ctx, created.ID, "superuser"); err == nil {
		t.Error("SetRole() with invalid role should fail")
	}
}
