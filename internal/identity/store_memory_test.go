package identity

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_CreateAndLookup(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	u, err := store.CreateUser(ctx, CreateUserInput{
		Name:         "Alice",
		Email:        "  Alice@Example.COM ",
		PasswordHash: "$2b$12$fake",
		Role:         RoleUser,
		Now:          now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}

	byEmail, err := store.GetUserByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Fatalf("lookup mismatch: %q vs %q", byEmail.ID, u.ID)
	}

	byID, err := store.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID.Name != "Alice" {
		t.Fatalf("Name = %q", byID.Name)
	}
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	in := CreateUserInput{Name: "Alice", Email: "alice@example.com", PasswordHash: "$2b$12$fake", Role: RoleUser, Now: now}
	if _, err := store.CreateUser(ctx, in); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	in.Name = "Impostor"
	_, err := store.CreateUser(ctx, in)
	if !IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
	if _, err := store.GetUserByID(ctx, "01JZZZZZZZZZZZZZZZZZZZZZZZ"); !IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleAdmin.Valid() || !RoleUser.Valid() {
		t.Fatal("defined roles must be valid")
	}
	if Role("SUPERUSER").Valid() {
		t.Fatal("free-form role accepted")
	}
}
