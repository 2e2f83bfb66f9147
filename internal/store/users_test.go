package store

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/shramba/internal/db"
)

func TestCreateUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, "Ana", "Ana@Example.com", "hash")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected non-zero user ID")
	}
	if user.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.Name != "Ana" {
		t.Errorf("expected name Ana, got %q", user.Name)
	}
}

func TestCreateUserValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "", "ana@example.com", "hash"); !IsValidation(err) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
	if _, err := CreateUser(ctx, database, "Ana", "   ", "hash"); !IsValidation(err) {
		t.Errorf("expected validation error for empty email, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, "Ana", "ana@example.com", "hash"); err != nil {
		t.Fatalf("creating user: %v", err)
	}

	// Same address with different case still collides.
	_, err := CreateUser(ctx, database, "Druga Ana", "ANA@example.com", "hash")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestVerifyCredentials(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("geslo123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	created, err := CreateUser(ctx, database, "Ana", "ana@example.com", string(hash))
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	user, err := VerifyCredentials(ctx, database, "ana@example.com", "geslo123")
	if err != nil {
		t.Fatalf("verifying credentials: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("expected user %d, got %d", created.ID, user.ID)
	}

	if _, err := VerifyCredentials(ctx, database, "ana@example.com", "napacno"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed for wrong password, got %v", err)
	}
	if _, err := VerifyCredentials(ctx, database, "neznan@example.com", "geslo123"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed for unknown email, got %v", err)
	}
}

func TestGetUserByEmailMissing(t *testing.T) {
	database := db.NewTestDB(t)

	user, err := GetUserByEmail(context.Background(), database, "nihce@example.com")
	if err != nil {
		t.Fatalf("getting user: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
}

func TestDeleteUserRemovesItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ana, err := CreateUser(ctx, database, "Ana", "ana@example.com", "hash")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	bor, err := CreateUser(ctx, database, "Bor", "bor@example.com", "hash")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	if _, err := CreateItem(ctx, database, ana.ID, testItemFields("Mleko")); err != nil {
		t.Fatalf("creating item: %v", err)
	}
	if _, err := CreateItem(ctx, database, bor.ID, testItemFields("Kruh")); err != nil {
		t.Fatalf("creating item: %v", err)
	}

	if err := DeleteUser(ctx, database, ana.ID); err != nil {
		t.Fatalf("deleting user: %v", err)
	}

	if user, _ := GetUser(ctx, database, ana.ID); user != nil {
		t.Error("expected user to be gone")
	}
	items, err := ListItems(ctx, database, ana.ID, "", "")
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected deleted user's items to be gone, got %d", len(items))
	}

	// The other account is untouched.
	items, err = ListItems(ctx, database, bor.ID, "", "")
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 item for remaining user, got %d", len(items))
	}
}
