package store

import (
	"context"
	"testing"

	"github.com/erazemk/shramba/internal/db"
)

func TestGetJWTSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("getting jwt secret: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}

	// Repeated calls return the stored secret, so tokens survive restarts.
	second, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("getting jwt secret again: %v", err)
	}
	if first != second {
		t.Error("expected the same secret on repeated calls")
	}
}
