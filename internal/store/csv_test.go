package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/model"
)

func TestImportItemsInsertsAndUpdates(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := testUser(t, database, "ana@example.com")

	if _, err := CreateItem(ctx, database, userID, model.ItemFields{
		Name: "Mleko", Category: "Dairy", Quantity: 1,
	}); err != nil {
		t.Fatalf("creating item: %v", err)
	}

	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	count, err := ImportItems(ctx, database, userID, []model.ItemFields{
		{Name: "Mleko", Category: "Dairy", Quantity: 3, Unit: "L", ExpiryDate: &expiry},
		{Name: "Kruh", Category: "Bakery", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("importing items: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 processed rows, got %d", count)
	}

	items, err := ListItems(ctx, database, userID, "", "")
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items after upsert, got %d", len(items))
	}

	byName := make(map[string]model.Item, len(items))
	for _, item := range items {
		byName[item.Name] = item
	}

	mleko, ok := byName["Mleko"]
	if !ok {
		t.Fatal("expected Mleko to survive the import")
	}
	if mleko.Quantity != 3 || mleko.Unit != "L" {
		t.Errorf("expected Mleko overwritten with quantity 3 L, got %+v", mleko)
	}
	if mleko.ExpiryDate == nil || !mleko.ExpiryDate.Equal(expiry) {
		t.Errorf("expected expiry %v, got %v", expiry, mleko.ExpiryDate)
	}

	if _, ok := byName["Kruh"]; !ok {
		t.Error("expected Kruh to be inserted")
	}
}

func TestImportItemsScopedToUser(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	ana := testUser(t, database, "ana@example.com")
	bor := testUser(t, database, "bor@example.com")

	if _, err := CreateItem(ctx, database, bor, model.ItemFields{Name: "Mleko", Quantity: 5}); err != nil {
		t.Fatalf("creating item: %v", err)
	}

	// Ana importing "Mleko" must not touch Bor's item of the same name.
	if _, err := ImportItems(ctx, database, ana, []model.ItemFields{{Name: "Mleko", Quantity: 1}}); err != nil {
		t.Fatalf("importing items: %v", err)
	}

	borItems, err := ListItems(ctx, database, bor, "", "")
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(borItems) != 1 || borItems[0].Quantity != 5 {
		t.Errorf("expected Bor's item untouched, got %+v", borItems)
	}

	anaItems, err := ListItems(ctx, database, ana, "", "")
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(anaItems) != 1 || anaItems[0].Quantity != 1 {
		t.Errorf("expected Ana's own copy, got %+v", anaItems)
	}
}

func TestImportItemsDuplicateNamesInFile(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := testUser(t, database, "ana@example.com")

	// A later row with the same name overwrites the earlier one in the same
	// import, so the last occurrence wins.
	count, err := ImportItems(ctx, database, userID, []model.ItemFields{
		{Name: "Mleko", Quantity: 1},
		{Name: "Mleko", Quantity: 4},
	})
	if err != nil {
		t.Fatalf("importing items: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 processed rows, got %d", count)
	}

	items, err := ListItems(ctx, database, userID, "", "")
	if err != nil {
		t.Fatalf("listing items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single item, got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Errorf("expected last row to win with quantity 4, got %v", items[0].Quantity)
	}
}

func TestImportItemsEmpty(t *testing.T) {
	database := db.NewTestDB(t)
	userID := testUser(t, database, "ana@example.com")

	count, err := ImportItems(context.Background(), database, userID, nil)
	if err != nil {
		t.Fatalf("importing empty set: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 processed rows, got %d", count)
	}
}
