package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

const itemColumns = `id, user_id, name, category, barcode, quantity, unit,
	expiry_date, location, low_stock_threshold, image_mime, created_at, updated_at`

// CreateItem creates a new item owned by userID. Name is required and the
// initial quantity must be strictly positive.
func CreateItem(ctx context.Context, db *sql.DB, userID int64, f model.ItemFields) (*model.Item, error) {
	if f.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if f.Quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (user_id, name, category, barcode, quantity, unit,
		                    expiry_date, location, low_stock_threshold)
		 VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, NULLIF(?, ''), ?, NULLIF(?, ''), ?)`,
		userID, f.Name, f.Category, f.Barcode, f.Quantity, f.Unit,
		nullDate(f.ExpiryDate), f.Location, nullFloat(f.LowStockThreshold),
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return getItem(ctx, db, id)
}

// GetItem returns an item if it exists and belongs to userID. Missing items
// yield ErrNotFound, another user's items ErrForbidden.
func GetItem(ctx context.Context, db *sql.DB, id, userID int64) (*model.Item, error) {
	item, err := getItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if item.UserID != userID {
		return nil, ErrForbidden
	}
	return item, nil
}

// getItem fetches by ID without an ownership check, for internal use after
// inserts. Returns nil if no such item exists.
func getItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns userID's items, newest first. An empty category or
// search skips that filter; both combine with AND. The search is a
// case-insensitive substring match on the name.
func ListItems(ctx context.Context, db *sql.DB, userID int64, category, search string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = ?`
	args := []any{userID}

	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if search != "" {
		query += ` AND instr(lower(name), lower(?)) > 0`
		args = append(args, search)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ListCategories returns the distinct non-empty categories of userID's items.
func ListCategories(ctx context.Context, db *sql.DB, userID int64) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT category FROM items
		 WHERE user_id = ? AND category IS NOT NULL AND category != ''
		 ORDER BY category`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateItem overwrites the mutable fields of an item after the ownership
// check. Quantity is not re-validated here: edits may zero out stock.
func UpdateItem(ctx context.Context, db *sql.DB, id, userID int64, f model.ItemFields) (*model.Item, error) {
	if _, err := GetItem(ctx, db, id, userID); err != nil {
		return nil, err
	}
	if f.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}

	_, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, category = NULLIF(?, ''), barcode = NULLIF(?, ''),
		        quantity = ?, unit = NULLIF(?, ''), expiry_date = ?,
		        location = NULLIF(?, ''), low_stock_threshold = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		f.Name, f.Category, f.Barcode, f.Quantity, f.Unit,
		nullDate(f.ExpiryDate), f.Location, nullFloat(f.LowStockThreshold),
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}

	return getItem(ctx, db, id)
}

// DeleteItem removes an item after the ownership check.
func DeleteItem(ctx context.Context, db *sql.DB, id, userID int64) error {
	if _, err := GetItem(ctx, db, id, userID); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND user_id = ?`, id, userID,
	); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// SetItemImage stores an item's processed photo after the ownership check.
func SetItemImage(ctx context.Context, db *sql.DB, id, userID int64, image []byte, mime string) error {
	if _, err := GetItem(ctx, db, id, userID); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		image, mime, id, userID,
	); err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's photo data and MIME type, owner-scoped.
// Items without a photo yield nil data and no error.
func GetItemImage(ctx context.Context, db *sql.DB, id, userID int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanItem.
type scanner interface {
	Scan(dest ...any) error
}

// scanItem reads one item row, converting nullable columns to their Go
// representations (empty strings and nil pointers). The expiry_date column is
// declared DATE, so the driver hands it back as a time.Time.
func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var category, barcode, unit, location, imageMime sql.NullString
	var expiry sql.NullTime
	var threshold sql.NullFloat64

	err := s.Scan(&item.ID, &item.UserID, &item.Name, &category, &barcode,
		&item.Quantity, &unit, &expiry, &location, &threshold, &imageMime,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.Category = category.String
	item.Barcode = barcode.String
	item.Unit = unit.String
	item.Location = location.String
	item.ImageMime = imageMime.String
	if threshold.Valid {
		item.LowStockThreshold = &threshold.Float64
	}
	if expiry.Valid {
		t := expiry.Time.UTC()
		item.ExpiryDate = &t
	}

	return item, nil
}

// nullDate formats an optional date for storage as YYYY-MM-DD, or NULL.
func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

// nullFloat converts an optional number for storage, or NULL.
func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
