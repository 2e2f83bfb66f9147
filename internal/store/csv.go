package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// ImportItems upserts parsed CSV rows for userID in a single transaction.
// Rows are keyed by exact item name: an existing item with the same name is
// overwritten, anything else is inserted. Either every row commits or none
// does. Returns the number of processed rows.
func ImportItems(ctx context.Context, db *sql.DB, userID int64, rows []model.ItemFields) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for _, f := range rows {
		var id int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM items WHERE user_id = ? AND name = ? ORDER BY id LIMIT 1`,
			userID, f.Name,
		).Scan(&id)

		switch {
		case err == sql.ErrNoRows:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO items (user_id, name, category, barcode, quantity, unit,
				                    expiry_date, location, low_stock_threshold)
				 VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, NULLIF(?, ''), ?, NULLIF(?, ''), ?)`,
				userID, f.Name, f.Category, f.Barcode, f.Quantity, f.Unit,
				nullDate(f.ExpiryDate), f.Location, nullFloat(f.LowStockThreshold),
			)
			if err != nil {
				return 0, fmt.Errorf("importing item %q: %w", f.Name, err)
			}
		case err != nil:
			return 0, fmt.Errorf("looking up item %q: %w", f.Name, err)
		default:
			_, err = tx.ExecContext(ctx,
				`UPDATE items SET category = NULLIF(?, ''), barcode = NULLIF(?, ''),
				        quantity = ?, unit = NULLIF(?, ''), expiry_date = ?,
				        location = NULLIF(?, ''), low_stock_threshold = ?,
				        updated_at = CURRENT_TIMESTAMP
				 WHERE id = ?`,
				f.Category, f.Barcode, f.Quantity, f.Unit,
				nullDate(f.ExpiryDate), f.Location, nullFloat(f.LowStockThreshold),
				id,
			)
			if err != nil {
				return 0, fmt.Errorf("updating item %q: %w", f.Name, err)
			}
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return count, nil
}
