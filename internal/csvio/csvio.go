// Package csvio maps items to and from the flat CSV exchange format. It only
// encodes and decodes; persistence of imported rows is the store's job.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

// Columns is the fixed header. Exports always write columns in this order;
// imports locate columns by header name, so reordered files still parse.
var Columns = []string{
	"name", "category", "barcode", "quantity", "unit",
	"expiry_date", "location", "low_stock_threshold",
}

// dateFormat is the calendar date form used in the CSV (YYYY-MM-DD).
const dateFormat = "2006-01-02"

// MalformedInputError reports an unparseable cell. Row counts from 1 and
// includes the header row, matching what a user sees in a spreadsheet.
type MalformedInputError struct {
	Row    int
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed CSV at row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("malformed CSV at row %d, field %q: %s", e.Row, e.Field, e.Reason)
}

// WriteItems writes the header and one row per item. Absent optional fields
// become empty cells, never a literal "null".
func WriteItems(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for i := range items {
		item := &items[i]

		expiry := ""
		if item.ExpiryDate != nil {
			expiry = item.ExpiryDate.Format(dateFormat)
		}
		threshold := ""
		if item.LowStockThreshold != nil {
			threshold = formatNumber(*item.LowStockThreshold)
		}

		record := []string{
			item.Name,
			item.Category,
			item.Barcode,
			formatNumber(item.Quantity),
			item.Unit,
			expiry,
			item.Location,
			threshold,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row for %q: %w", item.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// ReadItems parses a full CSV document into field sets, validating every
// cell before anything is returned. Any malformed cell aborts the parse with
// a MalformedInputError, so a failed import never touches the store.
func ReadItems(r io.Reader) ([]model.ItemFields, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MalformedInputError{Row: 1, Reason: "empty file"}
	}
	if err != nil {
		return nil, &MalformedInputError{Row: 1, Reason: err.Error()}
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{"name", "quantity"} {
		if _, ok := index[required]; !ok {
			return nil, &MalformedInputError{Row: 1, Field: required, Reason: "missing column"}
		}
	}

	cell := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []model.ItemFields
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{Row: row, Reason: err.Error()}
		}

		f := model.ItemFields{
			Name:     cell(record, "name"),
			Category: cell(record, "category"),
			Barcode:  cell(record, "barcode"),
			Unit:     cell(record, "unit"),
			Location: cell(record, "location"),
		}
		if f.Name == "" {
			return nil, &MalformedInputError{Row: row, Field: "name", Reason: "required"}
		}

		quantity, err := strconv.ParseFloat(cell(record, "quantity"), 64)
		if err != nil {
			return nil, &MalformedInputError{Row: row, Field: "quantity", Reason: "not a number"}
		}
		f.Quantity = quantity

		if s := cell(record, "expiry_date"); s != "" {
			t, err := time.Parse(dateFormat, s)
			if err != nil {
				return nil, &MalformedInputError{Row: row, Field: "expiry_date", Reason: "expected YYYY-MM-DD"}
			}
			f.ExpiryDate = &t
		}

		if s := cell(record, "low_stock_threshold"); s != "" {
			threshold, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &MalformedInputError{Row: row, Field: "low_stock_threshold", Reason: "not a number"}
			}
			f.LowStockThreshold = &threshold
		}

		rows = append(rows, f)
	}

	return rows, nil
}

// formatNumber renders a quantity without trailing zeros (2 not 2.000000).
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
