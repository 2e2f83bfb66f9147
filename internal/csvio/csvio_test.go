package csvio

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

func TestWriteItems(t *testing.T) {
	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	threshold := 2.0
	items := []model.Item{
		{
			Name:              "Mleko",
			Category:          "Dairy",
			Barcode:           "3830000000001",
			Quantity:          1.5,
			Unit:              "L",
			ExpiryDate:        &expiry,
			Location:          "Hladilnik",
			LowStockThreshold: &threshold,
		},
		{Name: "Sol", Quantity: 1},
	}

	var buf bytes.Buffer
	if err := WriteItems(&buf, items); err != nil {
		t.Fatalf("writing items: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(Columns, ",") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "Mleko,Dairy,3830000000001,1.5,L,2026-09-10,Hladilnik,2" {
		t.Errorf("unexpected row: %q", lines[1])
	}
	// Absent optionals are empty cells, not "null" or "0".
	if lines[2] != "Sol,,,1,,,," {
		t.Errorf("unexpected row: %q", lines[2])
	}
}

func TestRoundTrip(t *testing.T) {
	expiry := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	threshold := 3.0
	items := []model.Item{
		{
			Name:              "Mleko",
			Category:          "Dairy",
			Quantity:          2,
			Unit:              "L",
			ExpiryDate:        &expiry,
			LowStockThreshold: &threshold,
		},
		{Name: "Kruh", Quantity: 0.5, Unit: "kg"},
	}

	var buf bytes.Buffer
	if err := WriteItems(&buf, items); err != nil {
		t.Fatalf("writing items: %v", err)
	}

	rows, err := ReadItems(&buf)
	if err != nil {
		t.Fatalf("reading items back: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].Name != "Mleko" || rows[0].Quantity != 2 || rows[0].Unit != "L" {
		t.Errorf("first row mismatch: %+v", rows[0])
	}
	if rows[0].ExpiryDate == nil || !rows[0].ExpiryDate.Equal(expiry) {
		t.Errorf("expected expiry %v, got %v", expiry, rows[0].ExpiryDate)
	}
	if rows[0].LowStockThreshold == nil || *rows[0].LowStockThreshold != 3 {
		t.Errorf("expected threshold 3, got %v", rows[0].LowStockThreshold)
	}
	if rows[1].Name != "Kruh" || rows[1].Quantity != 0.5 {
		t.Errorf("second row mismatch: %+v", rows[1])
	}
	if rows[1].ExpiryDate != nil || rows[1].LowStockThreshold != nil {
		t.Errorf("expected nil optionals, got %+v", rows[1])
	}
}

func TestReadItemsReorderedColumns(t *testing.T) {
	input := "quantity,name,unit\n2,Mleko,L\n"

	rows, err := ReadItems(strings.NewReader(input))
	if err != nil {
		t.Fatalf("reading reordered CSV: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Name != "Mleko" || rows[0].Quantity != 2 || rows[0].Unit != "L" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestReadItemsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		row   int
		field string
	}{
		{"empty file", "", 1, ""},
		{"missing name column", "quantity\n2\n", 1, "name"},
		{"missing quantity column", "name\nMleko\n", 1, "quantity"},
		{"empty name", "name,quantity\n,2\n", 2, "name"},
		{"bad quantity", "name,quantity\nMleko,veliko\n", 2, "quantity"},
		{"bad date", "name,quantity,expiry_date\nMleko,2,10.9.2026\n", 2, "expiry_date"},
		{"bad threshold", "name,quantity,low_stock_threshold\nMleko,2,malo\n", 2, "low_stock_threshold"},
		{"error on later row", "name,quantity\nMleko,2\nKruh,x\n", 3, "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadItems(strings.NewReader(tt.input))

			var malformed *MalformedInputError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedInputError, got %v", err)
			}
			if malformed.Row != tt.row {
				t.Errorf("expected row %d, got %d", tt.row, malformed.Row)
			}
			if malformed.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, malformed.Field)
			}
		})
	}
}

func TestReadItemsHeaderOnly(t *testing.T) {
	rows, err := ReadItems(strings.NewReader("name,quantity\n"))
	if err != nil {
		t.Fatalf("reading header-only CSV: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
