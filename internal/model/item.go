package model

import "time"

// Item represents a tracked kitchen item. Optional fields are pointers so
// that "not set" is distinguishable from a zero value: a missing expiry date
// disables the expiry checks and a missing threshold disables the low-stock
// check.
type Item struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	Name              string     `json:"name"`
	Category          string     `json:"category,omitempty"`
	Barcode           string     `json:"barcode,omitempty"`
	Quantity          float64    `json:"quantity"`
	Unit              string     `json:"unit,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	Location          string     `json:"location,omitempty"`
	LowStockThreshold *float64   `json:"low_stock_threshold,omitempty"`
	ImageMime         string     `json:"image_mime,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ItemFields holds the mutable fields of an item, as parsed and validated at
// the boundary (form, JSON body or CSV row). The store never sees raw
// request payloads.
type ItemFields struct {
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	Barcode           string     `json:"barcode"`
	Quantity          float64    `json:"quantity"`
	Unit              string     `json:"unit"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	Location          string     `json:"location"`
	LowStockThreshold *float64   `json:"low_stock_threshold"`
}

// DefaultExpiryHorizon is the lookahead window (in days) for the
// expiring-soon check.
const DefaultExpiryHorizon = 7

// Suggested categories for the item form. Free-text categories are allowed,
// this list only feeds the dropdown.
var Categories = []string{
	"Fruit & Vegetables",
	"Dairy",
	"Meat & Fish",
	"Grains",
	"Snacks",
	"Beverages",
	"Spices",
	"Frozen",
	"Other",
}

// IsExpired reports whether the item's expiry date is strictly before today.
// The comparison is date-only; callers pass the current date explicitly.
func (i *Item) IsExpired(today time.Time) bool {
	if i.ExpiryDate == nil {
		return false
	}
	return dateOf(*i.ExpiryDate).Before(dateOf(today))
}

// IsExpiringSoon reports whether the item expires within horizonDays days,
// today included. An already-expired item is never expiring-soon.
func (i *Item) IsExpiringSoon(today time.Time, horizonDays int) bool {
	if i.ExpiryDate == nil {
		return false
	}
	days := daysBetween(dateOf(today), dateOf(*i.ExpiryDate))
	return days >= 0 && days <= horizonDays
}

// IsLowStock reports whether the quantity has fallen strictly below the
// low-stock threshold. An absent threshold disables the check entirely.
func (i *Item) IsLowStock() bool {
	if i.LowStockThreshold == nil {
		return false
	}
	return i.Quantity < *i.LowStockThreshold
}

// dateOf truncates a timestamp to midnight UTC so comparisons ignore the
// time-of-day component.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole number of days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
