package model

import "time"

// Stats holds the dashboard counters for one user's items. An item can count
// towards several counters at once, except that expired and expiring-soon
// are mutually exclusive.
type Stats struct {
	TotalItems   int `json:"total_items"`
	ExpiringSoon int `json:"expiring_soon_count"`
	LowStock     int `json:"low_stock_count"`
	Expired      int `json:"expired_count"`
}

// Summarize folds the status checks over a user's items for the given date.
// Recomputed on every request, nothing is cached.
func Summarize(items []Item, today time.Time) Stats {
	stats := Stats{TotalItems: len(items)}
	for i := range items {
		item := &items[i]
		if item.IsExpired(today) {
			stats.Expired++
		}
		if item.IsExpiringSoon(today, DefaultExpiryHorizon) {
			stats.ExpiringSoon++
		}
		if item.IsLowStock() {
			stats.LowStock++
		}
	}
	return stats
}
