// Package pantry holds the pantry items of a session and the rules for
// estimating, reporting and importing their expiry dates.
package pantry

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used for purchase and expiry dates
const DateLayout = "2006-01-02"

// Item is a single pantry entry. Dates are ISO strings, or empty when unknown
// or when the item does not expire.
type Item struct {
	Name         string `json:"name"`
	PurchaseDate string `json:"purchase_date"`
	ExpiryDate   string `json:"expiry_date"`
	Quantity     int    `json:"quantity"`
	HighPriority bool   `json:"high_priority"`
}

// NewItem builds an item with the defaults applied
func NewItem(name, purchaseDate, expiryDate string, quantity int, highPriority bool) Item {
	if quantity < 1 {
		quantity = 1
	}
	return Item{
		Name:         strings.TrimSpace(name),
		PurchaseDate: strings.TrimSpace(purchaseDate),
		ExpiryDate:   strings.TrimSpace(expiryDate),
		Quantity:     quantity,
		HighPriority: highPriority,
	}
}

// Clean applies item defaults and reports whether the item may be stored
func (i Item) Clean() (Item, bool) {
	item := NewItem(i.Name, i.PurchaseDate, i.ExpiryDate, i.Quantity, i.HighPriority)
	return item, item.Name != ""
}

// ParseDate parses an ISO calendar date. ok is false for empty or malformed input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// FormatDate renders t as an ISO calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to its calendar date at UTC midnight, keeping t's local date
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// nameKey is the case- and space-insensitive identity of an item name
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
