package pantry

import (
	"sort"
	"time"
)

// Expiring is an item with its distance to expiry relative to today
type Expiring struct {
	Item
	DaysLeft int  `json:"days_left"`
	Overdue  bool `json:"overdue,omitempty"`
}

// CalendarEntry is one bar of the expiry calendar
type CalendarEntry struct {
	Name         string    `json:"name"`
	ExpiryDate   time.Time `json:"expiry_date"`
	Quantity     int       `json:"quantity"`
	HighPriority bool      `json:"high_priority"`
}

// ExpiryReporter derives expiry views from a Store
type ExpiryReporter struct {
	store *Store
	clock Clock
}

// NewExpiryReporter creates an ExpiryReporter reading store
func NewExpiryReporter(store *Store, clock Clock) *ExpiryReporter {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ExpiryReporter{store: store, clock: clock}
}

// SoonExpiring returns items expiring within horizon days plus every overdue
// item, most urgent first. Items without a valid expiry date are skipped.
func (r *ExpiryReporter) SoonExpiring(horizon int) []Expiring {
	today := Day(r.clock.Now())

	soon := make([]Expiring, 0)
	for _, item := range r.store.All() {
		expiry, ok := ParseDate(item.ExpiryDate)
		if !ok {
			continue
		}

		daysLeft := DaysBetween(today, expiry)
		switch {
		case daysLeft < 0:
			soon = append(soon, Expiring{Item: item, DaysLeft: daysLeft, Overdue: true})
		case daysLeft <= horizon:
			soon = append(soon, Expiring{Item: item, DaysLeft: daysLeft})
		}
	}

	// The most overdue item sorts ahead of everything that is still upcoming
	sort.SliceStable(soon, func(i, j int) bool {
		return soon[i].DaysLeft < soon[j].DaysLeft
	})
	return soon
}

// Calendar lists the items with a valid expiry date in store order
func (r *ExpiryReporter) Calendar() []CalendarEntry {
	entries := make([]CalendarEntry, 0)
	for _, item := range r.store.All() {
		expiry, ok := ParseDate(item.ExpiryDate)
		if !ok {
			continue
		}

		name := item.Name
		if name == "" {
			name = "Unknown"
		}
		entries = append(entries, CalendarEntry{
			Name:         name,
			ExpiryDate:   expiry,
			Quantity:     item.Quantity,
			HighPriority: item.HighPriority,
		})
	}
	return entries
}
