package models

import (
	"fmt"
	"time"
)

// Booking represents a reservation of one resource for a contiguous
// time interval. ID is zero until the store assigns one.
type Booking struct {
	ID            int64     `json:"id,omitempty"`
	ResourceID    string    `json:"resourceId"`
	StartDateTime LocalTime `json:"startDateTime"`
	EndDateTime   LocalTime `json:"endDateTime"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Resource is a bookable entity enumerated in configuration; never
// persisted or mutated by this service.
type Resource struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Persisted reports whether the booking has a store-assigned ID.
func (b *Booking) Persisted() bool {
	return b.ID != 0
}

// Occupies reports whether the booking covers the instant t.
// The interval is half-open [start, end): a booking occupies its own
// start instant but not its end instant, so back-to-back bookings
// never claim the shared boundary twice.
func (b *Booking) Occupies(t time.Time) bool {
	return !t.Before(b.StartDateTime.Time) && t.Before(b.EndDateTime.Time)
}

// Validate checks the fields required for persistence.
func (b *Booking) Validate() error {
	if b.ResourceID == "" {
		return fmt.Errorf("resourceId is required")
	}
	if b.Title == "" {
		return fmt.Errorf("title is required")
	}
	if b.StartDateTime.IsZero() || b.EndDateTime.IsZero() {
		return fmt.Errorf("startDateTime and endDateTime are required")
	}
	if !b.StartDateTime.Before(b.EndDateTime.Time) {
		return fmt.Errorf("endDateTime must be after startDateTime")
	}
	return nil
}
