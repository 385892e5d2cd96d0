// Package availability derives the calendar grid for one day: each
// (resource, hourly slot) cell is classified as booked, past, or
// available from the current booking set and wall-clock time. Nothing
// here is persisted; the grid is computed fresh per render.
package availability

import (
	"fmt"
	"time"

	"hangarbook/internal/models"
)

// CellState classifies a single grid cell.
type CellState string

const (
	StateAvailable CellState = "available"
	StateBooked    CellState = "booked"
	StatePast      CellState = "past"
)

// DefaultDuration is the draft length for a new booking opened from
// an available cell.
const DefaultDuration = time.Hour

// SlotsPerDay is the number of hourly slots rendered per day.
const SlotsPerDay = 24

// Cell is one (resource, slot) entry of the grid.
type Cell struct {
	ResourceID string
	Start      models.LocalTime
	State      CellState

	// Set only when State is StateBooked.
	BookingID    int64
	BookingTitle string
}

// Row holds one timeslot's cells across all resources.
type Row struct {
	Label string // "10:00"
	Cells []Cell
}

// Grid is the rendered day: one row per timeslot, one column per
// resource, in catalog order.
type Grid struct {
	Date      time.Time
	Resources []models.Resource
	Rows      []Row
}

// Timeslots returns the hourly slot labels "00:00" through "23:00".
func Timeslots() []string {
	labels := make([]string, SlotsPerDay)
	for i := range labels {
		labels[i] = fmt.Sprintf("%02d:00", i)
	}
	return labels
}

// BuildDayGrid classifies every (resource, slot) cell of the given
// date. now supplies the wall-clock boundary for past slots; bookings
// are expected in ascending start order, and the first booking
// covering a slot wins when intervals overlap.
func BuildDayGrid(resources []models.Resource, bookings []models.Booking, date, now time.Time) Grid {
	grid := Grid{
		Date:      date,
		Resources: resources,
		Rows:      make([]Row, 0, SlotsPerDay),
	}

	labels := Timeslots()
	for hour := 0; hour < SlotsPerDay; hour++ {
		slotStart := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
		row := Row{
			Label: labels[hour],
			Cells: make([]Cell, 0, len(resources)),
		}

		for _, resource := range resources {
			cell := Cell{
				ResourceID: resource.ID,
				Start:      models.At(slotStart),
				State:      StateAvailable,
			}

			if b := coveringBooking(bookings, resource.ID, slotStart); b != nil {
				cell.State = StateBooked
				cell.BookingID = b.ID
				cell.BookingTitle = b.Title
			} else if slotStart.Before(now) {
				cell.State = StatePast
			}

			row.Cells = append(row.Cells, cell)
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

// NewDraft builds the unpersisted booking opened by clicking an
// available cell: one hour long, empty title, no ID.
func NewDraft(resourceID string, start time.Time) models.Booking {
	return models.Booking{
		ResourceID:    resourceID,
		StartDateTime: models.At(start),
		EndDateTime:   models.At(start.Add(DefaultDuration)),
	}
}

func coveringBooking(bookings []models.Booking, resourceID string, t time.Time) *models.Booking {
	for i := range bookings {
		if bookings[i].ResourceID == resourceID && bookings[i].Occupies(t) {
			return &bookings[i]
		}
	}
	return nil
}
