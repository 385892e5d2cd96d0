package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangarbook/internal/models"
)

var testResources = []models.Resource{
	{ID: "aircraft1", Title: "Cessna 172"},
	{ID: "aircraft2", Title: "Piper PA-28"},
}

func lt(s string) models.LocalTime {
	parsed, err := models.ParseLocal(s)
	if err != nil {
		panic(err)
	}
	return parsed
}

// cellAt fetches the cell for a resource at the "HH:MM" slot label.
func cellAt(t *testing.T, grid Grid, resourceID, label string) Cell {
	t.Helper()
	for _, row := range grid.Rows {
		if row.Label != label {
			continue
		}
		for _, cell := range row.Cells {
			if cell.ResourceID == resourceID {
				return cell
			}
		}
	}
	t.Fatalf("no cell for %s at %s", resourceID, label)
	return Cell{}
}

func TestBuildDayGrid_Classification(t *testing.T) {
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	now := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.Local)

	bookings := []models.Booking{
		{
			ID:            42,
			ResourceID:    "aircraft1",
			StartDateTime: lt("2024-01-01T10:00"),
			EndDateTime:   lt("2024-01-01T11:00"),
			Title:         "Checkride",
		},
	}

	grid := BuildDayGrid(testResources, bookings, date, now)
	require.Len(t, grid.Rows, 24)
	require.Len(t, grid.Rows[0].Cells, 2)

	tests := []struct {
		name     string
		resource string
		slot     string
		want     CellState
	}{
		{"booking start slot is booked", "aircraft1", "10:00", StateBooked},
		{"booking end slot is free", "aircraft1", "11:00", StateAvailable},
		{"slot before now is past", "aircraft1", "09:00", StatePast},
		{"slot after now is available", "aircraft1", "12:00", StateAvailable},
		{"other resource unaffected at 10:00", "aircraft2", "10:00", StateAvailable},
		{"other resource past at 09:00", "aircraft2", "09:00", StatePast},
		{"midnight is past", "aircraft1", "00:00", StatePast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := cellAt(t, grid, tt.resource, tt.slot)
			assert.Equal(t, tt.want, cell.State)
		})
	}

	booked := cellAt(t, grid, "aircraft1", "10:00")
	assert.Equal(t, int64(42), booked.BookingID)
	assert.Equal(t, "Checkride", booked.BookingTitle)

	free := cellAt(t, grid, "aircraft1", "12:00")
	assert.Zero(t, free.BookingID)
}

func TestBuildDayGrid_BookedBeatsPast(t *testing.T) {
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	// Now is well after the booking; a booked slot in the past still
	// renders as booked so its record stays clickable for editing.
	now := time.Date(2024, time.January, 1, 20, 0, 0, 0, time.Local)

	bookings := []models.Booking{
		{
			ID:            7,
			ResourceID:    "aircraft1",
			StartDateTime: lt("2024-01-01T08:00"),
			EndDateTime:   lt("2024-01-01T09:00"),
			Title:         "Morning",
		},
	}

	grid := BuildDayGrid(testResources, bookings, date, now)
	assert.Equal(t, StateBooked, cellAt(t, grid, "aircraft1", "08:00").State)
	assert.Equal(t, StatePast, cellAt(t, grid, "aircraft1", "09:00").State)
}

func TestBuildDayGrid_MultiHourBooking(t *testing.T) {
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	now := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.Local)

	bookings := []models.Booking{
		{
			ID:            3,
			ResourceID:    "aircraft2",
			StartDateTime: lt("2024-01-01T13:00"),
			EndDateTime:   lt("2024-01-01T16:00"),
			Title:         "Cross-country",
		},
	}

	grid := BuildDayGrid(testResources, bookings, date, now)
	for _, slot := range []string{"13:00", "14:00", "15:00"} {
		assert.Equal(t, StateBooked, cellAt(t, grid, "aircraft2", slot).State, "slot %s", slot)
	}
	assert.Equal(t, StateAvailable, cellAt(t, grid, "aircraft2", "16:00").State)
	assert.Equal(t, StateAvailable, cellAt(t, grid, "aircraft2", "12:00").State)
}

func TestBuildDayGrid_OverlapFirstMatchWins(t *testing.T) {
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	now := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.Local)

	// The store does not prevent overlaps; the grid shows the booking
	// with the earlier start for the contested slot.
	bookings := []models.Booking{
		{
			ID:            1,
			ResourceID:    "aircraft1",
			StartDateTime: lt("2024-01-01T10:00"),
			EndDateTime:   lt("2024-01-01T12:00"),
			Title:         "First",
		},
		{
			ID:            2,
			ResourceID:    "aircraft1",
			StartDateTime: lt("2024-01-01T11:00"),
			EndDateTime:   lt("2024-01-01T13:00"),
			Title:         "Second",
		},
	}

	grid := BuildDayGrid(testResources, bookings, date, now)
	contested := cellAt(t, grid, "aircraft1", "11:00")
	assert.Equal(t, StateBooked, contested.State)
	assert.Equal(t, int64(1), contested.BookingID)

	tail := cellAt(t, grid, "aircraft1", "12:00")
	assert.Equal(t, int64(2), tail.BookingID)
}

func TestTimeslots(t *testing.T) {
	slots := Timeslots()
	require.Len(t, slots, 24)
	assert.Equal(t, "00:00", slots[0])
	assert.Equal(t, "09:00", slots[9])
	assert.Equal(t, "23:00", slots[23])

	// Grid row labels are exactly the slot labels, in order.
	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	grid := BuildDayGrid(nil, nil, date, date)
	require.Len(t, grid.Rows, len(slots))
	for i, row := range grid.Rows {
		assert.Equal(t, slots[i], row.Label)
	}
}

func TestNewDraft(t *testing.T) {
	start := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.Local)
	draft := NewDraft("aircraft1", start)

	assert.False(t, draft.Persisted())
	assert.Equal(t, "aircraft1", draft.ResourceID)
	assert.Equal(t, "2024-01-01T10:00", draft.StartDateTime.String())
	assert.Equal(t, "2024-01-01T11:00", draft.EndDateTime.String())
	assert.Empty(t, draft.Title)
}
