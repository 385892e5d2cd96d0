package web

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"hangarbook/internal/availability"
	"hangarbook/internal/models"
)

func TestPage_Render(t *testing.T) {
	page, err := NewPage()
	if err != nil {
		t.Fatalf("NewPage() error = %v", err)
	}

	resources := []models.Resource{
		{ID: "aircraft1", Title: "Cessna 172"},
		{ID: "aircraft2", Title: "Piper PA-28"},
	}
	start, _ := models.ParseLocal("2024-01-01T10:00")
	end, _ := models.ParseLocal("2024-01-01T11:00")
	bookings := []models.Booking{
		{ID: 5, ResourceID: "aircraft1", StartDateTime: start, EndDateTime: end, Title: "Checkride"},
	}

	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)
	grid := availability.BuildDayGrid(resources, bookings, date, now)

	var buf bytes.Buffer
	err = page.Render(&buf, PageData{
		Locale:   "en",
		Date:     date,
		Grid:     grid,
		Bookings: bookings,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()

	checks := []string{
		`<html lang="en">`,
		"Cessna 172",
		"Piper PA-28",
		"Monday, January 1, 2024",
		// Prev/next links shift by exactly one day and keep the locale.
		`/en/booking?date=2023-12-31`,
		`/en/booking?date=2024-01-02`,
		// The booked cell carries its record id; the title is shown.
		`data-booking-id="5"`,
		"Checkride",
		`data-state="past"`,
		`data-state="available"`,
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}

	if strings.Contains(html, "${locale}") {
		t.Error("rendered page contains an unsubstituted locale placeholder")
	}
}

func TestPage_RenderEscapesTitles(t *testing.T) {
	page, err := NewPage()
	if err != nil {
		t.Fatalf("NewPage() error = %v", err)
	}

	start, _ := models.ParseLocal("2024-01-01T10:00")
	end, _ := models.ParseLocal("2024-01-01T11:00")
	resources := []models.Resource{{ID: "aircraft1", Title: "Cessna 172"}}
	bookings := []models.Booking{
		{ID: 9, ResourceID: "aircraft1", StartDateTime: start, EndDateTime: end, Title: "<script>alert(1)</script>"},
	}

	date := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	grid := availability.BuildDayGrid(resources, bookings, date, date)

	var buf bytes.Buffer
	if err := page.Render(&buf, PageData{Locale: "en", Date: date, Grid: grid, Bookings: bookings}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("booking title rendered unescaped")
	}
}
