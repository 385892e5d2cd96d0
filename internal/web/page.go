// Package web renders the booking calendar page. The grid itself is
// computed server-side; an inline script drives create/edit/delete
// through the JSON API and reloads the day after each mutation.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"hangarbook/internal/availability"
	"hangarbook/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const dateLayout = "2006-01-02"

// Page renders the calendar template.
type Page struct {
	tmpl *template.Template
}

func NewPage() (*Page, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Page{tmpl: tmpl}, nil
}

// PageData is the input for one rendered calendar day.
type PageData struct {
	Locale   string
	Date     time.Time
	Grid     availability.Grid
	Bookings []models.Booking
}

type pageView struct {
	Locale      string
	DisplayDate string
	DateParam   string
	PrevDate    string
	NextDate    string
	Grid        availability.Grid
	Bookings    []models.Booking
}

func (p *Page) Render(w io.Writer, data PageData) error {
	view := pageView{
		Locale:      data.Locale,
		DisplayDate: data.Date.Format("Monday, January 2, 2006"),
		DateParam:   data.Date.Format(dateLayout),
		// Навигация сдвигает дату ровно на 24 часа.
		PrevDate: data.Date.Add(-24 * time.Hour).Format(dateLayout),
		NextDate: data.Date.Add(24 * time.Hour).Format(dateLayout),
		Grid:     data.Grid,
		Bookings: data.Bookings,
	}
	return p.tmpl.ExecuteTemplate(w, "booking.html", view)
}
