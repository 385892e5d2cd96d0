package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hangarbook/internal/availability"
	"hangarbook/internal/database"
	"hangarbook/internal/export"
	"hangarbook/internal/metrics"
	"hangarbook/internal/models"
	"hangarbook/internal/web"
)

// bookingRequest is the request body for POST and PUT /api/bookings.
type bookingRequest struct {
	ID            int64  `json:"id,omitempty"`
	ResourceID    string `json:"resourceId"`
	StartDateTime string `json:"startDateTime"` // Format: 2006-01-02T15:04
	EndDateTime   string `json:"endDateTime"`   // Format: 2006-01-02T15:04
	Title         string `json:"title"`
}

// deleteRequest is the request body for DELETE /api/bookings.
type deleteRequest struct {
	ID int64 `json:"id"`
}

func decodeBookingRequest(r *http.Request) (*models.Booking, int64, error) {
	var req bookingRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return nil, 0, fmt.Errorf("invalid JSON body")
	}

	start, err := models.ParseLocal(req.StartDateTime)
	if err != nil {
		return nil, 0, err
	}
	end, err := models.ParseLocal(req.EndDateTime)
	if err != nil {
		return nil, 0, err
	}

	b := &models.Booking{
		ResourceID:    req.ResourceID,
		StartDateTime: start,
		EndDateTime:   end,
		Title:         req.Title,
	}
	if err := b.Validate(); err != nil {
		return nil, 0, err
	}
	return b, req.ID, nil
}

// handleListBookings returns bookings sorted by start time.
// GET /{locale}/api/bookings?resourceId=<id>&date=YYYY-MM-DD
func (s *HTTPServer) handleListBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("list_bookings")
	if _, ok := s.apiLocale(w, r); !ok {
		return
	}

	filter := database.BookingFilter{
		ResourceID: r.URL.Query().Get("resourceId"),
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		filter.Day = day
	}

	bookings, err := s.db.ListBookings(r.Context(), filter)
	if err != nil {
		s.storeFailure(w, err, "failed to fetch bookings")
		return
	}

	writeJSON(w, http.StatusOK, bookings)
}

// handleCreateBooking persists a new booking; the store assigns its id.
// POST /{locale}/api/bookings
func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("create_booking")
	if _, ok := s.apiLocale(w, r); !ok {
		return
	}

	b, id, err := decodeBookingRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if id != 0 {
		writeError(w, http.StatusBadRequest, "id must not be set on create")
		return
	}

	if err := s.db.CreateBooking(r.Context(), b); err != nil {
		s.storeFailure(w, err, "failed to create booking")
		return
	}

	metrics.IncBookingCreated()
	writeJSON(w, http.StatusCreated, b)
}

// handleUpdateBooking overwrites the booking matching the body's id.
// An unknown id is a no-op reported as {"updated": 0}.
// PUT /{locale}/api/bookings
func (s *HTTPServer) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("update_booking")
	if _, ok := s.apiLocale(w, r); !ok {
		return
	}

	b, id, err := decodeBookingRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if id == 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	affected, err := s.db.UpdateBooking(r.Context(), id, b)
	if err != nil {
		s.storeFailure(w, err, "failed to update booking")
		return
	}

	if affected > 0 {
		metrics.IncBookingUpdated()
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": affected})
}

// handleDeleteBooking removes the booking matching the body's id.
// An unknown id is a no-op reported as {"deleted": 0}.
// DELETE /{locale}/api/bookings
func (s *HTTPServer) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("delete_booking")
	if _, ok := s.apiLocale(w, r); !ok {
		return
	}

	var req deleteRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ID == 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	affected, err := s.db.DeleteBooking(r.Context(), req.ID)
	if err != nil {
		s.storeFailure(w, err, "failed to delete booking")
		return
	}

	if affected > 0 {
		metrics.IncBookingDeleted()
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": affected})
}

// handleExportBookings streams all bookings as an xlsx workbook.
// GET /{locale}/api/bookings/export
func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("export_bookings")
	if _, ok := s.apiLocale(w, r); !ok {
		return
	}

	bookings, err := s.db.ListBookings(r.Context(), database.BookingFilter{})
	if err != nil {
		s.storeFailure(w, err, "failed to fetch bookings")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, bookings); err != nil {
		s.log.Error().Err(err).Msg("failed to build export workbook")
		writeError(w, http.StatusInternalServerError, "failed to export bookings")
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = buf.WriteTo(w)
}

// handleBookingPage renders the calendar grid for one day.
// GET /{locale}/booking?date=YYYY-MM-DD
func (s *HTTPServer) handleBookingPage(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("booking_page")

	locale := r.PathValue("locale")
	if !s.cfg.LocaleSupported(locale) {
		http.Redirect(w, r, fmt.Sprintf("/%s/booking", s.cfg.Server.DefaultLocale), http.StatusFound)
		return
	}

	now := time.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	bookings, err := s.db.ListBookings(r.Context(), database.BookingFilter{Day: date})
	if err != nil {
		s.storeFailure(w, err, "failed to fetch bookings")
		return
	}

	grid := availability.BuildDayGrid(s.cfg.Resources, bookings, date, now)

	var buf bytes.Buffer
	err = s.page.Render(&buf, web.PageData{
		Locale:   locale,
		Date:     date,
		Grid:     grid,
		Bookings: bookings,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to render booking page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// storeFailure logs a backend failure and surfaces it as a 500.
func (s *HTTPServer) storeFailure(w http.ResponseWriter, err error, msg string) {
	metrics.IncStoreError()
	s.log.Error().Err(err).Msg(msg)
	writeError(w, http.StatusInternalServerError, err.Error())
}
