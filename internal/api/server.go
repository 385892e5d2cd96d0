// Package api exposes the booking CRUD endpoints and serves the
// calendar page.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hangarbook/internal/config"
	"hangarbook/internal/database"
	"hangarbook/internal/web"
)

// HTTPServer serves the booking API and calendar page. Handlers are
// stateless; the database pool is the only shared resource.
type HTTPServer struct {
	cfg    *config.Config
	db     *database.DB
	page   *web.Page
	log    *zerolog.Logger
	server *http.Server
}

func NewHTTPServer(cfg *config.Config, db *database.DB, logger *zerolog.Logger) (*HTTPServer, error) {
	page, err := web.NewPage()
	if err != nil {
		return nil, err
	}

	s := &HTTPServer{
		cfg:  cfg,
		db:   db,
		page: page,
		log:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{locale}/api/bookings", s.handleListBookings)
	mux.HandleFunc("POST /{locale}/api/bookings", s.handleCreateBooking)
	mux.HandleFunc("PUT /{locale}/api/bookings", s.handleUpdateBooking)
	mux.HandleFunc("DELETE /{locale}/api/bookings", s.handleDeleteBooking)
	mux.HandleFunc("GET /{locale}/api/bookings/export", s.handleExportBookings)
	mux.HandleFunc("GET /{locale}/booking", s.handleBookingPage)
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.logRequests(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the server's root handler, for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *HTTPServer) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctxShutdown)
	}()

	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server started")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, fmt.Sprintf("/%s/booking", s.cfg.Server.DefaultLocale), http.StatusFound)
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *HTTPServer) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctxPing, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()
	if err := s.db.PingContext(ctxPing); err != nil {
		http.Error(w, "db not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// apiLocale validates the locale path segment for API routes.
func (s *HTTPServer) apiLocale(w http.ResponseWriter, r *http.Request) (string, bool) {
	locale := r.PathValue("locale")
	if !s.cfg.LocaleSupported(locale) {
		writeError(w, http.StatusNotFound, "unknown locale")
		return "", false
	}
	return locale, true
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *HTTPServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		s.log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
