package database

import (
	"context"
	"time"

	"hangarbook/internal/models"
)

// BookingFilter restricts ListBookings. Zero-value fields are ignored.
type BookingFilter struct {
	ResourceID string
	// Day restricts to bookings whose interval overlaps this local
	// calendar date. A booking spanning midnight shows up on both
	// days it touches.
	Day time.Time
}

const bookingColumns = `id, resource_id, start_datetime, end_datetime, title, created_at, updated_at`

// ListBookings returns bookings ascending by start time, optionally
// filtered. No pagination; the caller bounds the result by day.
func (db *DB) ListBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var (
		conds []string
		args  []any
	)

	if filter.ResourceID != "" {
		conds = append(conds, `resource_id = ?`)
		args = append(args, filter.ResourceID)
	}
	if !filter.Day.IsZero() {
		dayStart := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, filter.Day.Location())
		conds = append(conds, `start_datetime < ? AND end_datetime > ?`)
		args = append(args,
			dayStart.AddDate(0, 0, 1).Format(models.TimeLayout),
			dayStart.Format(models.TimeLayout),
		)
	}

	for i, cond := range conds {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` ORDER BY start_datetime ASC, id ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("list bookings", err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.ResourceID, &b.StartDateTime, &b.EndDateTime,
			&b.Title, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, storeErr("scan booking", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list bookings", err)
	}
	return bookings, nil
}

// CreateBooking inserts a booking and assigns its ID.
func (db *DB) CreateBooking(ctx context.Context, b *models.Booking) error {
	now := time.Now()
	result, err := db.ExecContext(ctx, `
		INSERT INTO bookings (resource_id, start_datetime, end_datetime, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ResourceID, b.StartDateTime, b.EndDateTime, b.Title, now, now,
	)
	if err != nil {
		return storeErr("insert booking", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storeErr("get last id", err)
	}

	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now

	db.logger.Info().
		Int64("booking_id", id).
		Str("resource_id", b.ResourceID).
		Str("start", b.StartDateTime.String()).
		Msg("booking created")
	return nil
}

// UpdateBooking overwrites the mutable fields of the booking matching
// id. Returns the number of affected rows; an unknown id is a no-op
// reported as 0, not an error.
func (db *DB) UpdateBooking(ctx context.Context, id int64, b *models.Booking) (int64, error) {
	result, err := db.ExecContext(ctx, `
		UPDATE bookings
		SET resource_id = ?, start_datetime = ?, end_datetime = ?, title = ?, updated_at = ?
		WHERE id = ?`,
		b.ResourceID, b.StartDateTime, b.EndDateTime, b.Title, time.Now(), id,
	)
	if err != nil {
		return 0, storeErr("update booking", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, storeErr("update booking", err)
	}

	if affected > 0 {
		db.logger.Info().Int64("booking_id", id).Msg("booking updated")
	}
	return affected, nil
}

// DeleteBooking removes the booking matching id. An unknown id is a
// no-op reported as 0 affected rows.
func (db *DB) DeleteBooking(ctx context.Context, id int64) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return 0, storeErr("delete booking", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, storeErr("delete booking", err)
	}

	if affected > 0 {
		db.logger.Info().Int64("booking_id", id).Msg("booking deleted")
	}
	return affected, nil
}
