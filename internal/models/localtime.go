package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the wire and storage format for booking instants.
// Local wall-clock, minute precision, no zone designator.
const TimeLayout = "2006-01-02T15:04"

// LocalTime is a wall-clock instant serialized as "2006-01-02T15:04".
// Used for booking start/end times both in JSON and in the database,
// where the lexicographic order of the formatted string matches
// chronological order.
type LocalTime struct {
	time.Time
}

// ParseLocal parses a wall-clock string in the booking time layout.
func ParseLocal(s string) (LocalTime, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return LocalTime{}, fmt.Errorf("invalid datetime %q; expected %s", s, TimeLayout)
	}
	return LocalTime{t}, nil
}

// At builds a LocalTime from a time.Time, truncated to minute precision.
func At(t time.Time) LocalTime {
	return LocalTime{t.Truncate(time.Minute)}
}

func (t LocalTime) String() string {
	return t.Format(TimeLayout)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimeLayout))
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLocal(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer; bookings store instants as TEXT.
func (t LocalTime) Value() (driver.Value, error) {
	return t.Format(TimeLayout), nil
}

// Scan implements sql.Scanner.
func (t *LocalTime) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseLocal(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = At(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LocalTime", src)
	}
}
