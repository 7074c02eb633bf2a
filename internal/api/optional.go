package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/phrazzld/tasker-api/internal/domain"
)

// Optional records whether a JSON field was present and whether it was
// null, so partial updates can tell "omitted" from "cleared".
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler. It is only called for fields
// present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// dateOnly is the calendar-date form accepted for due dates besides RFC 3339.
const dateOnly = "2006-01-02"

// ErrInvalidDueDate is returned when a due date is neither RFC 3339 nor YYYY-MM-DD.
var ErrInvalidDueDate = domain.NewValidationError("dueDate", "Invalid due date format")

// DueDate is a task due date accepted as RFC 3339 or YYYY-MM-DD. A bare date
// is midnight UTC.
type DueDate struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DueDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDueDate
	}
	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return ErrInvalidDueDate
}
