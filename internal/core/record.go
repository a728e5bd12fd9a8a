package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for record dates.
const DateLayout = "2006-01-02"

// RestDay is the reserved training label that never counts as a session.
const RestDay = "rest day"

type (
	// Record is one day of training, diet and mood notes.
	// At most one record exists per date; the ID is assigned at creation
	// and survives edits of the same date.
	Record struct {
		ID       string   `json:"id"`
		Date     string   `json:"date"` // YYYY-MM-DD
		Training []string `json:"training"`
		Diet     string   `json:"diet"`
		Mood     string   `json:"mood"`
	}
)

var (
	ErrEmptyDate      = errors.New("empty date")
	ErrInvalidDate    = errors.New("invalid date")
	ErrRecordNotFound = errors.New("record not found")
)

// NewID returns a fresh record ID. Timestamps are unique enough for a
// single-user log and keep IDs sortable by creation time.
func NewID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := r.ParsedDate(); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, r.Date)
	}
	return nil
}

// ParsedDate parses the record date in the wire format.
func (r Record) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

// IsTrainingDay reports whether at least one training entry is a real
// session, i.e. not the rest day marker.
func (r Record) IsTrainingDay() bool {
	for _, t := range r.Training {
		if t != RestDay {
			return true
		}
	}
	return false
}

// Sessions returns the training entries that count as sessions,
// preserving their listed order.
func (r Record) Sessions() []string {
	var out []string
	for _, t := range r.Training {
		if t != RestDay {
			out = append(out, t)
		}
	}
	return out
}

// Normalize fills in missing pieces of a loaded record: a generated ID
// when absent and a non-nil training slice. Records without a date are
// not salvageable; callers should drop them.
func (r Record) Normalize() Record {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.Training == nil {
		r.Training = []string{}
	}
	return r
}
