package entry

import (
	"errors"
	"fmt"
	"time"
)

// LayoutISO is the layout of a date key.
const LayoutISO = "2006-01-02"

// LayoutSavedAt is the layout of LastSavedAt.
const LayoutSavedAt = "15:04"

// ErrInvalidDate is returned for keys that are not a real YYYY-MM-DD date.
var ErrInvalidDate = errors.New("entry: invalid date key")

// ParseDate parses a date key into midnight UTC of that day.
func ParseDate(key string) (time.Time, error) {
	if len(key) != len(LayoutISO) {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, key)
	}
	t, err := time.Parse(LayoutISO, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, key)
	}
	return t, nil
}

// MustParseDate is ParseDate for constants and tests.
func MustParseDate(key string) time.Time {
	t, err := ParseDate(key)
	if err != nil {
		panic(err)
	}
	return t
}

// Key formats the calendar day of t, in t's own location, as a date key.
func Key(t time.Time) string {
	return t.Format(LayoutISO)
}

// Day returns midnight UTC of the calendar day of t in t's own location, so
// that date arithmetic never crosses a DST boundary.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SavedAt formats the advisory save stamp.
func SavedAt(t time.Time) string {
	return t.Local().Format(LayoutSavedAt)
}
