package store

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/entry"
)

// View is the top-level screen the client was last on.
type View string

const (
	DailyRecord View = "DAILY_RECORD"
	Calendar    View = "CALENDAR"
)

// ParseView accepts any case of a view name.
func ParseView(s string) (View, error) {
	v := View(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case DailyRecord, Calendar:
		return v, nil
	}
	return "", fmt.Errorf("store: unknown view %q", s)
}

// State is everything the client persists between sessions.
type State struct {
	SelectedDate string                 `json:"selectedDate"`
	CurrentView  View                   `json:"currentView"`
	CalendarView calendar.Granularity   `json:"calendarView"`
	Entries      map[string]entry.Entry `json:"entries"`
}

// DefaultState is the state of a first run on day now.
func DefaultState(now time.Time) State {
	return State{
		SelectedDate: entry.Key(now),
		CurrentView:  DailyRecord,
		CalendarView: calendar.Month,
		Entries:      map[string]entry.Entry{},
	}
}

// Normalize fills fields a cached blob may have left out and resets values
// that no longer parse.
func (st State) Normalize(now time.Time) State {
	def := DefaultState(now)
	if _, err := entry.ParseDate(st.SelectedDate); err != nil {
		st.SelectedDate = def.SelectedDate
	}
	if v, err := ParseView(string(st.CurrentView)); err != nil {
		st.CurrentView = def.CurrentView
	} else {
		st.CurrentView = v
	}
	if g, err := calendar.ParseGranularity(string(st.CalendarView)); err != nil {
		st.CalendarView = def.CalendarView
	} else {
		st.CalendarView = g
	}
	entries := make(map[string]entry.Entry, len(st.Entries))
	for k, e := range st.Entries {
		if _, err := entry.ParseDate(k); err != nil {
			continue
		}
		e.Date = k
		entries[k] = e.Normalize()
	}
	st.Entries = entries
	return st
}

// StartSession puts a loaded state on today's daily record. The calendar
// granularity is kept.
func (st State) StartSession(now time.Time) State {
	st.SelectedDate = entry.Key(now)
	st.CurrentView = DailyRecord
	return st
}
