// Package export writes journal records out in formats other tools read.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"tableflip.dev/daybook/pkg/entry"
)

const (
	ProductID = "-//tableflip.dev//daybook//EN"
	uidDomain = "daybook.tableflip.dev"
	calName   = "Daybook"

	propCalName = "X-WR-CALNAME"
)

// emptyCalendar is written when nothing was recorded; an encoded calendar
// needs at least one component.
const emptyCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ProductID + "\r\nEND:VCALENDAR\r\n"

// ICS writes one all-day event per non-empty entry and returns how many were
// written. stamp is the DTSTAMP of every event.
func ICS(w io.Writer, entries []entry.Entry, stamp time.Time) (int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(propCalName, calName)

	dtStamp := ical.NewProp(ical.PropDateTimeStamp)
	dtStamp.SetDateTime(stamp.UTC())

	n := 0
	for _, e := range entries {
		if e.IsEmpty() {
			continue
		}
		day, err := entry.ParseDate(e.Date)
		if err != nil {
			return n, err
		}
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", e.Date, uidDomain))
		ev.Props.Set(dtStamp)

		start := ical.NewProp(ical.PropDateTimeStart)
		start.SetDate(day)
		ev.Props.Set(start)

		ev.Props.SetText(ical.PropSummary, Summary(e))
		if desc := Description(e); desc != "" {
			ev.Props.SetText(ical.PropDescription, desc)
		}
		cal.Children = append(cal.Children, ev.Component)
		n++
	}

	if n == 0 {
		_, err := io.WriteString(w, emptyCalendar)
		return 0, err
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return n, nil
}

// Summary is the one-line title of an entry.
func Summary(e entry.Entry) string {
	if e.MyDaySummary != "" {
		return e.MyDaySummary
	}
	parts := []string{}
	if len(e.Todos) > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d todos", e.Completed(), len(e.Todos)))
	}
	if len(e.Expenses) > 0 {
		parts = append(parts, "spent "+e.Total().StringFixed(2))
	}
	if len(e.Media) > 0 {
		parts = append(parts, fmt.Sprintf("%d media", len(e.Media)))
	}
	if len(parts) == 0 {
		return e.Date
	}
	return strings.Join(parts, ", ")
}

// Description lists todos, expenses and the insight as plain text.
func Description(e entry.Entry) string {
	var b strings.Builder
	for _, t := range e.Todos {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, t.Text)
	}
	for _, x := range e.Expenses {
		fmt.Fprintf(&b, "%s: %s\n", x.Item, x.Amount.StringFixed(2))
	}
	if len(e.Expenses) > 0 {
		fmt.Fprintf(&b, "total: %s\n", e.Total().StringFixed(2))
	}
	if text := entry.PlainText(e.Insight); text != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}
	return strings.TrimSpace(b.String())
}
