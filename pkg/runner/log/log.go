// Package log prints calendar views of the journal.
package log

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/daybook/pkg/almanac"
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/printers"
)

type Log struct {
	App         *app.Service
	Granularity calendar.Granularity
	On          time.Time
	// Today is underlined; zero means the On day.
	Today time.Time
	Print *printers.PrettyPrint
}

func (n *Log) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not log, no journal")
	}
	pp := n.Print
	if pp == nil {
		pp = printers.New()
	}
	today := n.Today
	if today.IsZero() {
		today = n.On
	}
	key := entry.Key(today)
	idx := n.App.Store()

	pp.NewLine()
	switch n.Granularity {
	case calendar.Year:
		pp.Year(calendar.BuildYear(n.On, idx))
	case calendar.Month, "":
		pp.Month(calendar.BuildMonth(n.On), idx, key)
	case calendar.Week:
		lookup := func(date string) (entry.Entry, bool) {
			return n.App.Entry(date), idx.Has(date)
		}
		pp.Week(calendar.BuildWeek(n.On), lookup, key)
	case calendar.Day:
		d := calendar.BuildDay(n.On)
		pp.Day(n.App.Entry(d.Date), almanac.For(n.On))
	}
	pp.NewLine()
	return nil
}
