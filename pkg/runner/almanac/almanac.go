// Package almanac prints the almanac for a run of days.
package almanac

import (
	"context"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/almanac"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/printers"
)

// Almanac prints Days consecutive almanacs starting at On.
type Almanac struct {
	On    time.Time
	Days  int
	Print *printers.PrettyPrint
}

func (a *Almanac) Do(ctx context.Context) error {
	pp := a.Print
	if pp == nil {
		pp = printers.New()
	}
	out := pp.Out
	if out == nil {
		out = color.Output
	}
	n := a.Days
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		day := entry.Day(a.On).AddDate(0, 0, i)
		a.header(out, day)
		pp.Almanac(almanac.For(day))
	}
	return nil
}

func (a *Almanac) header(out io.Writer, day time.Time) {
	info := almanac.For(day)
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	bold.Fprintf(out, "%s %s", entry.Key(day), day.Weekday())
	faint.Fprintf(out, "  %s日 · %s年\n", info.DayLabel, info.ZodiacYear)
}
