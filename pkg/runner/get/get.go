// Package get prints one day of the journal, optionally following edits
// made by other processes.
package get

import (
	"context"
	"errors"

	"tableflip.dev/daybook/pkg/almanac"
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/printers"
)

type Get struct {
	App    *app.Service
	Date   string
	Follow bool
	Print  *printers.PrettyPrint
}

func (n *Get) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not get, no journal")
	}
	day, err := entry.ParseDate(n.Date)
	if err != nil {
		return err
	}
	pp := n.Print
	if pp == nil {
		pp = printers.New()
	}
	pp.NewLine()
	pp.Day(n.App.Entry(n.Date), almanac.For(day))
	if !n.Follow {
		return nil
	}

	events, err := n.App.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			if err := n.App.Reload(); err != nil {
				return err
			}
			pp.NewLine()
			pp.Day(n.App.Entry(n.Date), almanac.For(day))
		}
	}
}
