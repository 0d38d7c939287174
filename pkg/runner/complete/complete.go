// Package complete toggles a todo between open and done.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
)

type Complete struct {
	App *app.Service
	// Position is 1-based, as printed.
	Position int
	Date     string
	Print    *printers.PrettyPrint
}

func (n *Complete) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not complete, no journal")
	}
	e, err := n.App.ToggleTodo(n.Date, n.Position-1)
	if err != nil {
		return err
	}
	pp := n.Print
	if pp == nil {
		pp = printers.New()
	}
	pp.TitleWithCount(n.Date, len(e.Todos), "todo", "todos")
	pp.Todos(e.Todos)
	return nil
}
