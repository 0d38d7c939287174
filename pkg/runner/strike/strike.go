// Package strike removes a todo, expense or media item from a day.
package strike

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/printers"
)

type Kind string

const (
	Todo    Kind = "todo"
	Expense Kind = "expense"
	Media   Kind = "media"
)

type Strike struct {
	App *app.Service
	// Position is 1-based, as printed.
	Position int
	Date     string
	Kind     Kind
	Print    *printers.PrettyPrint
}

func (n *Strike) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not strike, no journal")
	}
	pp := n.Print
	if pp == nil {
		pp = printers.New()
	}

	i := n.Position - 1
	switch n.Kind {
	case Todo:
		e, err := n.App.RemoveTodo(n.Date, i)
		if err != nil {
			return err
		}
		pp.TitleWithCount(n.Date, len(e.Todos), "todo", "todos")
		pp.Todos(e.Todos)
	case Expense:
		e, err := n.App.RemoveExpense(n.Date, i)
		if err != nil {
			return err
		}
		pp.TitleWithCount(n.Date, len(e.Expenses), "expense", "expenses")
		pp.Expenses(e.Expenses)
	case Media:
		e, err := n.App.RemoveMedia(n.Date, i)
		if err != nil {
			return err
		}
		pp.TitleWithCount(n.Date, len(e.Media), "file", "files")
		pp.Media(e.Media)
	default:
		return fmt.Errorf("can not strike %q", n.Kind)
	}
	return nil
}
