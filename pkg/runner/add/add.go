// Package add records todos, expenses and insights on a day.
package add

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
	Insight Kind = "insight"
)

type Add struct {
	App    *app.Service
	Date   string
	Kind   Kind
	Text   string
	Amount string
	Print  *printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not add, no journal")
	}
	pp := n.Print
	if pp == nil {
		pp = printers.New()
	}

	switch n.Kind {
	case Todo:
		e, err := n.App.AddTodo(n.Date, n.Text)
		if err != nil {
			return err
		}
		pp.TitleWithCount(n.Date, len(e.Todos), "todo", "todos")
		pp.Todos(e.Todos)
	case Expense:
		e, err := n.App.AddExpense(n.Date, n.Text, n.Amount)
		if err != nil {
			return err
		}
		pp.TitleWithCount(n.Date, len(e.Expenses), "expense", "expenses")
		pp.Expenses(e.Expenses)
	case Insight:
		e, err := n.App.SetInsight(n.Date, n.Text)
		if err != nil {
			return err
		}
		pp.Title(n.Date)
		pp.Insight(e.Insight)
	default:
		return fmt.Errorf("can not add %q", n.Kind)
	}
	return nil
}
