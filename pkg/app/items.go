package app

import (
	"fmt"
	"slices"

	"tableflip.dev/daybook/pkg/entry"
)

// AddTodo appends an open todo to date.
func (s *Service) AddTodo(date, text string) (entry.Entry, error) {
	t := entry.NewTodo(text)
	return s.Modify(date, func(cur entry.Entry) (entry.Patch, error) {
		return entry.SetTodos(append(cur.Todos, t)...), nil
	})
}

// ToggleTodo flips the completion of the i-th todo (0-based).
func (s *Service) ToggleTodo(date string, i int) (entry.Entry, error) {
	return s.Modify(date, func(cur entry.Entry) (entry.Patch, error) {
		if i < 0 || i >= len(cur.Todos) {
			return entry.Patch{}, fmt.Errorf("%w: todo %d", ErrNoItem, i+1)
		}
		cur.Todos[i].Completed = !cur.Todos[i].Completed
		return entry.SetTodos(cur.Todos...), nil
	})
}

// RemoveTodo drops the i-th todo.
func (s *Service) RemoveTodo(date string, i int) (entry.Entry, error) {
	return s.Modify(date, func(cur entry.Entry) (entry.Patch, error) {
		if i < 0 || i >= len(cur.Todos) {
			return entry.Patch{}, fmt.Errorf("%w: todo %d", ErrNoItem, i+1)
		}
		return entry.SetTodos(slices.Delete(cur.Todos, i, i+1)...), nil
	})
}

// AddExpense appends an expense line to date.
func (s *Service) AddExpense(date, item, amount string) (entry.Entry, error) {
	x, err := entry.NewExpense(item, amount)
	if err != nil {
		return entry.Entry{}, err
	}
	return s.Modify(date, func(cur entry.Entry) (entry.Patch, error) {
		return entry.SetExpenses(append(cur.Expenses, x)...), nil
	})
}

// RemoveExpense drops the i-th expense line.
func (s *Service) RemoveExpense(date string, i int) (entry.Entry, error) {
	return s.Modify(date, func(cur entry.Entry) (entry.Patch, error) {
		if i < 0 || i >= len(cur.Expenses) {
			return entry.Patch{}, fmt.Errorf("%w: expense %d", ErrNoItem, i+1)
		}
		return entry.SetExpenses(slices.Delete(cur.Expenses, i, i+1)...), nil
	})
}

// SetInsight replaces the note of date.
func (s *Service) SetInsight(date, markup string) (entry.Entry, error) {
	return s.Update(date, entry.SetInsight(markup))
}

// RemoveMedia drops the i-th attachment. The uploaded file stays on the
// server.
func (s *Service) RemoveMedia(date string, i int) (entry.Entry, error) {
	return s.Modify(date, func(cur entry.Entry) (entry.Patch, error) {
		if i < 0 || i >= len(cur.Media) {
			return entry.Patch{}, fmt.Errorf("%w: media %d", ErrNoItem, i+1)
		}
		return entry.SetMedia(slices.Delete(cur.Media, i, i+1)...), nil
	})
}
