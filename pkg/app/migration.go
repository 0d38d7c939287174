package app

import (
	"fmt"

	"tableflip.dev/daybook/pkg/entry"
)

// CarryOver moves the open todos of from onto the end of to, keeping their
// ids. Completed todos stay where they were. It returns how many moved.
func (s *Service) CarryOver(from, to string) (int, error) {
	if _, err := entry.ParseDate(from); err != nil {
		return 0, err
	}
	if _, err := entry.ParseDate(to); err != nil {
		return 0, err
	}
	if from == to {
		return 0, fmt.Errorf("app: carry over onto the same day %s", from)
	}

	var open []entry.Todo
	for _, t := range s.store.Get(from).Todos {
		if !t.Completed {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return 0, nil
	}
	moving := make(map[string]bool, len(open))
	for _, t := range open {
		moving[t.ID] = true
	}

	_, err := s.Modify(to, func(dst entry.Entry) (entry.Patch, error) {
		have := make(map[string]bool, len(dst.Todos))
		for _, t := range dst.Todos {
			have[t.ID] = true
		}
		moved := dst.Todos
		for _, t := range open {
			if !have[t.ID] {
				moved = append(moved, t)
			}
		}
		return entry.SetTodos(moved...), nil
	})
	if err != nil {
		return 0, err
	}
	_, err = s.Modify(from, func(src entry.Entry) (entry.Patch, error) {
		rest := make([]entry.Todo, 0, len(src.Todos))
		for _, t := range src.Todos {
			if !moving[t.ID] {
				rest = append(rest, t)
			}
		}
		return entry.SetTodos(rest...), nil
	})
	if err != nil {
		return 0, err
	}
	return len(open), nil
}
