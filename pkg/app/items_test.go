package app

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestTodoLifecycle(t *testing.T) {
	s := newService(t, &memoryCache{}, &memoryRemote{})
	const day = "2024-03-10"

	if s.Store().Has(day) {
		t.Fatal("entry should not exist before the first write")
	}
	for _, text := range []string{"a", "b", "c"} {
		if _, err := s.AddTodo(day, text); err != nil {
			t.Fatalf("add %s: %v", text, err)
		}
	}
	e, err := s.ToggleTodo(day, 1)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !e.Todos[1].Completed || e.Completed() != 1 {
		t.Fatalf("expected b completed, got %+v", e.Todos)
	}
	e, err = s.RemoveTodo(day, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(e.Todos) != 2 || e.Todos[0].Text != "b" {
		t.Fatalf("unexpected todos %+v", e.Todos)
	}
	if _, err := s.RemoveTodo(day, 5); !errors.Is(err, ErrNoItem) {
		t.Fatalf("expected ErrNoItem, got %v", err)
	}
	if s.Store().Len() != 1 {
		t.Fatalf("expected exactly one entry, got %d", s.Store().Len())
	}
}

func TestExpenses(t *testing.T) {
	s := newService(t, &memoryCache{}, &memoryRemote{})
	const day = "2024-03-10"

	if _, err := s.AddExpense(day, "tea", "8.5"); err != nil {
		t.Fatalf("add: %v", err)
	}
	e, err := s.AddExpense(day, "lunch", "30")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := e.Total().String(); got != "38.5" {
		t.Fatalf("expected total 38.5, got %s", got)
	}
	if _, err := s.AddExpense(day, "refund", "-2"); err == nil {
		t.Fatal("expected negative amount rejected")
	}
	e, err = s.RemoveExpense(day, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(e.Expenses) != 1 || e.Expenses[0].Item != "lunch" {
		t.Fatalf("unexpected expenses %+v", e.Expenses)
	}
}

func TestCarryOver(t *testing.T) {
	s := newService(t, &memoryCache{}, &memoryRemote{})
	for _, text := range []string{"done", "open one", "open two"} {
		if _, err := s.AddTodo("2024-03-09", text); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.ToggleTodo("2024-03-09", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddTodo("2024-03-10", "already here"); err != nil {
		t.Fatal(err)
	}

	n, err := s.CarryOver("2024-03-09", "2024-03-10")
	if err != nil {
		t.Fatalf("carry over: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 moved, got %d", n)
	}
	from, to := s.Entry("2024-03-09"), s.Entry("2024-03-10")
	if len(from.Todos) != 1 || !from.Todos[0].Completed {
		t.Fatalf("expected only the completed todo left, got %+v", from.Todos)
	}
	if len(to.Todos) != 3 || to.Todos[2].Text != "open two" {
		t.Fatalf("unexpected destination todos %+v", to.Todos)
	}

	if n, err := s.CarryOver("2024-03-09", "2024-03-10"); err != nil || n != 0 {
		t.Fatalf("expected nothing left to carry, got %d, %v", n, err)
	}
	if _, err := s.CarryOver("2024-03-10", "2024-03-10"); err == nil {
		t.Fatal("expected error carrying onto the same day")
	}
}

func TestReport(t *testing.T) {
	s := newService(t, &memoryCache{}, &memoryRemote{})
	if _, err := s.AddExpense("2024-03-01", "a", "10"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddExpense("2024-03-05", "b", "2.5"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddTodo("2024-03-05", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ToggleTodo("2024-03-05", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddExpense("2024-04-01", "c", "100"); err != nil {
		t.Fatal(err)
	}

	until := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	since := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	res := s.Report(until, since)
	if len(res.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(res.Days))
	}
	if res.Days[0].Date != "2024-03-01" {
		t.Fatalf("expected date order, got %s", res.Days[0].Date)
	}
	if res.Spent.String() != "12.5" || res.Completed != 1 {
		t.Fatalf("unexpected totals spent=%s completed=%d", res.Spent, res.Completed)
	}
	if !res.Since.Equal(since) {
		t.Fatalf("expected swapped bounds, got %s", res.Since)
	}
}

func TestConcurrentEditsKeepEveryItem(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(4))
	c := &memoryCache{}
	s := newService(t, c, &memoryRemote{})

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := s.AddTodo("2024-03-10", "x"); err != nil {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := s.AddExpense("2024-03-10", "tea", "1"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	e := s.Entry("2024-03-10")
	if len(e.Todos) != n || len(e.Expenses) != n {
		t.Fatalf("expected %d todos and expenses, got %d and %d", n, len(e.Todos), len(e.Expenses))
	}
	saved := c.saved().Entries["2024-03-10"]
	if len(saved.Todos) != n || len(saved.Expenses) != n {
		t.Fatalf("cache holds %d todos and %d expenses, want %d each", len(saved.Todos), len(saved.Expenses), n)
	}
}
