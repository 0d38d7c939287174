package teaui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/cache"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/media"
	"tableflip.dev/daybook/pkg/store"
)

var now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := cache.StaticConfig{Path: t.TempDir(), APIURL: "http://localhost:3001/api"}
	c, err := cache.Open(cfg)
	if err != nil {
		t.Fatalf("cache.Open failed: %v", err)
	}
	svc := &app.Service{
		Cache: c,
		Norm:  media.NewNormalizer(cfg.Origin()),
		Clock: store.FixedClock(now),
	}
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return New(context.Background(), svc)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	if m.mode != modeInsert {
		t.Fatalf("expected insert mode, got %v", m.mode)
	}
	m.input.SetValue(text)
	return press(t, m, "enter")
}

func TestAddAndToggleTodo(t *testing.T) {
	m := newTestModel(t)

	m = typeText(t, press(t, m, "o"), "water plants")
	m = typeText(t, press(t, m, "o"), "call mom")

	e := m.svc.Entry("2024-03-10")
	if len(e.Todos) != 2 || e.Todos[1].Text != "call mom" {
		t.Fatalf("unexpected todos: %+v", e.Todos)
	}

	m = press(t, m, "j", "x")
	e = m.svc.Entry("2024-03-10")
	if e.Todos[0].Completed || !e.Todos[1].Completed {
		t.Fatalf("expected the second todo done: %+v", e.Todos)
	}

	m = press(t, m, "d")
	if got := len(m.svc.Entry("2024-03-10").Todos); got != 1 {
		t.Fatalf("expected 1 todo after delete, got %d", got)
	}
	if m.cursor != 0 {
		t.Fatalf("expected cursor to move back, got %d", m.cursor)
	}
}

func TestAddExpense(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, press(t, m, "e"), "iced coffee 18.5")

	e := m.svc.Entry("2024-03-10")
	if len(e.Expenses) != 1 || e.Expenses[0].Item != "iced coffee" || e.Expenses[0].Amount.String() != "18.5" {
		t.Fatalf("unexpected expenses: %+v", e.Expenses)
	}

	m = typeText(t, press(t, m, "e"), "refund -3")
	if m.status == "Expense recorded" {
		t.Fatalf("a rejected expense must not report success")
	}
	if got := len(m.svc.Entry("2024-03-10").Expenses); got != 1 {
		t.Fatalf("negative expense must not be recorded, got %d lines", got)
	}
}

func TestInsertCancel(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "i")
	m.input.SetValue("draft")
	m = press(t, m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after esc")
	}
	if m.svc.Store().Has("2024-03-10") {
		t.Fatalf("cancelled insight must not create a record")
	}
}

func TestNavigateDays(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "left", "left")
	if got := m.svc.State().SelectedDate; got != "2024-03-08" {
		t.Fatalf("expected 2024-03-08, got %s", got)
	}
	m = press(t, m, "t")
	if got := m.svc.State().SelectedDate; got != "2024-03-10" {
		t.Fatalf("expected today, got %s", got)
	}
}

func TestCalendarView(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab")
	st := m.svc.State()
	if st.CurrentView != store.Calendar {
		t.Fatalf("expected calendar view, got %s", st.CurrentView)
	}
	if st.CalendarView != calendar.Month {
		t.Fatalf("expected month granularity, got %s", st.CalendarView)
	}

	m = press(t, m, "down", "]")
	if got := m.svc.State().SelectedDate; got != "2024-04-17" {
		t.Fatalf("expected 2024-04-17, got %s", got)
	}

	m = press(t, m, "g")
	if got := m.svc.State().CalendarView; got != calendar.Week {
		t.Fatalf("expected week after month, got %s", got)
	}

	m = press(t, m, "enter")
	if got := m.svc.State().CurrentView; got != store.DailyRecord {
		t.Fatalf("expected daily record, got %s", got)
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	m = typeText(t, press(t, m, "o"), "stretch")

	out := m.View()
	for _, want := range []string{"2024-03-10 Sunday", "Todos 0/1", "stretch", "宜", "offline"} {
		if !strings.Contains(out, want) {
			t.Errorf("daily view missing %q:\n%s", want, out)
		}
	}

	m = press(t, m, "tab")
	out = m.View()
	for _, want := range []string{"March 2024", "Su Mo Tu We Th Fr Sa", "calendar:month"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar view missing %q:\n%s", want, out)
		}
	}

	m = press(t, m, "g", "g", "g")
	if !strings.Contains(m.View(), "2024") {
		t.Errorf("year view missing year:\n%s", m.View())
	}
}

func TestPullNeedsSession(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "r")
	if m.busy || !strings.Contains(m.status, "Offline") {
		t.Fatalf("expected offline status, got %q", m.status)
	}
}

func TestSplitExpense(t *testing.T) {
	item, amount := splitExpense("bus ticket 2.5")
	if item != "bus ticket" || amount != "2.5" {
		t.Fatalf("got %q %q", item, amount)
	}
	item, amount = splitExpense("lonely")
	if item != "lonely" || amount != "" {
		t.Fatalf("got %q %q", item, amount)
	}
}
