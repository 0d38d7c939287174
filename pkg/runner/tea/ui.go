// Package teaui is the interactive terminal journal: a daily record and a
// calendar, switched with tab.
package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/store"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionTodo
	actionExpense
	actionInsight
)

const statusHelp = "tab switch view, ←/→ day, o todo, e expense, i insight, x done, d delete, s summarize, ? help, q quit"

// Model contains UI state. The selected date, view and granularity live in
// the service so they survive restarts.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	mode   mode
	action action

	cursor int
	input  textinput.Model
	status string
	busy   bool

	width  int
	height int
}

// New creates a new UI model backed by the Service.
func New(ctx context.Context, svc *app.Service) Model {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Prompt = ""

	return Model{
		svc:    svc,
		ctx:    ctx,
		mode:   modeNormal,
		input:  ti,
		status: statusHelp,
	}
}

// messages
type errMsg struct{ err error }
type summaryMsg struct {
	date string
	text string
	err  error
}
type pulledMsg struct {
	n   int
	err error
}

// Init has nothing to load; the service already holds the state.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) now() time.Time {
	if m.svc != nil && m.svc.Clock != nil {
		return m.svc.Clock.Now()
	}
	return time.Now()
}

func (m *Model) state() store.State {
	return m.svc.State()
}

func (m *Model) selected() time.Time {
	t, err := entry.ParseDate(m.state().SelectedDate)
	if err != nil {
		return entry.Day(m.now())
	}
	return t
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case summaryMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Summary for %s: %s", msg.date, msg.text)
		}
	case pulledMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "ERR: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("Pulled %d days", msg.n)
		}
	case tea.KeyMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
			}
		case modeInsert:
			cmds = append(cmds, m.updateInsert(msg))
		case modeNormal:
			if msg.String() == "ctrl+c" || msg.String() == "q" {
				return m, tea.Quit
			}
			if m.state().CurrentView == store.Calendar {
				cmds = append(cmds, m.updateCalendar(msg))
			} else {
				cmds = append(cmds, m.updateDaily(msg))
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateInsert(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.input.Value())
		date := m.state().SelectedDate
		var (
			err  error
			done string
		)
		if input != "" {
			switch m.action {
			case actionTodo:
				_, err = m.svc.AddTodo(date, input)
				done = "Added"
			case actionExpense:
				item, amount := splitExpense(input)
				_, err = m.svc.AddExpense(date, item, amount)
				done = "Expense recorded"
			case actionInsight:
				_, err = m.svc.SetInsight(date, input)
				done = "Insight saved"
			}
		}
		m.leaveInsert()
		if err != nil {
			return func() tea.Msg { return errMsg{err} }
		}
		if done != "" {
			m.status = done
		}
		return nil
	case "esc":
		m.leaveInsert()
		m.status = "Cancelled"
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) enterInsert(a action, placeholder, value string) tea.Cmd {
	m.mode = modeInsert
	m.action = a
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = "enter to save, esc to cancel"
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) leaveInsert() {
	m.mode = modeNormal
	m.action = actionNone
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) updateDaily(msg tea.KeyMsg) tea.Cmd {
	st := m.state()
	e := m.svc.Entry(st.SelectedDate)

	switch msg.String() {
	case "tab":
		return m.setView(store.Calendar)
	case "?":
		m.mode = modeHelp
	case "h", "left":
		return m.moveDays(-1)
	case "l", "right":
		return m.moveDays(1)
	case "t":
		return m.selectDate(entry.Day(m.now()))
	case "j", "down":
		if m.cursor < len(e.Todos)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "o":
		return m.enterInsert(actionTodo, "New todo", "")
	case "e":
		return m.enterInsert(actionExpense, "item amount, e.g. coffee 12.50", "")
	case "i":
		return m.enterInsert(actionInsight, "Insight", entry.PlainText(e.Insight))
	case "x", " ", "enter":
		if len(e.Todos) == 0 {
			return nil
		}
		if _, err := m.svc.ToggleTodo(st.SelectedDate, m.cursor); err != nil {
			return func() tea.Msg { return errMsg{err} }
		}
		m.status = "Toggled"
	case "d":
		if len(e.Todos) == 0 {
			return nil
		}
		if _, err := m.svc.RemoveTodo(st.SelectedDate, m.cursor); err != nil {
			return func() tea.Msg { return errMsg{err} }
		}
		if m.cursor >= len(e.Todos)-1 && m.cursor > 0 {
			m.cursor--
		}
		m.status = "Removed"
	case "s":
		if m.busy {
			return nil
		}
		m.busy = true
		m.status = "Summarizing…"
		svc, ctx, date := m.svc, m.ctx, st.SelectedDate
		return func() tea.Msg {
			text, err := svc.Summarize(ctx, date)
			return summaryMsg{date: date, text: text, err: err}
		}
	case "r":
		return m.pull()
	}
	return nil
}

func (m *Model) updateCalendar(msg tea.KeyMsg) tea.Cmd {
	st := m.state()
	sel := m.selected()

	switch msg.String() {
	case "tab", "enter":
		return m.setView(store.DailyRecord)
	case "?":
		m.mode = modeHelp
	case "h", "left":
		return m.moveDays(-1)
	case "l", "right":
		return m.moveDays(1)
	case "k", "up":
		return m.moveDays(-7)
	case "j", "down":
		return m.moveDays(7)
	case "[":
		return m.selectDate(calendar.Shift(st.CalendarView, sel, -1))
	case "]":
		return m.selectDate(calendar.Shift(st.CalendarView, sel, 1))
	case "t":
		return m.selectDate(entry.Day(m.now()))
	case "g":
		next := nextGranularity(st.CalendarView)
		if err := m.svc.SetCalendarView(next); err != nil {
			return func() tea.Msg { return errMsg{err} }
		}
		m.status = "Calendar: " + next.String()
	case "r":
		return m.pull()
	}
	return nil
}

func (m *Model) pull() tea.Cmd {
	if m.busy {
		return nil
	}
	if !m.svc.Authenticated() {
		m.status = "Offline: log in to sync"
		return nil
	}
	m.busy = true
	m.status = "Syncing…"
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		n, err := svc.Pull(ctx)
		return pulledMsg{n: n, err: err}
	}
}

func (m *Model) setView(v store.View) tea.Cmd {
	if err := m.svc.SetView(v); err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	return nil
}

func (m *Model) moveDays(n int) tea.Cmd {
	return m.selectDate(m.selected().AddDate(0, 0, n))
}

func (m *Model) selectDate(t time.Time) tea.Cmd {
	if err := m.svc.Select(entry.Key(t)); err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	m.cursor = 0
	return nil
}

func nextGranularity(g calendar.Granularity) calendar.Granularity {
	for i, c := range calendar.Granularities {
		if c == g {
			return calendar.Granularities[(i+1)%len(calendar.Granularities)]
		}
	}
	return calendar.Month
}

// splitExpense reads "item words amount" with the amount last.
func splitExpense(input string) (item, amount string) {
	i := strings.LastIndexByte(input, ' ')
	if i < 0 {
		return input, ""
	}
	return strings.TrimSpace(input[:i]), strings.TrimSpace(input[i+1:])
}
