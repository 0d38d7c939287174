// Package mcp provides the Model Context Protocol server integration for daybook.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/daybook/pkg/almanac"
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/store"
)

// Service coordinates the journal operations shared by the MCP tools and
// resources.
type Service struct {
	App   *app.Service
	Clock store.Clock
}

// ErrDayNotFound is returned when nothing was recorded on a day.
var ErrDayNotFound = errors.New("day not found")

// DaySummary is a one-line overview of a recorded day.
type DaySummary struct {
	Date      string `json:"date"`
	Todos     int    `json:"todos"`
	Completed int    `json:"completed"`
	Expenses  int    `json:"expenses"`
	Spent     string `json:"spent"`
	Media     int    `json:"media"`
	Summary   string `json:"summary,omitempty"`
}

// DayDTO is a transport-friendly projection of a day record.
type DayDTO struct {
	entry.Entry
	Recorded bool   `json:"recorded"`
	Spent    string `json:"spent"`
	Text     string `json:"insightText,omitempty"`
}

// NewService builds a service wrapper around a started journal.
func NewService(a *app.Service) *Service {
	return &Service{App: a, Clock: store.RealClock{}}
}

func (s *Service) ready() error {
	if s.App == nil || s.App.Store() == nil {
		return errors.New("journal is not started")
	}
	return nil
}

// Health is what /healthz reports.
type Health struct {
	Ready         bool   `json:"ready"`
	Sync          string `json:"sync"`
	Authenticated bool   `json:"authenticated"`
	Days          int    `json:"days"`
}

func (s *Service) Health() Health {
	if err := s.ready(); err != nil {
		return Health{Sync: "idle"}
	}
	return Health{
		Ready:         true,
		Sync:          s.App.Status().String(),
		Authenticated: s.App.Authenticated(),
		Days:          s.App.Store().Len(),
	}
}

// ResolveDate turns "", "today", "yesterday" and "tomorrow" into date keys
// and validates anything else.
func (s *Service) ResolveDate(raw string) (string, error) {
	clock := s.Clock
	if clock == nil {
		clock = store.RealClock{}
	}
	now := clock.Now()
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "today":
		return entry.Key(now), nil
	case "yesterday":
		return entry.Key(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return entry.Key(now.AddDate(0, 0, 1)), nil
	}
	raw = strings.TrimSpace(raw)
	if _, err := entry.ParseDate(raw); err != nil {
		return "", err
	}
	return raw, nil
}

// ListDays summarizes the recorded days between since and until inclusive.
// Either bound may be empty.
func (s *Service) ListDays(ctx context.Context, since, until string) ([]DaySummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	for _, b := range []string{since, until} {
		if b == "" {
			continue
		}
		if _, err := entry.ParseDate(b); err != nil {
			return nil, err
		}
	}
	out := make([]DaySummary, 0)
	st := s.App.Store()
	for _, date := range st.Dates() {
		if (since != "" && date < since) || (until != "" && date > until) {
			continue
		}
		out = append(out, summarize(st.Get(date)))
	}
	return out, nil
}

// Day returns the record of date, which may be empty.
func (s *Service) Day(ctx context.Context, date string) (*DayDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	date, err := s.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	dto := toDTO(s.App.Entry(date), s.App.Store().Has(date))
	return &dto, nil
}

// AddTodo appends an open todo.
func (s *Service) AddTodo(ctx context.Context, date, text string) (*DayDTO, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("todo text is required")
	}
	return s.mutate(date, func(d string) (entry.Entry, error) {
		return s.App.AddTodo(d, strings.TrimSpace(text))
	})
}

// ToggleTodo flips the completion of the todo at a 1-based position.
func (s *Service) ToggleTodo(ctx context.Context, date string, position int) (*DayDTO, error) {
	return s.mutate(date, func(d string) (entry.Entry, error) {
		return s.App.ToggleTodo(d, position-1)
	})
}

// AddExpense appends an expense line.
func (s *Service) AddExpense(ctx context.Context, date, item, amount string) (*DayDTO, error) {
	if strings.TrimSpace(item) == "" {
		return nil, errors.New("expense item is required")
	}
	return s.mutate(date, func(d string) (entry.Entry, error) {
		return s.App.AddExpense(d, strings.TrimSpace(item), strings.TrimSpace(amount))
	})
}

// SetInsight replaces the rich-text note.
func (s *Service) SetInsight(ctx context.Context, date, markup string) (*DayDTO, error) {
	return s.mutate(date, func(d string) (entry.Entry, error) {
		return s.App.SetInsight(d, markup)
	})
}

func (s *Service) mutate(date string, fn func(string) (entry.Entry, error)) (*DayDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	date, err := s.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	e, err := fn(date)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e, true)
	return &dto, nil
}

// SearchDays performs a case-insensitive substring match across todos,
// expense items, insights and summaries, newest day first.
func (s *Service) SearchDays(ctx context.Context, query string, limit int) ([]DaySummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 {
		limit = 20
	}

	st := s.App.Store()
	dates := st.Dates()
	results := make([]DaySummary, 0)
	for i := len(dates) - 1; i >= 0 && len(results) < limit; i-- {
		e := st.Get(dates[i])
		if matches(e, q) {
			results = append(results, summarize(e))
		}
	}
	return results, nil
}

// Almanac returns the almanac of date.
func (s *Service) Almanac(date string) (almanac.Info, error) {
	date, err := s.ResolveDate(date)
	if err != nil {
		return almanac.Info{}, err
	}
	t, err := entry.ParseDate(date)
	if err != nil {
		return almanac.Info{}, err
	}
	return almanac.For(t), nil
}

// DayByDate is Day for resources: a day with no record is an error.
func (s *Service) DayByDate(ctx context.Context, date string) (*DayDTO, error) {
	dto, err := s.Day(ctx, date)
	if err != nil {
		return nil, err
	}
	if !dto.Recorded {
		return nil, fmt.Errorf("%w: %s", ErrDayNotFound, dto.Date)
	}
	return dto, nil
}

func matches(e entry.Entry, q string) bool {
	has := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }
	for _, t := range e.Todos {
		if has(t.Text) {
			return true
		}
	}
	for _, x := range e.Expenses {
		if has(x.Item) {
			return true
		}
	}
	return has(entry.PlainText(e.Insight)) || has(e.MyDaySummary)
}

func summarize(e entry.Entry) DaySummary {
	return DaySummary{
		Date:      e.Date,
		Todos:     len(e.Todos),
		Completed: e.Completed(),
		Expenses:  len(e.Expenses),
		Spent:     e.Total().StringFixed(2),
		Media:     len(e.Media),
		Summary:   e.MyDaySummary,
	}
}

func toDTO(e entry.Entry, recorded bool) DayDTO {
	return DayDTO{
		Entry:    e,
		Recorded: recorded,
		Spent:    e.Total().StringFixed(2),
		Text:     entry.PlainText(e.Insight),
	}
}

