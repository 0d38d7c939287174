// Package entry defines the per-day journal record and the partial updates
// that are applied to it.
package entry

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/media"
)

// ErrNegativeAmount is returned when an expense amount is below zero.
var ErrNegativeAmount = errors.New("entry: negative amount")

// Todo is a checklist item. Order within an entry is display order.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewTodo returns an open todo with a fresh id.
func NewTodo(text string) Todo {
	return Todo{ID: uuid.NewString(), Text: text}
}

// Expense is a single spending line.
type Expense struct {
	ID     string          `json:"id"`
	Item   string          `json:"item"`
	Amount decimal.Decimal `json:"amount"`
}

// NewExpense parses amount and returns an expense with a fresh id.
func NewExpense(item, amount string) (Expense, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("entry: amount %q: %w", amount, err)
	}
	x := Expense{ID: uuid.NewString(), Item: item, Amount: d}
	if err := x.Validate(); err != nil {
		return Expense{}, err
	}
	return x, nil
}

// Validate rejects negative amounts.
func (x Expense) Validate() error {
	if x.Amount.IsNegative() {
		return fmt.Errorf("%w: %s %s", ErrNegativeAmount, x.Item, x.Amount)
	}
	return nil
}

// MarshalJSON writes the amount as a JSON number, the shape the remote
// service and older caches use.
func (x Expense) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     string      `json:"id"`
		Item   string      `json:"item"`
		Amount json.Number `json:"amount"`
	}{x.ID, x.Item, json.Number(x.Amount.String())})
}

// Media is an attachment reference.
type Media struct {
	ID   string     `json:"id"`
	Type media.Kind `json:"type"`
	URL  string     `json:"url"`
	Name string     `json:"name"`
}

// Validate rejects attachments without a known kind.
func (m Media) Validate() error {
	if !m.Type.Valid() {
		return fmt.Errorf("%w for %q", media.ErrUnknownKind, m.Name)
	}
	return nil
}

// Entry is everything recorded for one calendar day.
type Entry struct {
	Date         string    `json:"date"`
	Todos        []Todo    `json:"todos"`
	Expenses     []Expense `json:"expenses"`
	Insight      string    `json:"insight"`
	Media        []Media   `json:"media"`
	MyDaySummary string    `json:"myDaySummary,omitempty"`
	LastSavedAt  string    `json:"lastSavedAt,omitempty"`
}

// New returns the empty record for date.
func New(date string) Entry {
	return Entry{
		Date:     date,
		Todos:    []Todo{},
		Expenses: []Expense{},
		Media:    []Media{},
	}
}

// Normalize fills sequences left nil by a payload that omitted them.
func (e Entry) Normalize() Entry {
	if e.Todos == nil {
		e.Todos = []Todo{}
	}
	if e.Expenses == nil {
		e.Expenses = []Expense{}
	}
	if e.Media == nil {
		e.Media = []Media{}
	}
	return e
}

// Clone returns a copy that shares no slices with e.
func (e Entry) Clone() Entry {
	e.Todos = append([]Todo{}, e.Todos...)
	e.Expenses = append([]Expense{}, e.Expenses...)
	e.Media = append([]Media{}, e.Media...)
	return e
}

// IsEmpty reports whether nothing has been recorded.
func (e Entry) IsEmpty() bool {
	return len(e.Todos) == 0 && len(e.Expenses) == 0 && len(e.Media) == 0 &&
		e.Insight == "" && e.MyDaySummary == ""
}

// Total sums the expense amounts.
func (e Entry) Total() decimal.Decimal {
	total := decimal.Zero
	for _, x := range e.Expenses {
		total = total.Add(x.Amount)
	}
	return total
}

// Completed counts finished todos.
func (e Entry) Completed() int {
	n := 0
	for _, t := range e.Todos {
		if t.Completed {
			n++
		}
	}
	return n
}

// MapMedia returns a copy of e with every attachment url passed through fn.
func (e Entry) MapMedia(fn func(string) string) Entry {
	out := make([]Media, len(e.Media))
	for i, m := range e.Media {
		m.URL = fn(m.URL)
		out[i] = m
	}
	e.Media = out
	return e
}

// DropMedia returns a copy of e without the attachments for which drop
// reports true.
func (e Entry) DropMedia(drop func(Media) bool) Entry {
	out := make([]Media, 0, len(e.Media))
	for _, m := range e.Media {
		if drop(m) {
			continue
		}
		out = append(out, m)
	}
	e.Media = out
	return e
}

// WithoutInvalidMedia drops attachments of unknown kind, as left behind by a
// payload that omitted or misspelled the type.
func (e Entry) WithoutInvalidMedia() Entry {
	return e.DropMedia(func(m Media) bool { return m.Validate() != nil })
}

// Validate checks the date key and every line item.
func (e Entry) Validate() error {
	if _, err := ParseDate(e.Date); err != nil {
		return err
	}
	for _, x := range e.Expenses {
		if err := x.Validate(); err != nil {
			return err
		}
	}
	for _, m := range e.Media {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
