package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/daybook/pkg/entry"
)

var stamp = time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

func TestICSWritesOneEventPerRecordedDay(t *testing.T) {
	a := entry.New("2024-03-10")
	a.Todos = []entry.Todo{{ID: "1", Text: "run", Completed: true}, {ID: "2", Text: "read"}}
	a.Expenses = []entry.Expense{{ID: "x", Item: "tea", Amount: decimal.RequireFromString("8.5")}}
	b := entry.New("2024-03-11")
	b.MyDaySummary = "quiet day"
	b.Insight = "<p>slept well</p>"

	var buf bytes.Buffer
	n, err := ICS(&buf, []entry.Entry{a, entry.New("2024-03-12"), b}, stamp)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "PRODID:"+ProductID)
	assert.Contains(t, out, "UID:2024-03-10@"+uidDomain)
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240310")
	assert.Contains(t, out, "SUMMARY:quiet day")
	assert.Contains(t, out, "DTSTAMP:20240311T080000Z")
	assert.NotContains(t, out, "2024-03-12@")
}

func TestICSEmpty(t *testing.T) {
	var buf bytes.Buffer
	n, err := ICS(&buf, []entry.Entry{entry.New("2024-03-10")}, stamp)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, emptyCalendar, buf.String())
}

func TestICSRejectsBadDate(t *testing.T) {
	e := entry.New("March 10")
	e.MyDaySummary = "x"
	_, err := ICS(&bytes.Buffer{}, []entry.Entry{e}, stamp)
	assert.ErrorIs(t, err, entry.ErrInvalidDate)
}

func TestSummary(t *testing.T) {
	e := entry.New("2024-03-10")
	assert.Equal(t, "2024-03-10", Summary(e))

	e.Todos = []entry.Todo{{ID: "1", Text: "a", Completed: true}}
	e.Expenses = []entry.Expense{{ID: "x", Item: "tea", Amount: decimal.RequireFromString("3")}}
	assert.Equal(t, "1/1 todos, spent 3.00", Summary(e))

	e.MyDaySummary = "done"
	assert.Equal(t, "done", Summary(e))
}

func TestDescription(t *testing.T) {
	e := entry.New("2024-03-10")
	e.Todos = []entry.Todo{{ID: "1", Text: "a", Completed: true}, {ID: "2", Text: "b"}}
	e.Expenses = []entry.Expense{
		{ID: "x", Item: "tea", Amount: decimal.RequireFromString("3")},
		{ID: "y", Item: "bus", Amount: decimal.RequireFromString("2.5")},
	}
	e.Insight = "<p>hello</p>"
	assert.Equal(t, "[x] a\n[ ] b\ntea: 3.00\nbus: 2.50\ntotal: 5.50\n\nhello", Description(e))
}
