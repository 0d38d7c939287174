package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/almanac"
	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/media"
)

func init() {
	color.NoColor = true
}

func newTestPrinter() (*PrettyPrint, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return &PrettyPrint{Out: buf, Width: 40, Currency: "CNY"}, buf
}

type dates map[string]bool

func (d dates) Has(date string) bool { return d[date] }

func TestMoney(t *testing.T) {
	pp, _ := newTestPrinter()
	tests := map[string]string{
		"12.5":    "12.50 元",
		"0":       "0.00 元",
		"1234.56": "1,234.56 元",
		"0.005":   "0.01 元",
	}
	for in, want := range tests {
		if got := pp.Money(decimal.RequireFromString(in)); got != want {
			t.Errorf("Money(%s) = %q, want %q", in, got, want)
		}
	}

	pp.Currency = "USD"
	if got := pp.Money(decimal.RequireFromString("3")); got != "$3.00" {
		t.Errorf("Money(3) in USD = %q", got)
	}
}

func TestDay(t *testing.T) {
	pp, buf := newTestPrinter()
	e := entry.New("2024-03-10")
	e.Todos = []entry.Todo{{ID: "1", Text: "water plants", Completed: true}, {ID: "2", Text: "call mom"}}
	e.Expenses = []entry.Expense{{ID: "x", Item: "coffee", Amount: decimal.RequireFromString("12.5")}}
	e.Insight = "<p>a <b>good</b> day</p>"
	e.Media = []entry.Media{{ID: "m", Type: media.KindImage, Name: "cat.png", URL: "https://host/uploads/cat.png"}}
	e.MyDaySummary = "平静的一天"

	info := almanac.For(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	pp.Day(e, info)
	out := buf.String()

	for _, want := range []string{
		"2024-03-10 Sunday",
		info.DayLabel + "日",
		"平静的一天",
		"Todos - 2 items",
		"☑ water plants",
		"☐ call mom",
		"coffee",
		"12.50 元",
		"Total",
		"**good**",
		"cat.png",
		"宜",
		"忌",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("day output missing %q:\n%s", want, out)
		}
	}
}

func TestDayEmpty(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Day(entry.New("2024-03-10"), almanac.For(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	if got := strings.Count(buf.String(), "none"); got != 4 {
		t.Errorf("expected 4 empty sections, got %d:\n%s", got, buf.String())
	}
}

func TestInsightWraps(t *testing.T) {
	pp, buf := newTestPrinter()
	pp.Width = 10
	pp.Insight("<p>one two three four five six</p>")
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if len(line) > 10 {
			t.Errorf("line %q longer than width", line)
		}
	}
}

func TestMonth(t *testing.T) {
	pp, buf := newTestPrinter()
	g := calendar.BuildMonth(time.Date(2020, time.April, 15, 0, 0, 0, 0, time.UTC))
	pp.Month(g, dates{"2020-04-01": true}, "2020-04-15")
	out := buf.String()

	if !strings.Contains(out, "April 2020") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, weekHeader) {
		t.Errorf("missing weekday header:\n%s", out)
	}
	// Leading days from March fill the first row.
	if !strings.Contains(out, "W1  29 30 31  1  2  3  4") {
		t.Errorf("unexpected first week:\n%s", out)
	}
	if got := strings.Count(out, "W"); got < len(g.Rows) {
		t.Errorf("expected %d week labels, got %d", len(g.Rows), got)
	}
}

func TestYear(t *testing.T) {
	pp, buf := newTestPrinter()
	g := calendar.BuildYear(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), nil)
	pp.Year(g)
	out := buf.String()
	for _, m := range []string{"January", "April", "September", "December"} {
		if !strings.Contains(out, m) {
			t.Errorf("missing %s:\n%s", m, out)
		}
	}
	if !strings.Contains(out, "29") {
		t.Errorf("leap day missing:\n%s", out)
	}
}

func TestMonthLinesAreAligned(t *testing.T) {
	m := calendar.MonthSummary{Month: time.February, Days: 29, Start: time.Thursday}
	lines := monthLines(m, color.New(), color.New())
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if len(l) != yearColumn {
			t.Errorf("line %q is %d wide, want %d", l, len(l), yearColumn)
		}
	}
}

func TestWeek(t *testing.T) {
	pp, buf := newTestPrinter()
	g := calendar.BuildWeek(time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC))

	rec := entry.New("2024-03-12")
	rec.Todos = []entry.Todo{{ID: "1", Text: "a", Completed: true}, {ID: "2", Text: "b"}}
	sum := entry.New("2024-03-14")
	sum.MyDaySummary = "good"
	lookup := func(date string) (entry.Entry, bool) {
		switch date {
		case rec.Date:
			return rec, true
		case sum.Date:
			return sum, true
		}
		return entry.Entry{}, false
	}
	pp.Week(g, lookup, "2024-03-13")
	out := buf.String()

	for _, want := range []string{"2024-03-10 Sun", "2024-03-12 Tue  1/2 todos", "2024-03-14 Thu  good", "2024-03-16 Sat  -"} {
		if !strings.Contains(out, want) {
			t.Errorf("week output missing %q:\n%s", want, out)
		}
	}
}

func TestReport(t *testing.T) {
	pp, buf := newTestPrinter()
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	pp.Report(app.ReportResult{Since: since, Until: since.AddDate(0, 0, 6)})
	if !strings.Contains(buf.String(), "none") {
		t.Errorf("expected empty report:\n%s", buf.String())
	}

	buf.Reset()
	pp.Report(app.ReportResult{
		Since: since,
		Until: since.AddDate(0, 0, 6),
		Days: []app.ReportDay{
			{Date: "2024-03-02", Todos: 3, Completed: 2, Spent: decimal.RequireFromString("20")},
		},
		Completed: 2,
		Spent:     decimal.RequireFromString("20"),
	})
	out := buf.String()
	for _, want := range []string{"2024-03-01 – 2024-03-07", "2024-03-02  2/3 todos  20.00 元", "2 completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
