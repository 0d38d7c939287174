// Package printers renders journal records and calendar grids for a
// terminal.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/Rhymond/go-money"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"
	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/almanac"
	"tableflip.dev/daybook/pkg/entry"
)

const (
	defaultWidth    = 80
	DefaultCurrency = money.CNY
)

type PrettyPrint struct {
	Out      io.Writer
	Width    int
	Currency string
}

// New returns a printer on stdout.
func New() *PrettyPrint {
	return &PrettyPrint{Out: color.Output, Width: defaultWidth, Currency: DefaultCurrency}
}

// Interactive reports whether f is a terminal.
func Interactive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return defaultWidth
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, one, many string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	t.Fprint(pp.out(), title)
	c.Fprintf(pp.out(), " - %d", count)
	switch count {
	case 1:
		c.Fprintln(pp.out(), " "+one)
	default:
		c.Fprintln(pp.out(), " "+many)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	f.Fprint(pp.out(), " none\n\n")
}

// Money formats an amount in the printer's currency.
func (pp *PrettyPrint) Money(d decimal.Decimal) string {
	code := pp.Currency
	if code == "" {
		code = DefaultCurrency
	}
	cur := *money.New(0, code).Currency()
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Day prints everything recorded on e's day, followed by its almanac.
func (pp *PrettyPrint) Day(e entry.Entry, info almanac.Info) {
	w := pp.out()
	head := e.Date
	if t, err := entry.ParseDate(e.Date); err == nil {
		head = fmt.Sprintf("%s %s", e.Date, t.Weekday())
	}
	pp.Title(head)
	faint := color.New(color.Faint)
	faint.Fprintf(w, "%s日 · %s年", info.DayLabel, info.ZodiacYear)
	if e.LastSavedAt != "" {
		faint.Fprintf(w, " · saved %s", e.LastSavedAt)
	}
	pp.NewLine()
	if e.MyDaySummary != "" {
		color.New(color.Italic, color.FgHiCyan).Fprintf(w, "“%s”\n", e.MyDaySummary)
	}
	pp.NewLine()

	pp.TitleWithCount("Todos", len(e.Todos), "item", "items")
	pp.Todos(e.Todos)
	pp.TitleWithCount("Expenses", len(e.Expenses), "line", "lines")
	pp.Expenses(e.Expenses)
	pp.Title("Insight")
	pp.Insight(e.Insight)
	pp.TitleWithCount("Media", len(e.Media), "file", "files")
	pp.Media(e.Media)
	pp.Almanac(info)
}

func (pp *PrettyPrint) Todos(todos []entry.Todo) {
	if len(todos) == 0 {
		pp.none()
		return
	}
	done := color.New(color.Faint, color.CrossedOut)
	open := color.New()
	idx := color.New(color.FgHiYellow, color.Faint)
	for i, t := range todos {
		idx.Fprintf(pp.out(), "%3d ", i+1)
		if t.Completed {
			done.Fprintf(pp.out(), "☑ %s\n", t.Text)
		} else {
			open.Fprintf(pp.out(), "☐ %s\n", t.Text)
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) Expenses(expenses []entry.Expense) {
	if len(expenses) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	idx := color.New(color.FgHiYellow, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	total := decimal.Zero
	for i, x := range expenses {
		tbl.AddRow(idx.Sprintf("%3d", i+1), x.Item, pp.Money(x.Amount))
		total = total.Add(x.Amount)
	}
	tbl.AddRow("", bold.Sprint("Total"), bold.Sprint(pp.Money(total)))
	tbl.RightAlign(2)
	fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Insight prints rich-text markup as wrapped markdown.
func (pp *PrettyPrint) Insight(markup string) {
	if strings.TrimSpace(markup) == "" {
		pp.none()
		return
	}
	text, err := md.NewConverter("", true, nil).ConvertString(markup)
	if err != nil {
		text = entry.PlainText(markup)
	}
	fmt.Fprintln(pp.out(), wordwrap.String(strings.TrimSpace(text), pp.width()))
	pp.NewLine()
}

func (pp *PrettyPrint) Media(items []entry.Media) {
	if len(items) == 0 {
		pp.none()
		return
	}
	idx := color.New(color.FgHiYellow, color.Faint)
	kind := color.New(color.FgCyan)
	link := color.New(color.Faint, color.Underline)

	tbl := uitable.New()
	tbl.Separator = "  "
	for i, m := range items {
		tbl.AddRow(idx.Sprintf("%3d", i+1), kind.Sprint(m.Type), m.Name, link.Sprint(m.URL))
	}
	fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Almanac prints the favorable (宜) and unfavorable (忌) lists.
func (pp *PrettyPrint) Almanac(info almanac.Info) {
	good := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(pp.width() - 6)
	tbl.AddRow(good.Sprint("宜"), strings.Join(info.Favorable, " "))
	tbl.AddRow(bad.Sprint("忌"), strings.Join(info.Unfavorable, " "))
	fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
