package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/entry"
)

const width = len("11 12 13 14 15 16 17") // an example week

const weekHeader = "Su Mo Tu We Th Fr Sa"

// yearColumn is one month of a year view: seven cells and a gutter.
const yearColumn = 7*3 + 3

// Month prints a month grid with week-of-month numbers on the left. Recorded
// days are bold and today is underlined.
func (pp *PrettyPrint) Month(g calendar.MonthGrid, idx calendar.Index, today string) {
	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)
	head := fmt.Sprintf("%s %d", g.Month, g.Year)
	mid := (width - len(head)) / 2
	tf.Fprintf(w, "    %s%s\n", strings.Repeat(" ", max(mid, 0)), head)
	color.New(color.Faint).Fprintf(w, "    %s\n", weekHeader)

	wk := color.New(color.FgHiYellow, color.Faint)
	for _, row := range g.Rows {
		wk.Fprintf(w, "W%d  ", row.Week)
		for _, c := range row.Cells {
			pp.cell(c, idx, today)
		}
		fmt.Fprintln(w)
	}
	pp.NewLine()
}

func (pp *PrettyPrint) cell(c calendar.Cell, idx calendar.Index, today string) {
	l0 := color.New(color.Faint, color.Italic)
	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	printer := l1
	switch {
	case !c.Current:
		printer = l0
	case idx != nil && idx.Has(c.Date):
		printer = l2
	}
	if c.Current && c.Date == today {
		printer = color.New(color.Underline, color.Bold)
	}
	printer.Fprintf(pp.out(), "%2d ", c.Day)
}

// Year prints the twelve months of a year grid, four abreast.
func (pp *PrettyPrint) Year(g calendar.YearGrid) {
	w := pp.out()
	pp.Title(fmt.Sprintf("%d", g.Year))
	pp.NewLine()

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	tf := color.New(color.FgWhite, color.Italic)

	for q := 0; q < 12; q += 4 {
		block := g.Months[q : q+4]
		lines := make([][]string, len(block))
		for i, m := range block {
			lines[i] = monthLines(m, l1, l2)
		}
		rows := 0
		for _, l := range lines {
			rows = max(rows, len(l))
		}
		for i, m := range block {
			name := m.Month.String()
			pad := (width - len(name)) / 2
			tf.Fprintf(w, "%s%-*s", strings.Repeat(" ", pad), yearColumn-pad, name)
			if i == len(block)-1 {
				fmt.Fprintln(w)
			}
		}
		for r := 0; r < rows; r++ {
			for _, l := range lines {
				if r < len(l) {
					fmt.Fprint(w, l[r])
				} else {
					fmt.Fprint(w, strings.Repeat(" ", yearColumn))
				}
			}
			fmt.Fprintln(w)
		}
		pp.NewLine()
	}
}

// monthLines lays out one month summary as rows of "dd " cells, each row
// padded to the same visible width.
func monthLines(m calendar.MonthSummary, l1, l2 *color.Color) []string {
	recorded := make(map[int]bool, len(m.Recorded))
	for _, d := range m.Recorded {
		recorded[d] = true
	}
	var lines []string
	var b strings.Builder
	b.WriteString(strings.Repeat("   ", int(m.Start)))
	col := int(m.Start)
	for d := 1; d <= m.Days; d++ {
		p := l1
		if recorded[d] {
			p = l2
		}
		b.WriteString(p.Sprintf("%2d ", d))
		col++
		if col == 7 {
			b.WriteString("   ")
			lines = append(lines, b.String())
			b.Reset()
			col = 0
		}
	}
	if col > 0 {
		b.WriteString(strings.Repeat("   ", 7-col+1))
		lines = append(lines, b.String())
	}
	return lines
}

// Week prints one line per day with its summary or a count of what was
// recorded.
func (pp *PrettyPrint) Week(g calendar.WeekGrid, lookup func(date string) (entry.Entry, bool), today string) {
	w := pp.out()
	end := g.Start.AddDate(0, 0, 6)
	pp.Title(fmt.Sprintf("%s – %s", entry.Key(g.Start), entry.Key(end)))

	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	faint := color.New(color.Faint, color.Italic)

	for _, c := range g.Days {
		printer := p
		if c.Weekday == time.Sunday {
			printer = s
		}
		if c.Date == today {
			printer = b
		}
		printer.Fprintf(w, "%s %s", c.Date, c.Weekday.String()[0:3])

		e, ok := lookup(c.Date)
		switch {
		case !ok:
			faint.Fprintln(w, "  -")
		case e.MyDaySummary != "":
			fmt.Fprintf(w, "  %s\n", e.MyDaySummary)
		default:
			fmt.Fprintf(w, "  %d/%d todos · %s\n", e.Completed(), len(e.Todos), pp.Money(e.Total()))
		}
	}
	pp.NewLine()
}

// Report prints per-day totals between two dates.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.Title(fmt.Sprintf("%s – %s", entry.Key(r.Since), entry.Key(r.Until)))
	if len(r.Days) == 0 {
		pp.none()
		return
	}
	for _, d := range r.Days {
		line := fmt.Sprintf("%s  %d/%d todos  %s", d.Date, d.Completed, d.Todos, pp.Money(d.Spent))
		if d.Summary != "" {
			line += "  " + d.Summary
		}
		fmt.Fprintln(pp.out(), line)
	}
	pp.NewLine()
	color.New(color.Bold).Fprintf(pp.out(), "%d completed · %s spent\n", r.Completed, pp.Money(r.Spent))
}
