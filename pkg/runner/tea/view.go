package teaui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/daybook/pkg/almanac"
	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/store"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Bold(true)
	summaryStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#89dceb"))
	goodStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a6e3a1"))
	badStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f38ba8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	recordedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA"))
	todayStyle    = lipgloss.NewStyle().Underline(true)
	outsideStyle  = lipgloss.NewStyle().Faint(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#585b70")).Padding(0, 1)
)

const defaultWidth = 80

// View renders the current screen with a status line.
func (m Model) View() string {
	if m.svc == nil || m.svc.Store() == nil {
		return "journal is not started\n"
	}
	st := m.state()
	sel := m.selected()

	var body string
	if st.CurrentView == store.Calendar {
		body = m.calendarView(st, sel)
	} else {
		body = m.dailyView(st.SelectedDate, sel)
	}

	switch m.mode {
	case modeInsert:
		prompt := map[action]string{actionTodo: "Todo: ", actionExpense: "Expense: ", actionInsight: "Insight: "}[m.action]
		body += "\n\n" + prompt + m.input.View()
	case modeHelp:
		body += "\n\n" + panelStyle.Render(helpText)
	}

	return m.header(st, sel) + "\n\n" + body + "\n\n" + m.statusLine(st)
}

const helpText = `Daily record
  ←/→ h/l   previous / next day      t  today
  ↑/↓ j/k   move between todos       x  toggle done
  o  add todo   e  add expense   i  edit insight   d  delete todo
  s  summarize the day            r  sync with the server

Calendar
  ←/→ ↑/↓   move by day / week       [ ]  previous / next period
  g  cycle year, month, week, day   enter  open the day

tab  switch view    ?  close help    q  quit`

func (m Model) header(st store.State, sel time.Time) string {
	info := almanac.For(sel)
	title := titleStyle.Render(fmt.Sprintf("%s %s", st.SelectedDate, sel.Weekday()))
	meta := dimStyle.Render(fmt.Sprintf("%s日 · %s年", info.DayLabel, info.ZodiacYear))
	return title + "  " + meta
}

func (m Model) statusLine(st store.State) string {
	modeStr := map[mode]string{modeNormal: "NORMAL", modeInsert: "INSERT", modeHelp: "HELP"}[m.mode]
	sync := "offline"
	if m.svc.Authenticated() {
		sync = m.svc.Status().String()
	}
	view := "daily"
	if st.CurrentView == store.Calendar {
		view = "calendar:" + st.CalendarView.String()
	}
	return statusStyle.Render(fmt.Sprintf("[%s] [%s] [%s] %s", modeStr, view, sync, m.status))
}

func (m Model) textWidth() int {
	if m.width <= 4 {
		return defaultWidth
	}
	return m.width - 4
}

func (m Model) money() *printers.PrettyPrint {
	return &printers.PrettyPrint{Currency: printers.DefaultCurrency}
}

func (m Model) dailyView(date string, sel time.Time) string {
	e := m.svc.Entry(date)
	var b strings.Builder

	if e.MyDaySummary != "" {
		b.WriteString(summaryStyle.Render("“"+e.MyDaySummary+"”") + "\n\n")
	}

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Todos %d/%d", e.Completed(), len(e.Todos))) + "\n")
	if len(e.Todos) == 0 {
		b.WriteString(dimStyle.Render("  none") + "\n")
	}
	for i, t := range e.Todos {
		mark := "  "
		if i == m.cursor {
			mark = cursorStyle.Render("› ")
		}
		if t.Completed {
			b.WriteString(mark + doneStyle.Render("☑ "+t.Text) + "\n")
		} else {
			b.WriteString(mark + "☐ " + t.Text + "\n")
		}
	}

	pp := m.money()
	b.WriteString("\n" + sectionStyle.Render("Expenses "+pp.Money(e.Total())) + "\n")
	if len(e.Expenses) == 0 {
		b.WriteString(dimStyle.Render("  none") + "\n")
	}
	for _, x := range e.Expenses {
		b.WriteString(fmt.Sprintf("  %-24s %12s\n", x.Item, pp.Money(x.Amount)))
	}

	b.WriteString("\n" + sectionStyle.Render("Insight") + "\n")
	if text := entry.PlainText(e.Insight); text != "" {
		b.WriteString(wordwrap.String(text, m.textWidth()) + "\n")
	} else {
		b.WriteString(dimStyle.Render("  none") + "\n")
	}

	if len(e.Media) > 0 {
		b.WriteString("\n" + sectionStyle.Render(fmt.Sprintf("Media %d", len(e.Media))) + "\n")
		for _, md := range e.Media {
			b.WriteString(fmt.Sprintf("  %s %s\n", md.Type, md.Name))
		}
	}

	info := almanac.For(sel)
	b.WriteString("\n" + goodStyle.Render("宜") + " " + strings.Join(info.Favorable, " "))
	b.WriteString("\n" + badStyle.Render("忌") + " " + strings.Join(info.Unfavorable, " "))
	return b.String()
}

func (m Model) calendarView(st store.State, sel time.Time) string {
	idx := m.svc.Store()
	today := entry.Key(m.now())
	switch st.CalendarView {
	case calendar.Year:
		return m.yearView(calendar.BuildYear(sel, idx), sel)
	case calendar.Week:
		return m.weekView(calendar.BuildWeek(sel), st.SelectedDate, today)
	case calendar.Day:
		return m.dailyView(st.SelectedDate, sel)
	default:
		return monthView(calendar.BuildMonth(sel), idx, st.SelectedDate, today)
	}
}

func monthView(g calendar.MonthGrid, idx calendar.Index, selected, today string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", g.Month, g.Year)) + "\n")
	b.WriteString(dimStyle.Render("     Su Mo Tu We Th Fr Sa") + "\n")
	for _, row := range g.Rows {
		b.WriteString(dimStyle.Render(fmt.Sprintf("W%-2d  ", row.Week)))
		for _, c := range row.Cells {
			b.WriteString(dayCell(c, idx, selected, today) + " ")
		}
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func dayCell(c calendar.Cell, idx calendar.Index, selected, today string) string {
	s := fmt.Sprintf("%2d", c.Day)
	switch {
	case !c.Current:
		return outsideStyle.Render(s)
	case c.Date == selected:
		return selectedStyle.Render(s)
	case idx != nil && idx.Has(c.Date):
		return recordedStyle.Render(s)
	case c.Date == today:
		return todayStyle.Render(s)
	}
	return s
}

func (m Model) weekView(g calendar.WeekGrid, selected, today string) string {
	var b strings.Builder
	pp := m.money()
	for _, c := range g.Days {
		label := fmt.Sprintf("%s %s", c.Date, c.Weekday.String()[:3])
		switch {
		case c.Date == selected:
			label = selectedStyle.Render(label)
		case c.Date == today:
			label = todayStyle.Render(label)
		}
		e := m.svc.Entry(c.Date)
		detail := dimStyle.Render("-")
		if !e.IsEmpty() {
			detail = fmt.Sprintf("%d/%d todos · %s", e.Completed(), len(e.Todos), pp.Money(e.Total()))
			if e.MyDaySummary != "" {
				detail += " · " + summaryStyle.Render(e.MyDaySummary)
			}
		}
		b.WriteString(label + "  " + detail + "\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) yearView(g calendar.YearGrid, sel time.Time) string {
	cells := make([]string, 0, len(g.Months))
	for _, mo := range g.Months {
		s := fmt.Sprintf("%-9s %2d/%2d", mo.Month, len(mo.Recorded), mo.Days)
		if mo.Month == sel.Month() {
			s = selectedStyle.Render(s)
		} else if len(mo.Recorded) > 0 {
			s = recordedStyle.Render(s)
		}
		cells = append(cells, s)
	}
	var rows []string
	for i := 0; i < len(cells); i += 3 {
		rows = append(rows, strings.Join(cells[i:i+3], "   "))
	}
	title := titleStyle.Render(fmt.Sprintf("%d", g.Year))
	return panelStyle.Render(title + "\n" + strings.Join(rows, "\n"))
}
