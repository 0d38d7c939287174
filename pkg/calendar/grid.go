// Package calendar lays out year, month, week and day views around an anchor
// date. Weeks start on Sunday.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/daybook/pkg/almanac"
	"tableflip.dev/daybook/pkg/entry"
)

// Granularity selects which grid is built.
type Granularity string

const (
	Year  Granularity = "YEAR"
	Month Granularity = "MONTH"
	Week  Granularity = "WEEK"
	Day   Granularity = "DAY"
)

// Granularities lists every granularity, widest first.
var Granularities = []Granularity{Year, Month, Week, Day}

// ParseGranularity accepts any case of a granularity name.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToUpper(strings.TrimSpace(s)))
	switch g {
	case Year, Month, Week, Day:
		return g, nil
	}
	return "", fmt.Errorf("calendar: unknown granularity %q", s)
}

func (g Granularity) String() string {
	return strings.ToLower(string(g))
}

// Cell is one day slot of a grid. Cells outside the month being shown keep
// their day number for display but carry no date key.
type Cell struct {
	Day     int          `json:"day"`
	Date    string       `json:"date,omitempty"`
	Current bool         `json:"current"`
	Weekday time.Weekday `json:"weekday"`
}

// Row is one Sunday-start week of a month grid.
type Row struct {
	Week  int     `json:"week"`
	Cells [7]Cell `json:"cells"`
}

type MonthGrid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Rows  []Row      `json:"rows"`
}

// BuildMonth returns the month containing anchor.
func BuildMonth(anchor time.Time) MonthGrid {
	first := firstOfMonth(anchor)
	offset := int(StartDay(first))
	days := DaysIn(first)
	prevDays := DaysIn(first.AddDate(0, 0, -1))

	grid := MonthGrid{Year: first.Year(), Month: first.Month()}
	slots := offset + days
	for start := 0; start < slots; start += 7 {
		var row Row
		for i := 0; i < 7; i++ {
			n := start + i - offset + 1
			c := Cell{Weekday: time.Weekday(i)}
			switch {
			case n < 1:
				c.Day = prevDays + n
			case n > days:
				c.Day = n - days
			default:
				c.Day = n
				c.Current = true
				c.Date = entry.Key(first.AddDate(0, 0, n-1))
				if row.Week == 0 {
					row.Week = (n + offset + 6) / 7
				}
			}
			row.Cells[i] = c
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// Leading counts the cells before the first of the month.
func (g MonthGrid) Leading() int {
	n := 0
	for _, c := range g.Rows[0].Cells {
		if c.Current {
			break
		}
		n++
	}
	return n
}

type WeekGrid struct {
	Start time.Time `json:"start"`
	Days  [7]Cell   `json:"days"`
}

// BuildWeek returns the Sunday-start week containing anchor.
func BuildWeek(anchor time.Time) WeekGrid {
	day := entry.Day(anchor)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	w := WeekGrid{Start: start}
	for i := range w.Days {
		d := start.AddDate(0, 0, i)
		w.Days[i] = Cell{
			Day:     d.Day(),
			Date:    entry.Key(d),
			Current: true,
			Weekday: d.Weekday(),
		}
	}
	return w
}

// Index reports which days have a record.
type Index interface {
	Has(date string) bool
}

// MonthSummary is one month of a year grid.
type MonthSummary struct {
	Month    time.Month   `json:"month"`
	Days     int          `json:"days"`
	Start    time.Weekday `json:"start"`
	Recorded []int        `json:"recorded"`
}

type YearGrid struct {
	Year   int              `json:"year"`
	Months [12]MonthSummary `json:"months"`
}

// BuildYear summarizes every month of anchor's year. idx may be nil.
func BuildYear(anchor time.Time, idx Index) YearGrid {
	y := anchor.Year()
	grid := YearGrid{Year: y}
	for i := range grid.Months {
		first := time.Date(y, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
		s := MonthSummary{
			Month:    first.Month(),
			Days:     DaysIn(first),
			Start:    StartDay(first),
			Recorded: []int{},
		}
		if idx != nil {
			for d := 1; d <= s.Days; d++ {
				if idx.Has(entry.Key(first.AddDate(0, 0, d-1))) {
					s.Recorded = append(s.Recorded, d)
				}
			}
		}
		grid.Months[i] = s
	}
	return grid
}

type DayView struct {
	Date    string       `json:"date"`
	Weekday time.Weekday `json:"weekday"`
	Almanac almanac.Info `json:"almanac"`
}

func BuildDay(anchor time.Time) DayView {
	day := entry.Day(anchor)
	return DayView{
		Date:    entry.Key(day),
		Weekday: day.Weekday(),
		Almanac: almanac.For(day),
	}
}

// Shift moves anchor n steps of g. Months roll over the way AddDate does, so
// Jan 31 plus one month is Mar 2 or 3.
func Shift(g Granularity, anchor time.Time, n int) time.Time {
	switch g {
	case Year:
		return anchor.AddDate(n, 0, 0)
	case Month:
		return anchor.AddDate(0, n, 0)
	case Week:
		return anchor.AddDate(0, 0, 7*n)
	case Day:
		return anchor.AddDate(0, 0, n)
	}
	return anchor
}

// DaysIn returns the number of days in the month of then.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartDay returns the weekday of the first of the month of then.
func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC).Weekday()
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
