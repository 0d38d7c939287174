package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/calendar"
)

// CalendarOptions picks the calendar granularity and how far to page.
type CalendarOptions struct {
	Year  bool
	Month bool
	Week  bool
	Day   bool
	Prev  int
	Next  int
}

func AddCalendarArgs(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().BoolVarP(&o.Year, "year", "y", false,
		"Show the year.")
	cmd.Flags().BoolVarP(&o.Month, "month", "m", false,
		"Show the month (default).")
	cmd.Flags().BoolVarP(&o.Week, "week", "w", false,
		"Show the week.")
	cmd.Flags().BoolVarP(&o.Day, "day", "d", false,
		"Show the day.")
	cmd.Flags().IntVar(&o.Prev, "prev", 0,
		"Page back this many years, months, weeks or days.")
	cmd.Flags().IntVar(&o.Next, "next", 0,
		"Page forward this many years, months, weeks or days.")
}

// Granularity returns the chosen view; an argument such as "week" wins over
// the flags, and month is the fallback.
func (o *CalendarOptions) Granularity(args []string) (calendar.Granularity, error) {
	if len(args) > 0 {
		return calendar.ParseGranularity(args[0])
	}
	switch {
	case o.Year:
		return calendar.Year, nil
	case o.Week:
		return calendar.Week, nil
	case o.Day:
		return calendar.Day, nil
	}
	return calendar.Month, nil
}

// Steps is the net number of pages to move.
func (o *CalendarOptions) Steps() int {
	return o.Next - o.Prev
}
