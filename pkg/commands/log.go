package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	co := &options.CalendarOptions{}
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:       "log [year|month|week|day]",
		Aliases:   []string{"calendar", "cal"},
		Short:     "View the journal as a year, month, week or day calendar.",
		ValidArgs: []string{"year", "month", "week", "day"},
		Args:      cobra.MaximumNArgs(1),
		Example: `
daybook log
daybook log year
daybook log --week --prev 1
daybook cal month --on 2024-2-1
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := co.Granularity(args)
			if err != nil {
				return err
			}
			return withJournal(cmd, func(j *journal) error {
				now := j.Clock.Now()
				anchor, err := on.GetOn(now)
				if err != nil {
					return err
				}
				anchor = calendar.Shift(g, anchor, co.Steps())
				// Remember the view for the next interactive session.
				if err := j.SetCalendarView(g); err != nil {
					return err
				}
				s := log.Log{
					App:         j.Service,
					Granularity: g,
					On:          anchor,
					Today:       now,
					Print:       printer(cmd),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddCalendarArgs(cmd, co)
	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}
