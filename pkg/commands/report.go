package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/track"
	"tableflip.dev/daybook/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string

	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"track"},
		Short:   "Total the todos done and money spent over recent days.",
		Long: `Report lists every recorded day within the window ending today, with its
completed todos, spending and summary, then the totals.

Examples:
  daybook report
  daybook report --last 3d
  daybook report --last 2w --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := timeutil.ParseWindow(last)
			if err != nil {
				return err
			}
			return withJournal(cmd, func(j *journal) error {
				since, until := w.Range(j.Clock.Now())
				if output.JSON {
					return output.Print(cmd.OutOrStdout(), j.Report(since, until))
				}
				s := track.Track{App: j.Service, Since: since, Until: until, Print: printer(cmd)}
				_, err := s.Do(cmd.Context())
				return err
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "window of days to include (for example 3d, 1w, 2w3d)")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
