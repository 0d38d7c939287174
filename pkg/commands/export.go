package commands

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/export"
)

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal to other formats.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addExportICS(cmd)

	topLevel.AddCommand(cmd)
}

func addExportICS(parent *cobra.Command) {
	var out string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write every recorded day as an all-day iCalendar event.",
		Example: `
daybook export ics > daybook.ics
daybook export ics --out ~/daybook.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				var w io.Writer = cmd.OutOrStdout()
				if out != "" {
					f, err := os.Create(out)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				st := j.State()
				entries := make([]entry.Entry, 0, len(st.Entries))
				for _, date := range slices.Sorted(maps.Keys(st.Entries)) {
					entries = append(entries, st.Entries[date])
				}
				n, err := export.ICS(w, entries, j.Clock.Now())
				if err != nil {
					return err
				}
				if out != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d day(s) to %s\n", n, out)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "File to write instead of stdout.")

	parent.AddCommand(cmd)
}
