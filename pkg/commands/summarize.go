package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
)

func addSummarize(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Write a one-line summary of a day and save it.",
		Long: `Summarize asks the configured model for a short summary of the day's todos,
expenses and insight. Without GEMINI_API_KEY or GOOGLE_API_KEY a fixed
sentence in the configured language is saved instead.`,
		Example: `
daybook summarize
daybook summarize --on yesterday
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				date, err := on.Key(j.Clock.Now())
				if err != nil {
					return err
				}
				s, err := j.Summarize(cmd.Context(), date)
				if err != nil {
					return err
				}
				if output.JSON {
					return output.Print(cmd.OutOrStdout(), map[string]string{"date": date, "myDaySummary": s})
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
