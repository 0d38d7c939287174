package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/timeutil"
)

func addCarry(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var from string

	cmd := &cobra.Command{
		Use:     "carry",
		Aliases: []string{"migrate"},
		Short:   "Move the open todos of one day onto another.",
		Long: `Carry moves every open todo from --from (yesterday by default) to the end of
--on (today by default). Completed todos stay where they were.`,
		Example: `
daybook carry
daybook carry --from 2024-3-1 --on 2024-3-4
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				now := j.Clock.Now()
				to, err := on.Key(now)
				if err != nil {
					return err
				}
				src, err := timeutil.ParseDay(from, now)
				if err != nil {
					return err
				}
				srcKey := src.Format("2006-01-02")
				n, err := j.CarryOver(srcKey, to)
				if err != nil {
					return err
				}
				if output.JSON {
					return output.Print(cmd.OutOrStdout(), map[string]any{"from": srcKey, "to": to, "moved": n})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Carried %d open todo(s) from %s to %s\n", n, srcKey, to)
				return nil
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, output)
	cmd.Flags().StringVar(&from, "from", "yesterday", "Day to carry open todos from.")

	topLevel.AddCommand(cmd)
}
