package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var follow bool

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"show", "today"},
		Short:   "Show everything recorded on a day.",
		Example: `
daybook get
daybook get --on yesterday
daybook get --on 2024-3-10 --json
daybook get --follow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				date, err := on.Key(j.Clock.Now())
				if err != nil {
					return err
				}
				if output.JSON {
					return output.Print(cmd.OutOrStdout(), j.Entry(date))
				}
				s := get.Get{
					App:    j.Service,
					Date:   date,
					Follow: follow,
					Print:  printer(cmd),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing the day as other sessions change it.")

	topLevel.AddCommand(cmd)
}
