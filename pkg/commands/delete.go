package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/snake"
)

func addDelete(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the whole record of a day, here and on the server.",
		Example: `
daybook delete --on 2024-3-10
daybook delete --on yesterday --yes
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("on") {
				return errors.New("delete needs an explicit --on day")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				date, err := on.Key(j.Clock.Now())
				if err != nil {
					return err
				}
				if !co.Yes {
					ok, err := snake.Confirm(cmd, fmt.Sprintf("Delete %s", date))
					if err != nil {
						return err
					}
					if !ok {
						return nil
					}
				}
				if err := j.Delete(cmd.Context(), date); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", date)
				return nil
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
