package commands

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "complete <n>",
		Aliases: []string{"done", "toggle"},
		Short:   "Toggle the n-th todo of a day between open and done.",
		Example: `
daybook complete 2
daybook done 1 --on yesterday
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := position(args[0])
			if err != nil {
				return err
			}
			return withJournal(cmd, func(j *journal) error {
				date, err := on.Key(j.Clock.Now())
				if err != nil {
					return err
				}
				s := complete.Complete{
					App:      j.Service,
					Date:     date,
					Position: n,
					Print:    printer(cmd),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}

// position parses a 1-based list position as printed by get.
func position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, errors.New("requires a list position, starting at 1")
	}
	return n, nil
}
