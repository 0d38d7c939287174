package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/strike"
)

func addStrike(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "strike",
		Aliases: []string{"rm"},
		Short:   "Remove a todo, expense or media item from a day.",
		Example: `
daybook strike todo 2
daybook rm expense 1 --on yesterday
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, kind := range []strike.Kind{strike.Todo, strike.Expense, strike.Media} {
		addStrikeKind(cmd, kind)
	}

	topLevel.AddCommand(cmd)
}

func addStrikeKind(parent *cobra.Command, kind strike.Kind) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   string(kind) + " <n>",
		Short: "Remove the n-th " + string(kind) + ".",
		Args:  cobra.ExactArgs(1),
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
				s := strike.Strike{
					App:      j.Service,
					Date:     date,
					Kind:     kind,
					Position: n,
					Print:    printer(cmd),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddOnArgs(cmd, on)

	parent.AddCommand(cmd)
}
