package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
daybook add todo call the bank
daybook add expense lunch 32.5 --on yesterday
daybook add insight "<p>slow morning, good run</p>"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addKind(cmd, add.Todo, "todo <text>", "Add an open todo.", cobra.MinimumNArgs(1))
	addKind(cmd, add.Expense, "expense <item> <amount>", "Add an expense line.", cobra.MinimumNArgs(2))
	addKind(cmd, add.Insight, "insight <markup>", "Replace the day's insight.", cobra.MinimumNArgs(1))

	topLevel.AddCommand(cmd)
}

func addKind(parent *cobra.Command, kind add.Kind, use, short string, args cobra.PositionalArgs) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, func(j *journal) error {
				date, err := on.Key(j.Clock.Now())
				if err != nil {
					return err
				}
				s := add.Add{
					App:   j.Service,
					Date:  date,
					Kind:  kind,
					Text:  strings.Join(args, " "),
					Print: printer(cmd),
				}
				if kind == add.Expense {
					// The amount is last so the item can be several words.
					s.Text = strings.Join(args[:len(args)-1], " ")
					s.Amount = args[len(args)-1]
				}
				return s.Do(cmd.Context())
			})
		},
	}

	options.AddOnArgs(cmd, on)

	parent.AddCommand(cmd)
}
