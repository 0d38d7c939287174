package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/printers"
	teaui "tableflip.dev/daybook/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
daybook ui
`,
		ValidArgs: []string{},
		Args:      cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !printers.Interactive(os.Stdout) {
				return errors.New("ui needs a terminal")
			}
			return withJournal(cmd, func(j *journal) error {
				return teaui.Run(cmd.Context(), j.Service)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
