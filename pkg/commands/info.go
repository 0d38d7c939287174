package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where days are stored.",
		Example: `
daybook info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *journal) error {
				s := info.Info{
					Config: j.Config,
					App:    j.Service,
					Out:    cmd.OutOrStdout(),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
