package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
)

func addAttach(topLevel *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "attach <file>...",
		Short: "Upload image, video or audio files and attach them to a day.",
		Long: `Attach uploads each file to the remote service and records the returned
reference on the day. It needs a signed-in session.`,
		Example: `
daybook attach ~/Pictures/sunset.jpg
daybook attach memo.m4a --on yesterday
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, func(j *journal) error {
				date, err := on.Key(j.Clock.Now())
				if err != nil {
					return err
				}
				for _, path := range args {
					if _, err := j.Attach(cmd.Context(), date, path); err != nil {
						return err
					}
				}
				pp := printer(cmd)
				e := j.Entry(date)
				pp.TitleWithCount(date, len(e.Media), "file", "files")
				pp.Media(e.Media)
				return nil
			})
		},
	}

	options.AddOnArgs(cmd, on)

	topLevel.AddCommand(cmd)
}
