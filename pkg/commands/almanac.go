package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/almanac"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/entry"
	runner "tableflip.dev/daybook/pkg/runner/almanac"
	"tableflip.dev/daybook/pkg/store"
)

func addAlmanac(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var days int

	cmd := &cobra.Command{
		Use:     "almanac",
		Aliases: []string{"key", "huangli"},
		Short:   "Show the day name, zodiac year and the 宜/忌 lists.",
		Example: `
daybook almanac
daybook almanac --on 2024-2-10 --days 7
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			day, err := on.GetOn(store.RealClock{}.Now())
			if err != nil {
				return err
			}
			if output.JSON {
				infos := make(map[string]almanac.Info, days)
				for i := 0; i < max(days, 1); i++ {
					d := day.AddDate(0, 0, i)
					infos[entry.Key(d)] = almanac.For(d)
				}
				return output.Print(cmd.OutOrStdout(), infos)
			}
			a := runner.Almanac{On: day, Days: days, Print: printer(cmd)}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, output)
	cmd.Flags().IntVar(&days, "days", 1, "Number of days to show.")

	topLevel.AddCommand(cmd)
}
