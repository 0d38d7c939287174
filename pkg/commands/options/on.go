package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/timeutil"
)

// OnOptions selects the day a command works on.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2020-2-28", --on="2/28", --on=yesterday or --on=-3d.`)
}

// GetOn resolves --on against now, defaulting to today.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	return timeutil.ParseDay(o.OnString, now)
}

// Key is GetOn as a date key.
func (o *OnOptions) Key(now time.Time) (string, error) {
	t, err := o.GetOn(now)
	if err != nil {
		return "", err
	}
	return entry.Key(t), nil
}
