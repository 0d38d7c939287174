package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	debug  bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: base.Wrap80("A local-first daily journal: todos, expenses, insights and media, synced when signed in."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug detail to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addGet(topLevel)
	addAdd(topLevel)
	addComplete(topLevel)
	addStrike(topLevel)
	addCarry(topLevel)
	addAttach(topLevel)
	addSummarize(topLevel)
	addDelete(topLevel)
	addLog(topLevel)
	addAlmanac(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addSession(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}

// setupLogging keeps the default logger quiet unless --debug is set.
func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
