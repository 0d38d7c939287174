package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/cache"
	"tableflip.dev/daybook/pkg/media"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/remote"
	"tableflip.dev/daybook/pkg/summary"
)

// closeTimeout bounds how long a command waits for pushes on exit.
const closeTimeout = 20 * time.Second

// journal is an opened app.Service and the configuration it came from.
type journal struct {
	*app.Service
	Config cache.Config
}

// openJournal loads the configuration, opens the cache and starts the
// service. The token lives in the OS keychain under the API base.
func openJournal(ctx context.Context) (*journal, error) {
	cfg, err := cache.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := cache.Open(cfg)
	if err != nil {
		return nil, err
	}

	var model summary.Model
	if g, err := summary.NewGemini(ctx, cfg.Model()); err != nil {
		slog.Debug("summaries disabled", "err", err)
	} else {
		model = g
	}

	svc := &app.Service{
		Cache:   c,
		Remote:  remote.New(cfg.API(), remote.KeyringTokens{Account: cfg.API()}),
		Summary: summary.New(model, cfg.Language()),
		Norm:    media.NewNormalizer(cfg.Origin()),
	}
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return &journal{Service: svc, Config: cfg}, nil
}

// Close waits a bounded time for pushes still in flight.
func (j *journal) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := j.Service.Close(ctx); err != nil {
		slog.Warn("pushes still pending", "err", err)
	}
}

// withJournal opens the journal for the command, runs fn and closes it.
func withJournal(cmd *cobra.Command, fn func(j *journal) error) error {
	cmd.SilenceUsage = true
	j, err := openJournal(cmd.Context())
	if err != nil {
		return output.HandleError(err)
	}
	defer j.Close()
	return output.HandleError(fn(j))
}

func printer(cmd *cobra.Command) *printers.PrettyPrint {
	pp := printers.New()
	pp.Out = cmd.OutOrStdout()
	return pp
}
