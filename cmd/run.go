package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mfern/chattally/internal/adapters/config"
)

// runBot wires the application and runs it until the operator exits or
// the process is signalled.
func runBot(ctx context.Context, configPath string) error {
	app, err := wireApp(configPath)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			fmt.Fprintln(os.Stderr, "Invalid Config")
		}
		return err
	}
	defer func() { _ = app.console.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.source.OnMessage(app.service.HandleMessage)
	go func() {
		if err := app.source.Connect(ctx); err != nil {
			app.log.Error().Err(err).Msg("chat source stopped")
		}
	}()
	defer func() { _ = app.source.Close() }()

	app.log.Info().
		Str("channel", app.cfg.Channel).
		Str("output", app.cfg.Output).
		Msg("watching chat; commands: clear, exit")

	return app.service.Run(ctx, app.console.Lines())
}
