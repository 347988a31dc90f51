package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	boardfile "github.com/mfern/chattally/internal/adapters/board"
	"github.com/mfern/chattally/internal/adapters/config"
	"github.com/mfern/chattally/internal/adapters/console"
	"github.com/mfern/chattally/internal/adapters/twitch"
	"github.com/mfern/chattally/internal/application"
	"github.com/mfern/chattally/internal/domain"
	"github.com/mfern/chattally/internal/ports"
)

type app struct {
	cfg     config.Config
	log     zerolog.Logger
	console ports.CommandConsole
	service *application.Service
	source  ports.ChatSource
}

func wireApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	cons, err := console.Open(os.Stdin, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("open console: %w", err)
	}

	// every log line routes through the console so it never corrupts
	// the operator's in-progress input
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cons, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()

	return &app{
		cfg:     cfg,
		log:     logger,
		console: cons,
		service: application.NewService(domain.NewBoard(), boardfile.NewFileSink(cfg.Output), logger),
		source:  twitch.NewSource(cfg.Name, cfg.Token, cfg.Channel, logger),
	}, nil
}
