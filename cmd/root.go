package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mfern/chattally/internal/adapters/config"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "chattally",
		Short:         "Tally the most frequent answers in a live chat",
		Long:          "chattally joins a chat channel, counts each viewer's distinct answers (repeats from the same viewer are ignored), keeps a file updated with the current top answers, and accepts clear/exit commands on an interactive console.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd.Context(), configPath)
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "config file path")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
