package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfern/chattally/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chattally version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "chattally %s\n", version.Version)
			return err
		},
	}
}
