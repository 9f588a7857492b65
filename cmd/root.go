package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nowhq/now-cli/version"
)

// NewRootCommand creates the root command for the now CLI.
func NewRootCommand(name, description string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: description,
		Long: description + `

This CLI provides commands for managing domains attached to hosting
projects on the Now platform.`,
		Version:       version.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags available to all commands
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable verbose transport logging")

	return cmd
}
