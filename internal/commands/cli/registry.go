// Package cli provides centralized command registration.
package cli

import (
	"github.com/andrei-cloud/go_sdm/internal/commands/cli/keys"
	"github.com/andrei-cloud/go_sdm/internal/commands/cli/server"
	"github.com/andrei-cloud/go_sdm/internal/commands/cli/sun"
	"github.com/spf13/cobra"
)

// RegisterCommands registers all root commands.
func RegisterCommands(root *cobra.Command) error {
	root.AddCommand(keys.NewKeysCommand())
	root.AddCommand(sun.NewSunCommand())
	root.AddCommand(server.NewServeCommand())

	return nil
}
