// Package keys provides key management commands.
package keys

import (
	"github.com/spf13/cobra"
)

// NewKeysCommand creates the keys command group.
func NewKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "SDM key operations",
		Long: `Key operations for the SDM meta read and file read keys.
This command provides subcommands for checking AES-128 keys by their check value.`,
	}

	cmd.AddCommand(newCheckKeyCommand())

	return cmd
}
