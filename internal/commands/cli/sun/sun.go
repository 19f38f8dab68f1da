// Package sun provides SUN message commands.
package sun

import (
	"github.com/andrei-cloud/go_sdm/internal/config"
	"github.com/spf13/cobra"
)

// NewSunCommand creates the sun command group.
func NewSunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sun",
		Short: "SUN message verification and generation",
		Long: `SUN message operations for NTAG 424 DNA Secure Dynamic Messaging.
This command provides subcommands for verifying SUN messages, computing SDMMACs,
emulating tag scans and inspecting messages interactively.`,
	}

	// Verifier options shared by all subcommands.
	cmd.PersistentFlags().String("filler", "", "file data filler character (default from config, 'x')")
	cmd.PersistentFlags().String("mac-param", "", "query parameter that follows encrypted file data (default from config, 'sdmmac')")
	config.MarkFlagKey(cmd.PersistentFlags(), "filler", "sdm.filler")
	config.MarkFlagKey(cmd.PersistentFlags(), "mac-param", "sdm.mac_param")

	cmd.AddCommand(newVerifyCommand())
	cmd.AddCommand(newMACCommand())
	cmd.AddCommand(newEmulateCommand())
	cmd.AddCommand(newInspectCommand())

	return cmd
}
