// Package cli provides the CLI command structure for go_sdm.
package cli

import (
	"fmt"

	"github.com/andrei-cloud/go_sdm/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCommand creates and returns the root command with all subcommands.
func NewRootCommand() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "go_sdm",
		Short: "NTAG 424 DNA SUN message verification server and utilities",
		Long: `A SUN (Secure Unique NFC) message verifier for NTAG 424 DNA tags using
Secure Dynamic Messaging, served over TCP or used directly from the command line.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Initialize configuration before running any command.
			config.SetConfigFile(cfgFile)
			config.BindMarkedFlags(cmd.Flags())
			if err := config.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			return nil
		},
	}

	// Add persistent flags that affect all commands.
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.go_sdm/config.yaml)")

	// Add global flags that can override config file settings.
	rootCmd.PersistentFlags().
		String("log-level", "info", "logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "logging format (human, json)")
	rootCmd.PersistentFlags().String("meta-key", "", "SDM meta read key (32 hex)")
	rootCmd.PersistentFlags().String("file-key", "", "SDM file read key (32 hex)")

	// Map flags to config keys.
	config.MarkFlagKey(rootCmd.PersistentFlags(), "log-level", "log.level")
	config.MarkFlagKey(rootCmd.PersistentFlags(), "log-format", "log.format")
	config.MarkFlagKey(rootCmd.PersistentFlags(), "meta-key", "keys.meta")
	config.MarkFlagKey(rootCmd.PersistentFlags(), "file-key", "keys.file")

	// Register all commands.
	if err := RegisterCommands(rootCmd); err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	return rootCmd, nil
}
