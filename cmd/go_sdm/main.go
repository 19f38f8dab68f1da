package main

import (
	"os"

	"github.com/andrei-cloud/go_sdm/internal/commands/cli"
	"github.com/andrei-cloud/go_sdm/internal/logging"
	"github.com/rs/zerolog/log"
)

// main builds the command tree and runs it.
func main() {
	logging.InitLogger(false, true)

	rootCmd, err := cli.NewRootCommand()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build commands")
	}

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
