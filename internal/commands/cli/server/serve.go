// Package server provides server-related CLI commands.
package server

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/andrei-cloud/go_sdm/internal/config"
	"github.com/andrei-cloud/go_sdm/internal/logging"
	"github.com/andrei-cloud/go_sdm/internal/server"
	"github.com/andrei-cloud/go_sdm/internal/sun"
	"github.com/andrei-cloud/go_sdm/internal/sun/logic"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the SUN verification server",
		Long:  `Start the SUN verification server to process SDM commands over TCP.`,
		RunE:  runServe,
	}

	// Add serve command specific flags that can override config.
	cmd.Flags().String("host", "localhost", "Server host")
	cmd.Flags().Int("port", 1500, "Server port")

	config.MarkFlagKey(cmd.Flags(), "host", "server.host")
	config.MarkFlagKey(cmd.Flags(), "port", "server.port")

	return cmd
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Get()

	// Normalize log level and format from config.
	logLevel := strings.TrimSpace(strings.ToLower(cfg.Log.Level))
	logFormat := strings.TrimSpace(strings.ToLower(cfg.Log.Format))
	logging.InitLogger(logLevel == "debug", logFormat == "human")

	if err := loadKeys(cfg); err != nil {
		return err
	}

	registry := sun.NewDefaultRegistry()
	for _, info := range registry.List() {
		log.Debug().
			Str("command", info.Code).
			Str("response", info.ResponseCode).
			Str("version", info.Version).
			Str("description", info.Description).
			Msg("command details")
	}

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv, err := server.NewServer(serverAddr, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Reload keys and verifier options on SIGHUP.
	reloadChan := make(chan os.Signal, 1)
	signal.Notify(reloadChan, syscall.SIGHUP)
	defer signal.Stop(reloadChan)
	done := make(chan struct{})
	defer close(done)
	go watchReload(reloadChan, done)

	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	<-stopChan
	log.Info().Msg("shutting down server...")

	if err := srv.Stop(); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	return nil
}

// watchReload reloads configuration and keys on each signal until done is closed.
func watchReload(reload <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-reload:
			log.Info().Msg("reloading configuration...")
			if err := config.Initialize(); err != nil {
				log.Error().Err(err).Msg("failed to reload configuration")
				continue
			}
			if err := loadKeys(config.Get()); err != nil {
				log.Error().Err(err).Msg("failed to reload keys")
				continue
			}
			log.Info().Msg("configuration reloaded")
		}
	}
}

// loadKeys installs the configured SDM keys for the command logic.
func loadKeys(cfg *config.Config) error {
	if cfg.Keys.Meta == "" || cfg.Keys.File == "" {
		return errors.New("keys.meta and keys.file must be configured (or set --meta-key and --file-key)")
	}

	p, err := logic.NewKeyProvider(cfg.Keys.Meta, cfg.Keys.File, cfg.VerifierOptions()...)
	if err != nil {
		return fmt.Errorf("failed to load SDM keys: %w", err)
	}
	logic.SetKeyProvider(p)

	log.Info().
		Bool("require_counter", cfg.SDM.RequireCounter).
		Bool("uniform_timing", cfg.SDM.UniformTiming).
		Str("mac_param", cfg.SDM.MACParam).
		Msg("SDM keys loaded")

	return nil
}
