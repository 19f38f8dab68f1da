package sun

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/andrei-cloud/go_sdm/internal/config"
	"github.com/andrei-cloud/go_sdm/pkg/sdm"
	"github.com/spf13/cobra"
)

// decodeHexFlag decodes a hex flag value. A non-zero size requires exactly that many bytes.
func decodeHexFlag(cmd *cobra.Command, name string, size int) ([]byte, error) {
	value, _ := cmd.Flags().GetString(name)
	value = strings.TrimSpace(value)
	if value == "" {
		if size == 0 {
			return nil, nil
		}

		return nil, fmt.Errorf("--%s is required", name)
	}

	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s hex: %w", name, err)
	}
	if size > 0 && len(b) != size {
		return nil, fmt.Errorf("--%s must be %d bytes, got %d", name, size, len(b))
	}

	return b, nil
}

// loadKeys decodes the configured meta and file read keys.
func loadKeys(cfg *config.Config) (metaKey, fileKey []byte, err error) {
	if cfg.Keys.Meta == "" || cfg.Keys.File == "" {
		return nil, nil, errors.New("SDM keys not set: use --meta-key/--file-key or keys.meta/keys.file")
	}

	metaKey, err = hex.DecodeString(cfg.Keys.Meta)
	if err != nil || len(metaKey) != sdm.KeySize {
		return nil, nil, fmt.Errorf("meta key must be %d hex characters", 2*sdm.KeySize)
	}
	fileKey, err = hex.DecodeString(cfg.Keys.File)
	if err != nil || len(fileKey) != sdm.KeySize {
		return nil, nil, fmt.Errorf("file key must be %d hex characters", 2*sdm.KeySize)
	}

	return metaKey, fileKey, nil
}

// newVerifier builds a verifier from the configured keys and options.
func newVerifier() (*sdm.Verifier, error) {
	cfg := config.Get()
	metaKey, fileKey, err := loadKeys(cfg)
	if err != nil {
		return nil, err
	}

	return sdm.NewVerifier(metaKey, fileKey, cfg.VerifierOptions()...)
}

// printResult writes a verification result in the CLI's key/value layout.
func printResult(cmd *cobra.Command, res *sdm.Result) {
	cmd.Printf("Mode:     %s\n", res.Mode)
	cmd.Printf("UID:      %X\n", res.UID)
	if res.CounterMirrored {
		cmd.Printf("Counter:  %d\n", res.Counter)
	} else {
		cmd.Println("Counter:  not mirrored")
	}
	if res.Mode == sdm.ModeIdentityPlusFile {
		cmd.Printf("File:     %q\n", res.FileData)
	}
	cmd.Println("SDMMAC:   valid")
}
