package sun

import (
	"errors"
	"fmt"

	"github.com/andrei-cloud/go_sdm/pkg/sdm"
	"github.com/spf13/cobra"
)

func newMACCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mac",
		Short: "Compute an SDMMAC",
		Long: `Compute the SDMMAC a tag holding the configured file read key would
mirror for the given UID, read counter and optional encrypted file data.`,
		RunE: runMAC,
	}

	cmd.Flags().String("uid", "", "Tag UID (14 hex)")
	cmd.Flags().Uint32("counter", 0, "SDM read counter")
	cmd.Flags().Bool("no-counter", false, "Counter is not mirrored")
	cmd.Flags().String("file", "", "Encrypted file data (hex, optional)")

	_ = cmd.MarkFlagRequired("uid")

	return cmd
}

func runMAC(cmd *cobra.Command, _ []string) error {
	uid, err := decodeHexFlag(cmd, "uid", sdm.UIDSize)
	if err != nil {
		return err
	}
	counter, _ := cmd.Flags().GetUint32("counter")
	noCounter, _ := cmd.Flags().GetBool("no-counter")
	if counter > uint32(sdm.MaxCounter) {
		return fmt.Errorf("counter must be <= %d", sdm.MaxCounter)
	}
	file, err := decodeHexFlag(cmd, "file", 0)
	if err != nil {
		return err
	}
	if noCounter && len(file) > 0 {
		return errors.New("encrypted file data requires a mirrored counter")
	}

	v, err := newVerifier()
	if err != nil {
		return err
	}

	identity := append([]byte(nil), uid...)
	if !noCounter {
		identity = append(identity, sdm.ReadCounter(counter).Bytes()...)
	}
	mac, err := v.MAC(identity, file)
	if err != nil {
		return fmt.Errorf("failed to compute SDMMAC: %w", err)
	}
	cmd.Printf("SDMMAC:   %X\n", mac)

	return nil
}
