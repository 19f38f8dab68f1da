package sun

import (
	"fmt"

	"github.com/andrei-cloud/go_sdm/pkg/sdm"
	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a SUN message",
		Long: `Verify a SUN message from its mirrored fields.
The command decrypts the PICC data, checks the SDMMAC and, when --file is
given, decrypts the mirrored file data.`,
		RunE: runVerify,
	}

	cmd.Flags().String("picc", "", "Encrypted PICC data (32 hex)")
	cmd.Flags().String("mac", "", "SDMMAC (16 hex)")
	cmd.Flags().String("file", "", "Encrypted file data (hex, optional)")

	_ = cmd.MarkFlagRequired("picc")
	_ = cmd.MarkFlagRequired("mac")

	return cmd
}

func runVerify(cmd *cobra.Command, _ []string) error {
	picc, err := decodeHexFlag(cmd, "picc", sdm.PICCDataSize)
	if err != nil {
		return err
	}
	mac, err := decodeHexFlag(cmd, "mac", sdm.MACSize)
	if err != nil {
		return err
	}
	file, err := decodeHexFlag(cmd, "file", 0)
	if err != nil {
		return err
	}

	v, err := newVerifier()
	if err != nil {
		return err
	}

	res, err := v.Verify(sdm.Message{PICCData: picc, MAC: mac, FileData: file})
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	printResult(cmd, res)

	return nil
}
