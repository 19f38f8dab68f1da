package sun

import (
	"fmt"
	"strings"

	"github.com/andrei-cloud/go_sdm/internal/config"
	"github.com/andrei-cloud/go_sdm/pkg/sdm"
	"github.com/spf13/cobra"
)

func newEmulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emulate",
		Short: "Emulate a tag scan",
		Long: `Emulate one scan of an NTAG 424 DNA tag configured for SDM.
The read counter is incremented from --counter, the PICC data is encrypted with
random padding and, when --data is given, the file data is padded with filler,
encrypted and covered by the SDMMAC.`,
		RunE: runEmulate,
	}

	cmd.Flags().String("uid", "", "Tag UID (14 hex)")
	cmd.Flags().Uint32("counter", 0, "Read counter before the scan")
	cmd.Flags().String("data", "", "Plain file data to mirror encrypted (optional)")
	cmd.Flags().Bool("no-counter", false, "Do not mirror the read counter")
	cmd.Flags().String("url", "", "Base URL to print the tag URL for (optional)")
	cmd.Flags().Bool("verify", false, "Self-verify the generated message")

	_ = cmd.MarkFlagRequired("uid")

	return cmd
}

func runEmulate(cmd *cobra.Command, _ []string) error {
	uid, err := decodeHexFlag(cmd, "uid", sdm.UIDSize)
	if err != nil {
		return err
	}
	counter, _ := cmd.Flags().GetUint32("counter")
	if counter > uint32(sdm.MaxCounter) {
		return fmt.Errorf("counter must be <= %d", sdm.MaxCounter)
	}
	data, _ := cmd.Flags().GetString("data")
	noCounter, _ := cmd.Flags().GetBool("no-counter")
	baseURL, _ := cmd.Flags().GetString("url")
	selfVerify, _ := cmd.Flags().GetBool("verify")

	cfg := config.Get()
	metaKey, fileKey, err := loadKeys(cfg)
	if err != nil {
		return err
	}

	tag, err := sdm.NewTag(uid, metaKey, fileKey)
	if err != nil {
		return err
	}
	tag.Counter = sdm.ReadCounter(counter)
	tag.MirrorCounter = !noCounter
	tag.Filler = cfg.Filler()
	tag.MACParameter = cfg.SDM.MACParam

	msg, err := tag.Scan([]byte(data))
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	cmd.Printf("UID:      %X\n", uid)
	cmd.Printf("Counter:  %d\n", tag.Counter)
	cmd.Printf("PICC:     %X\n", msg.PICCData)
	if len(msg.FileData) > 0 {
		cmd.Printf("ENC:      %X\n", msg.FileData)
	}
	cmd.Printf("SDMMAC:   %X\n", msg.MAC)
	if baseURL != "" {
		cmd.Printf("URL:      %s\n", buildURL(baseURL, msg, tag.MACParameter))
	}

	if selfVerify {
		v, err := sdm.NewVerifier(metaKey, fileKey, append(cfg.VerifierOptions(),
			sdm.WithCounterRequired(!noCounter))...)
		if err != nil {
			return err
		}
		if _, err := v.Verify(*msg); err != nil {
			cmd.Println("Verify:   FAILED")
			return fmt.Errorf("self-verification failed: %w", err)
		}
		cmd.Println("Verify:   OK")
	}

	return nil
}

// buildURL lays the message out the way an SDM URL template mirrors it.
// Encrypted file data must directly precede the MAC parameter.
func buildURL(base string, msg *sdm.Message, macParam string) string {
	if macParam == "" {
		macParam = sdm.DefaultMACParameter
	}

	var b strings.Builder
	b.WriteString(base)
	if strings.Contains(base, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	fmt.Fprintf(&b, "picc_data=%X", msg.PICCData)
	if len(msg.FileData) > 0 {
		fmt.Fprintf(&b, "&enc=%X", msg.FileData)
	}
	fmt.Fprintf(&b, "&%s=%X", macParam, msg.MAC)

	return b.String()
}
