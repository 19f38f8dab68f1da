package keys

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/andrei-cloud/go_sdm/internal/config"
	"github.com/andrei-cloud/go_sdm/pkg/cryptoutils"
	"github.com/andrei-cloud/go_sdm/pkg/sdm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newCheckKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Calculate the key check value of SDM keys",
		Long: `Calculate the AES-CMAC key check value (KCV) of an AES-128 key.
Without --key the configured meta read and file read keys are checked.
With --prompt the key is read from the terminal without echo.`,
		RunE: runCheckKey,
	}

	cmd.Flags().String("key", "", "Clear AES-128 key (32 hex)")
	cmd.Flags().Int("digits", 6, "Number of KCV hex digits (1-32)")
	cmd.Flags().Bool("prompt", false, "Read the key from the terminal")
	cmd.MarkFlagsMutuallyExclusive("key", "prompt")

	return cmd
}

func runCheckKey(cmd *cobra.Command, _ []string) error {
	keyHex, _ := cmd.Flags().GetString("key")
	digits, _ := cmd.Flags().GetInt("digits")
	prompt, _ := cmd.Flags().GetBool("prompt")

	if prompt {
		var err error
		keyHex, err = readKey(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if keyHex == "" {
			return errors.New("no key entered")
		}
	}

	type namedKey struct {
		name string
		hex  string
	}
	var keys []namedKey
	if keyHex != "" {
		keys = append(keys, namedKey{"key", keyHex})
	} else {
		cfg := config.Get()
		keys = append(keys, namedKey{"meta", cfg.Keys.Meta}, namedKey{"file", cfg.Keys.File})
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Key\tValue\tKCV")
	for _, k := range keys {
		if k.hex == "" {
			fmt.Fprintf(w, "%s\t-\tnot configured\n", k.name)
			continue
		}

		raw, err := hex.DecodeString(strings.TrimSpace(k.hex))
		if err != nil {
			return fmt.Errorf("invalid %s key format: %w", k.name, err)
		}
		if len(raw) != sdm.KeySize {
			return fmt.Errorf("%s key must be %d bytes, got %d", k.name, sdm.KeySize, len(raw))
		}

		kcv, err := cryptoutils.KeyCV(raw, digits)
		if err != nil {
			return fmt.Errorf("failed to calculate KCV: %w", err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", k.name, maskKey(raw), kcv)
	}

	return w.Flush()
}

// maskKey shows only the first and last two bytes of a key.
func maskKey(key []byte) string {
	s := cryptoutils.Raw2Str(key)
	return s[:4] + strings.Repeat("*", len(s)-8) + s[len(s)-4:]
}

// readKey reads one line of key hex. A terminal on stdin is switched to
// no-echo mode for the duration of the read.
func readKey(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Key (hex): ")
		line, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}

		return strings.TrimSpace(string(line)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read key: %w", err)
	}

	return strings.TrimSpace(line), nil
}
