package sun

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Enter and verify a SUN message interactively",
		Long: `Open an interactive form for the fields of a SUN message and verify it
with the configured keys once every field is entered.`,
		RunE: runInspect,
	}
}

func runInspect(cmd *cobra.Command, _ []string) error {
	v, err := newVerifier()
	if err != nil {
		return err
	}

	msg, ok, err := runInspectTUI()
	if err != nil {
		return fmt.Errorf("inspect form failed: %w", err)
	}
	if !ok {
		return nil
	}

	res, err := v.Verify(msg)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	printResult(cmd, res)

	return nil
}
