package logic

import "fmt"

// Deterministic keys used by unit and server tests. The all-zero pair matches
// the published NTAG 424 DNA sample messages.
const (
	TestMetaKeyHex = "00000000000000000000000000000000"
	TestFileKeyHex = "00000000000000000000000000000000"
)

// SetupTestKeyProvider installs a provider holding the test keys with default options.
func SetupTestKeyProvider() error {
	p, err := NewKeyProvider(TestMetaKeyHex, TestFileKeyHex)
	if err != nil {
		return fmt.Errorf("test key provider: %w", err)
	}
	SetKeyProvider(p)

	return nil
}
