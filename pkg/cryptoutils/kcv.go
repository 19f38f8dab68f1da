package cryptoutils

import (
	"crypto/aes"
	"fmt"

	"github.com/aead/cmac"
)

// KeyCV returns the first digits hex characters of the AES-CMAC of a zero
// block under key, the usual check value for AES keys.
func KeyCV(key []byte, digits int) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("keycv: %w", err)
	}
	mac, err := cmac.New(block)
	if err != nil {
		return nil, fmt.Errorf("keycv: %w", err)
	}
	mac.Write(make([]byte, aes.BlockSize))

	hv := Raw2B(mac.Sum(nil))
	if digits <= 0 || digits > len(hv) {
		return nil, fmt.Errorf("keycv: kcv length %d out of range", digits)
	}

	return hv[:digits], nil
}
