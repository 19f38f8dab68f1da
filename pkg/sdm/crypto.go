package sdm

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/aead/cmac"
)

// KeySize is the AES-128 key length used by every SDM key.
const KeySize = 16

func aesCBCEncrypt(key, iv, data []byte) ([]byte, error) {
	if len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("CBC encrypt: data not block aligned")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)

	return out, nil
}

func aesCBCDecrypt(key, iv, data []byte) ([]byte, error) {
	if len(data)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("CBC decrypt: data not block aligned")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)

	return out, nil
}

func aesECBEncrypt(key, blockIn []byte) ([]byte, error) {
	if len(blockIn) != aes.BlockSize {
		return nil, fmt.Errorf("ECB input must be %d bytes", aes.BlockSize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, aes.BlockSize)
	block.Encrypt(out, blockIn)

	return out, nil
}

// aesCMAC returns the full 16-byte AES-CMAC of msg.
func aesCMAC(key, msg []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes cipher init failed: %w", err)
	}
	mac, err := cmac.New(block)
	if err != nil {
		return nil, fmt.Errorf("cmac init failed: %w", err)
	}
	mac.Write(msg)

	return mac.Sum(nil), nil
}

// zeroPad appends 0x00 bytes until len is a multiple of the AES block size.
// Empty input stays empty.
func zeroPad(data []byte) []byte {
	padLen := (aes.BlockSize - len(data)%aes.BlockSize) % aes.BlockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)

	return out
}

func checkKey(key []byte) error {
	if len(key) != KeySize {
		return ErrInvalidKeyLength
	}

	return nil
}
