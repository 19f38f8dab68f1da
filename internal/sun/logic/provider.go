// Package logic provides business logic for SUN service commands.
package logic

import (
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/andrei-cloud/go_sdm/internal/errorcodes"
	"github.com/andrei-cloud/go_sdm/pkg/sdm"
)

// KeyProvider holds the SDM keys and the verifier built from them.
type KeyProvider struct {
	MetaKey  []byte
	FileKey  []byte
	Verifier *sdm.Verifier
}

var keyProvider atomic.Pointer[KeyProvider]

// NewKeyProvider decodes hex keys and builds a verifier with opts.
func NewKeyProvider(metaKeyHex, fileKeyHex string, opts ...sdm.Option) (*KeyProvider, error) {
	metaKey, err := hex.DecodeString(metaKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid meta key hex: %w", err)
	}
	fileKey, err := hex.DecodeString(fileKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid file key hex: %w", err)
	}

	v, err := sdm.NewVerifier(metaKey, fileKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("verifier setup failed: %w", err)
	}

	return &KeyProvider{MetaKey: metaKey, FileKey: fileKey, Verifier: v}, nil
}

// SetKeyProvider installs p for all subsequent commands.
func SetKeyProvider(p *KeyProvider) {
	keyProvider.Store(p)
}

// currentProvider returns the installed provider or Err10 when keys are not loaded.
func currentProvider() (*KeyProvider, error) {
	p := keyProvider.Load()
	if p == nil {
		return nil, errorcodes.Err10
	}

	return p, nil
}
