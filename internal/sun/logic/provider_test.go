package logic

import (
	"testing"

	"github.com/andrei-cloud/go_sdm/pkg/sdm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyProvider(t *testing.T) {
	t.Parallel()

	p, err := NewKeyProvider(TestMetaKeyHex, TestFileKeyHex, sdm.WithFiller('#'))
	require.NoError(t, err)
	assert.Len(t, p.MetaKey, sdm.KeySize)
	assert.Len(t, p.FileKey, sdm.KeySize)
	assert.NotNil(t, p.Verifier)

	tests := []struct {
		name string
		meta string
		file string
	}{
		{"invalid meta hex", "ZZ", TestFileKeyHex},
		{"invalid file hex", TestMetaKeyHex, "0"},
		{"short key", "0011", TestFileKeyHex},
		{"empty keys", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewKeyProvider(tc.meta, tc.file)
			assert.Error(t, err)
		})
	}
}
