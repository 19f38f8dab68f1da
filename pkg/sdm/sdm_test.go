package sdm

import (
	"encoding/hex"
	"testing"
)

// zeroReader makes emulated PICC padding deterministic.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)

	return len(p), nil
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex %q: %v", s, err)
	}

	return b
}

var (
	zeroKey  = make([]byte, KeySize)
	testUID  = []byte{0x04, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	metaKey1 = []byte("0123456789abcdef")
	fileKey1 = []byte("fedcba9876543210")
)

func newTestTag(t *testing.T) *Tag {
	t.Helper()
	tag, err := NewTag(testUID, metaKey1, fileKey1)
	if err != nil {
		t.Fatalf("NewTag failed: %v", err)
	}
	tag.Rand = zeroReader{}

	return tag
}
