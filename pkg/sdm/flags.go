package sdm

import "fmt"

const (
	// UIDSize is the only UID length this tag family mirrors.
	UIDSize = 7
	// CounterSize is the length of the mirrored read counter.
	CounterSize = 3
	// MaxCounter is the largest value a 24-bit read counter can hold.
	MaxCounter ReadCounter = 0xFFFFFF

	flagUIDMirror     = 0x80
	flagCounterMirror = 0x40
	flagUIDLengthMask = 0x0F
)

// TagFlags is the first byte of decrypted PICC data.
type TagFlags byte

// UIDMirrored reports whether the UID follows the flag byte.
func (f TagFlags) UIDMirrored() bool {
	return f&flagUIDMirror != 0
}

// CounterMirrored reports whether the read counter follows the UID.
func (f TagFlags) CounterMirrored() bool {
	return f&flagCounterMirror != 0
}

// UIDLength returns the UID length announced in the low nibble.
func (f TagFlags) UIDLength() int {
	return int(f & flagUIDLengthMask)
}

// NewTagFlags builds the flag byte a tag writes for the given mirror settings.
func NewTagFlags(mirrorUID, mirrorCounter bool) TagFlags {
	f := TagFlags(UIDSize)
	if mirrorUID {
		f |= flagUIDMirror
	}
	if mirrorCounter {
		f |= flagCounterMirror
	}

	return f
}

// ReadCounter is the 24-bit SDM read counter.
type ReadCounter uint32

// DecodeCounter decodes a 3-byte little-endian read counter.
func DecodeCounter(b []byte) (ReadCounter, error) {
	if len(b) != CounterSize {
		return 0, fmt.Errorf("counter must be %d bytes, got %d", CounterSize, len(b))
	}

	return ReadCounter(b[0]) | ReadCounter(b[1])<<8 | ReadCounter(b[2])<<16, nil
}

// Bytes returns the counter as the 3-byte little-endian form used in session vectors.
func (c ReadCounter) Bytes() []byte {
	return []byte{byte(c), byte(c >> 8), byte(c >> 16)}
}

// BigEndianBytes returns the counter the way it is printed in URLs (most significant byte first).
func (c ReadCounter) BigEndianBytes() []byte {
	return []byte{byte(c >> 16), byte(c >> 8), byte(c)}
}
