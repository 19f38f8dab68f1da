package sdm

// Purpose selects which session vector header is produced.
type Purpose int

const (
	// PurposeMAC yields the SV2 header used for SDMMAC session keys.
	PurposeMAC Purpose = iota
	// PurposeEncryption yields the SV1 header used for file data session keys.
	PurposeEncryption
)

// HeaderSize is the length of a session vector header.
const HeaderSize = 6

var (
	macHeader = [HeaderSize]byte{0x3C, 0xC3, 0x00, 0x01, 0x00, 0x80}
	encHeader = [HeaderSize]byte{0xC3, 0x3C, 0x00, 0x01, 0x00, 0x80}
)

// Header returns a fresh copy of the session vector header for purpose.
func Header(purpose Purpose) []byte {
	h := macHeader
	if purpose == PurposeEncryption {
		h = encHeader
	}

	return h[:]
}
