package sdm

import (
	"encoding/hex"
	"strings"
)

const (
	// MACSize is the length of a truncated SDMMAC.
	MACSize = 8
	// DefaultMACParameter is the query parameter that follows encrypted file data in the MAC input.
	DefaultMACParameter = "sdmmac"
)

// ComputeSDMMAC computes the 8-byte SDMMAC for identityPayload (UID || counter_LE,
// or the UID alone when the counter is not mirrored). A non-empty fileCiphertext
// switches to the identity-plus-file construction.
func ComputeSDMMAC(fileKey, identityPayload, fileCiphertext []byte) ([]byte, error) {
	if err := checkKey(fileKey); err != nil {
		return nil, err
	}

	return truncatedCMAC(fileKey, identityPayload, macTrailer(fileCiphertext, DefaultMACParameter))
}

// truncatedCMAC runs the two-pass SDMMAC construction:
//
//	k   = CMAC(key, zeroPad(SV2 header || associatedData))
//	mac = odd bytes of CMAC(k, trailingData)
func truncatedCMAC(key, associatedData, trailingData []byte) ([]byte, error) {
	sv := append(Header(PurposeMAC), associatedData...)

	sessionKey, err := aesCMAC(key, zeroPad(sv))
	if err != nil {
		return nil, err
	}

	full, err := aesCMAC(sessionKey, trailingData)
	if err != nil {
		return nil, err
	}

	return truncateMAC(full), nil
}

// macTrailer builds the data authenticated by the second CMAC pass. It is
// empty unless encrypted file data is mirrored.
func macTrailer(fileCiphertext []byte, param string) []byte {
	if len(fileCiphertext) == 0 {
		return nil
	}

	var b strings.Builder
	b.Grow(len(fileCiphertext)*2 + len(param) + 2)
	b.WriteString(strings.ToUpper(hex.EncodeToString(fileCiphertext)))
	b.WriteByte('&')
	b.WriteString(param)
	b.WriteByte('=')

	return []byte(b.String())
}

// truncateMAC keeps the odd-indexed bytes of a 16-byte CMAC.
func truncateMAC(full []byte) []byte {
	out := make([]byte, MACSize)
	for i := range MACSize {
		out[i] = full[2*i+1]
	}

	return out
}
