package message

import (
	"github.com/andrei-cloud/go_sdm/internal/errorcodes"
	"github.com/andrei-cloud/go_sdm/pkg/cryptoutils"
)

// Field lengths in ASCII characters.
const (
	modeLen    = 1
	piccHexLen = 32
	macHexLen  = 16
	uidHexLen  = 14
	ctrHexLen  = 6
	lengthLen  = 4

	identityMode = '0'
	fileMode     = '1'
	uidOnlyMode  = '2'
)

// NewSV parses an SV Verify SUN Message command from payload data.
func NewSV(data []byte) (*BaseMessage, error) {
	m := NewBaseMessage("SV", "Verify a SUN message")
	if len(data) < modeLen+piccHexLen+macHexLen {
		return nil, errorcodes.Err15
	}
	// Mode (1).
	m.Fields["Mode"], data = data[:modeLen], data[modeLen:]
	// Encrypted PICC data (32H).
	m.Fields["PICC Data"], data = data[:piccHexLen], data[piccHexLen:]
	// SDMMAC (16H).
	m.Fields["SDMMAC"], data = data[:macHexLen], data[macHexLen:]

	return m, parseFileData(m, data)
}

// NewSM parses an SM Generate SDMMAC command from payload data.
// Mode 2 is a tag that mirrors the UID only and carries no counter field.
func NewSM(data []byte) (*BaseMessage, error) {
	m := NewBaseMessage("SM", "Generate an SDMMAC")
	if len(data) < modeLen+uidHexLen {
		return nil, errorcodes.Err15
	}
	// Mode (1).
	m.Fields["Mode"], data = data[:modeLen], data[modeLen:]
	// UID (14H).
	m.Fields["UID"], data = data[:uidHexLen], data[uidHexLen:]
	if m.Fields["Mode"][0] == uidOnlyMode {
		if len(data) != 0 {
			return nil, errorcodes.Err15
		}

		return m, nil
	}
	if len(data) < ctrHexLen {
		return nil, errorcodes.Err15
	}
	// Read counter, big-endian (6H).
	m.Fields["Counter"], data = data[:ctrHexLen], data[ctrHexLen:]

	return m, parseFileData(m, data)
}

// parseFileData reads the optional length-prefixed file ciphertext for mode 1.
func parseFileData(m *BaseMessage, data []byte) error {
	switch m.Fields["Mode"][0] {
	case identityMode:
		if len(data) != 0 {
			return errorcodes.Err15
		}

		return nil
	case fileMode:
	default:
		return errorcodes.Err15
	}

	if len(data) < lengthLen {
		return errorcodes.Err15
	}
	// File data length in bytes (4H).
	m.Fields["File Length"], data = data[:lengthLen], data[lengthLen:]
	n, err := cryptoutils.ParseLength(m.Fields["File Length"])
	if err != nil {
		return errorcodes.Err15
	}
	if n == 0 || len(data) != 2*n {
		return errorcodes.Err80
	}
	// Encrypted file data (2nH).
	m.Fields["File Data"] = data

	return nil
}

// IsFileMode reports whether the message carries encrypted file data.
func IsFileMode(m Message) bool {
	mode := m.Get("Mode")
	return len(mode) == 1 && mode[0] == fileMode
}
