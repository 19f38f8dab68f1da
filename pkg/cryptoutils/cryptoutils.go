// Package cryptoutils provides hex and binary helpers shared by the SUN
// service, its wire parsers and the CLI.
package cryptoutils

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Raw2Str converts raw binary data to an uppercase hex string.
func Raw2Str(raw []byte) string {
	return strings.ToUpper(hex.EncodeToString(raw))
}

// Raw2B returns the uppercase hex representation of raw data as bytes.
func Raw2B(raw []byte) []byte {
	return []byte(Raw2Str(raw))
}

// B2Raw decodes ASCII hex bytes into raw binary data.
func B2Raw(b []byte) ([]byte, error) {
	raw, err := hex.DecodeString(string(b))
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}

	return raw, nil
}

// FormatLength renders n as a fixed-width uppercase hex length field.
func FormatLength(n, digits int) (string, error) {
	if n < 0 {
		return "", errors.New("length: negative value")
	}
	s := fmt.Sprintf("%0*X", digits, n)
	if len(s) > digits {
		return "", fmt.Errorf("length %d does not fit in %d hex digits", n, digits)
	}

	return s, nil
}

// ParseLength parses a fixed-width hex length field.
func ParseLength(field []byte) (int, error) {
	n, err := strconv.ParseUint(string(field), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid length field %q: %w", field, err)
	}

	return int(n), nil
}
