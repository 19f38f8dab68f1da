// Package errorcodes defines SUN service errors using a structured type.
// ServiceError holds the two-character code and human-readable description.
package errorcodes

import (
	"errors"

	"github.com/andrei-cloud/go_sdm/pkg/sdm"
)

// Predefined service error instances.
var (
	Err00 = ServiceError{"00", "No error"}
	Err01 = ServiceError{"01", "SDMMAC verification failure"}
	Err10 = ServiceError{"10", "SDM key not loaded"}
	Err15 = ServiceError{
		"15",
		"Invalid input data (invalid format, invalid characters, or not enough data provided)",
	}
	Err20 = ServiceError{"20", "Unsupported UID length in PICC data"}
	Err21 = ServiceError{"21", "UID mirroring not enabled on tag"}
	Err22 = ServiceError{"22", "Read counter mirroring not enabled on tag"}
	Err23 = ServiceError{"23", "Encrypted file data length error"}
	Err24 = ServiceError{"24", "Invalid SDMMAC length"}
	Err25 = ServiceError{"25", "Invalid PICC data length"}
	Err26 = ServiceError{"26", "Invalid SDM key length"}
	Err41 = ServiceError{"41", "Internal software error"}
	Err68 = ServiceError{"68", "Command has been disabled"}
	Err80 = ServiceError{"80", "Data length error"}
)

// ServiceError represents a SUN service error with its code and description.
type ServiceError struct {
	Code        string // two-character error code
	Description string // human-readable description
}

// Error implements the Go error interface: "<Code>: <Description>".
func (e ServiceError) Error() string {
	return e.Code + ": " + e.Description
}

// CodeOnly returns only the error code (e.g., "68"), for embedding in responses.
func (e ServiceError) CodeOnly() string {
	return e.Code
}

var sdmCodes = map[sdm.ErrorKind]ServiceError{
	sdm.KindUnsupportedUIDLength:  Err20,
	sdm.KindMissingUIDMirror:      Err21,
	sdm.KindMissingCounterMirror:  Err22,
	sdm.KindCMACMismatch:          Err01,
	sdm.KindInvalidKeyLength:      Err26,
	sdm.KindInvalidPICCDataLength: Err25,
	sdm.KindInvalidMACLength:      Err24,
	sdm.KindInvalidFileDataLength: Err23,
	sdm.KindCounterOverflow:       Err80,
	sdm.KindFillerTerminatedData:  Err15,
}

// FromSDM maps an error from the sdm package to the service code reported on the wire.
// Service errors pass through; anything else becomes Err41.
func FromSDM(err error) ServiceError {
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	var sdmErr sdm.Error
	if errors.As(err, &sdmErr) {
		if code, ok := sdmCodes[sdmErr.Kind]; ok {
			return code
		}
	}

	return Err41
}
