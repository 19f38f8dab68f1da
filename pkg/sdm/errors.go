package sdm

// ErrorKind classifies verification failures.
type ErrorKind uint8

const (
	KindUnsupportedUIDLength ErrorKind = iota + 1
	KindMissingUIDMirror
	KindMissingCounterMirror
	KindCMACMismatch
	KindInvalidKeyLength
	KindInvalidPICCDataLength
	KindInvalidMACLength
	KindInvalidFileDataLength
	KindCounterOverflow
	KindFillerTerminatedData
)

var kindNames = map[ErrorKind]string{
	KindUnsupportedUIDLength:  "UnsupportedUidLength",
	KindMissingUIDMirror:      "MissingUidMirror",
	KindMissingCounterMirror:  "MissingCounterMirror",
	KindCMACMismatch:          "CmacMismatch",
	KindInvalidKeyLength:      "InvalidKeyLength",
	KindInvalidPICCDataLength: "InvalidPiccDataLength",
	KindInvalidMACLength:      "InvalidMacLength",
	KindInvalidFileDataLength: "InvalidFileDataLength",
	KindCounterOverflow:       "CounterOverflow",
	KindFillerTerminatedData:  "FillerTerminatedData",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Unknown"
}

// Predefined verification errors. None of them carry message contents.
var (
	ErrUnsupportedUIDLength  = Error{KindUnsupportedUIDLength, "PICC data announces a UID length other than 7"}
	ErrMissingUIDMirror      = Error{KindMissingUIDMirror, "UID mirroring flag is not set"}
	ErrMissingCounterMirror  = Error{KindMissingCounterMirror, "read counter mirroring flag is not set"}
	ErrCMACMismatch          = Error{KindCMACMismatch, "SDMMAC does not match"}
	ErrInvalidKeyLength      = Error{KindInvalidKeyLength, "AES-128 key must be 16 bytes"}
	ErrInvalidPICCDataLength = Error{KindInvalidPICCDataLength, "encrypted PICC data must be one AES block"}
	ErrInvalidMACLength      = Error{KindInvalidMACLength, "SDMMAC must be 8 bytes"}
	ErrInvalidFileDataLength = Error{KindInvalidFileDataLength, "encrypted file data must be a non-empty multiple of 16 bytes"}
	ErrCounterOverflow       = Error{KindCounterOverflow, "read counter reached 0xFFFFFF"}
	ErrFillerTerminatedData  = Error{KindFillerTerminatedData, "file data must not end with the filler byte"}
)

// Error is a verification failure with its kind and a fixed description.
type Error struct {
	Kind        ErrorKind
	Description string
}

// Error implements the error interface: "<Kind>: <Description>".
func (e Error) Error() string {
	return e.Kind.String() + ": " + e.Description
}
