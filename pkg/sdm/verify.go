package sdm

import (
	"crypto/subtle"
	"errors"
)

// Mode tells whether a SUN message carries encrypted file data.
type Mode int

const (
	ModeIdentityOnly Mode = iota
	ModeIdentityPlusFile
)

func (m Mode) String() string {
	if m == ModeIdentityPlusFile {
		return "identity+file"
	}

	return "identity"
}

// Message holds the raw fields of one SUN message, already hex-decoded.
type Message struct {
	PICCData []byte
	MAC      []byte
	FileData []byte // encrypted file data, empty in identity-only mode
}

// Mode derives the verification mode from the presence of file data.
func (m Message) Mode() Mode {
	if len(m.FileData) > 0 {
		return ModeIdentityPlusFile
	}

	return ModeIdentityOnly
}

// Result is what a verified SUN message reveals.
type Result struct {
	Mode            Mode
	UID             []byte
	Counter         ReadCounter
	CounterMirrored bool
	FileData        []byte // decrypted, filler stripped; nil in identity-only mode
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithFiller sets the placeholder byte stripped from decrypted file data.
func WithFiller(b byte) Option {
	return func(v *Verifier) { v.filler = b }
}

// WithMACParameter sets the query parameter name that ends the MAC input after file data.
func WithMACParameter(name string) Option {
	return func(v *Verifier) { v.macParam = name }
}

// WithCounterRequired controls whether identity-only messages must mirror the read counter.
// Messages with file data always need it.
func WithCounterRequired(required bool) Option {
	return func(v *Verifier) { v.requireCounter = required }
}

// WithUniformTiming makes a rejected UID length cost one MAC computation, like every other outcome.
func WithUniformTiming(enabled bool) Option {
	return func(v *Verifier) { v.uniformTiming = enabled }
}

// Verifier checks SUN messages under a fixed pair of keys. It holds no
// mutable state and may be shared between goroutines.
type Verifier struct {
	metaKey        []byte
	fileKey        []byte
	filler         byte
	macParam       string
	requireCounter bool
	uniformTiming  bool
}

// NewVerifier returns a Verifier for the SDM meta read key and file read key.
func NewVerifier(metaKey, fileKey []byte, opts ...Option) (*Verifier, error) {
	if err := checkKey(metaKey); err != nil {
		return nil, err
	}
	if err := checkKey(fileKey); err != nil {
		return nil, err
	}

	v := &Verifier{
		metaKey:        append([]byte(nil), metaKey...),
		fileKey:        append([]byte(nil), fileKey...),
		filler:         DefaultFiller,
		macParam:       DefaultMACParameter,
		requireCounter: true,
		uniformTiming:  true,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// VerifySUNMessage verifies one SUN message with default options.
func VerifySUNMessage(metaKey, fileKey, piccData, mac, fileCiphertext []byte) (*Result, error) {
	v, err := NewVerifier(metaKey, fileKey)
	if err != nil {
		return nil, err
	}

	return v.Verify(Message{PICCData: piccData, MAC: mac, FileData: fileCiphertext})
}

// Verify decodes the PICC data, checks the SDMMAC and, in identity-plus-file
// mode, decrypts the file data. It stops at the first failure and returns no
// partial result.
func (v *Verifier) Verify(msg Message) (*Result, error) {
	mode := msg.Mode()
	if len(msg.MAC) != MACSize {
		return nil, ErrInvalidMACLength
	}
	if mode == ModeIdentityPlusFile && len(msg.FileData)%PICCDataSize != 0 {
		return nil, ErrInvalidFileDataLength
	}

	picc, err := DecodePICCData(v.metaKey, msg.PICCData)
	if err != nil {
		if errors.Is(err, ErrUnsupportedUIDLength) && v.uniformTiming {
			v.decoyMAC(msg)
		}

		return nil, err
	}

	if !picc.Flags.UIDMirrored() {
		return nil, ErrMissingUIDMirror
	}
	if !picc.CounterMirrored && (v.requireCounter || mode == ModeIdentityPlusFile) {
		return nil, ErrMissingCounterMirror
	}

	expected, err := truncatedCMAC(v.fileKey, picc.identityPayload(), macTrailer(msg.FileData, v.macParam))
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(expected, msg.MAC) != 1 {
		return nil, ErrCMACMismatch
	}

	res := &Result{
		Mode:            mode,
		UID:             picc.UID,
		Counter:         picc.Counter,
		CounterMirrored: picc.CounterMirrored,
	}
	if mode == ModeIdentityOnly {
		return res, nil
	}

	res.FileData, err = DecryptFileData(v.fileKey, picc.UID, picc.Counter, msg.FileData, v.filler)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// decoyMAC spends the same work as a real MAC check over a zero identity.
func (v *Verifier) decoyMAC(msg Message) {
	var identity [UIDSize + CounterSize]byte
	_, _ = truncatedCMAC(v.fileKey, identity[:], macTrailer(msg.FileData, v.macParam))
}

// MAC computes the SDMMAC this Verifier expects for identityPayload and,
// when non-empty, fileCiphertext. It honours the configured MAC parameter.
func (v *Verifier) MAC(identityPayload, fileCiphertext []byte) ([]byte, error) {
	return truncatedCMAC(v.fileKey, identityPayload, macTrailer(fileCiphertext, v.macParam))
}
