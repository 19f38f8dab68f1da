package sdm

import (
	"crypto/aes"
	"crypto/rand"
	"fmt"
	"io"
)

// Tag emulates the SDM side of an NTAG 424 DNA: every Scan bumps the read
// counter and produces the SUN message the tag would mirror into its URL.
type Tag struct {
	UID           []byte
	MetaKey       []byte
	FileKey       []byte
	Counter       ReadCounter // value of the last scan
	MirrorUID     bool
	MirrorCounter bool
	Filler        byte      // zero means DefaultFiller
	MACParameter  string    // empty means DefaultMACParameter
	Rand          io.Reader // PICC padding source, crypto/rand when nil
}

// NewTag returns a tag mirroring both UID and counter, starting at counter 0.
func NewTag(uid, metaKey, fileKey []byte) (*Tag, error) {
	if len(uid) != UIDSize {
		return nil, fmt.Errorf("UID must be %d bytes, got %d", UIDSize, len(uid))
	}
	if err := checkKey(metaKey); err != nil {
		return nil, err
	}
	if err := checkKey(fileKey); err != nil {
		return nil, err
	}

	return &Tag{
		UID:           append([]byte(nil), uid...),
		MetaKey:       append([]byte(nil), metaKey...),
		FileKey:       append([]byte(nil), fileKey...),
		MirrorUID:     true,
		MirrorCounter: true,
	}, nil
}

// Scan increments the read counter and builds a SUN message. A non-empty
// fileData is padded with filler and mirrored encrypted.
func (t *Tag) Scan(fileData []byte) (*Message, error) {
	if t.Counter >= MaxCounter {
		return nil, ErrCounterOverflow
	}
	if len(fileData) > 0 && !t.MirrorCounter {
		return nil, ErrMissingCounterMirror
	}
	if len(fileData) > 0 && fileData[len(fileData)-1] == t.filler() {
		return nil, ErrFillerTerminatedData
	}
	t.Counter++

	picc, err := t.encryptPICCData()
	if err != nil {
		return nil, err
	}

	msg := &Message{PICCData: picc}
	if len(fileData) > 0 {
		key, iv, err := DeriveFileSession(t.FileKey, t.UID, t.Counter)
		if err != nil {
			return nil, err
		}
		msg.FileData, err = aesCBCEncrypt(key, iv, padFiller(fileData, t.filler()))
		if err != nil {
			return nil, err
		}
	}

	identity := append([]byte(nil), t.UID...)
	if t.MirrorCounter {
		identity = append(identity, t.Counter.Bytes()...)
	}
	msg.MAC, err = truncatedCMAC(t.FileKey, identity, macTrailer(msg.FileData, t.macParameter()))
	if err != nil {
		return nil, err
	}

	return msg, nil
}

// encryptPICCData lays out flags, UID and counter at their fixed offsets and
// fills the rest of the block with random bytes.
func (t *Tag) encryptPICCData() ([]byte, error) {
	plain := make([]byte, aes.BlockSize)
	r := t.Rand
	if r == nil {
		r = rand.Reader
	}
	if _, err := io.ReadFull(r, plain[1:]); err != nil {
		return nil, fmt.Errorf("PICC padding: %w", err)
	}

	plain[0] = byte(NewTagFlags(t.MirrorUID, t.MirrorCounter))
	if t.MirrorUID {
		copy(plain[1:1+UIDSize], t.UID)
	}
	if t.MirrorCounter {
		copy(plain[1+UIDSize:1+UIDSize+CounterSize], t.Counter.Bytes())
	}

	var zeroIV [aes.BlockSize]byte

	return aesCBCEncrypt(t.MetaKey, zeroIV[:], plain)
}

func (t *Tag) filler() byte {
	if t.Filler == 0 {
		return DefaultFiller
	}

	return t.Filler
}

func (t *Tag) macParameter() string {
	if t.MACParameter == "" {
		return DefaultMACParameter
	}

	return t.MACParameter
}
