package sdm

import "crypto/aes"

// PICCDataSize is the length of the encrypted PICC data block.
const PICCDataSize = aes.BlockSize

// PICCData is the decoded identity block of a SUN message.
type PICCData struct {
	Flags           TagFlags
	UID             []byte // nil when the UID is not mirrored
	Counter         ReadCounter
	CounterMirrored bool
}

// DecodePICCData decrypts the PICC data block under the SDM meta read key and
// parses its flag byte. Whether a missing mirror is fatal is left to the caller.
func DecodePICCData(metaKey, ciphertext []byte) (*PICCData, error) {
	if err := checkKey(metaKey); err != nil {
		return nil, err
	}
	if len(ciphertext) != PICCDataSize {
		return nil, ErrInvalidPICCDataLength
	}

	var zeroIV [aes.BlockSize]byte
	plain, err := aesCBCDecrypt(metaKey, zeroIV[:], ciphertext)
	if err != nil {
		return nil, err
	}

	flags := TagFlags(plain[0])
	uidLen := flags.UIDLength()
	if uidLen != UIDSize {
		return nil, ErrUnsupportedUIDLength
	}

	p := &PICCData{Flags: flags}
	if flags.UIDMirrored() {
		p.UID = append([]byte(nil), plain[1:1+uidLen]...)
	}
	if flags.CounterMirrored() {
		// The counter position is fixed by the announced UID length.
		off := 1 + uidLen
		p.Counter, err = DecodeCounter(plain[off : off+CounterSize])
		if err != nil {
			return nil, err
		}
		p.CounterMirrored = true
	}

	return p, nil
}

// identityPayload returns UID || counter_LE, or the UID alone when the counter is not mirrored.
func (p *PICCData) identityPayload() []byte {
	out := append([]byte(nil), p.UID...)
	if p.CounterMirrored {
		out = append(out, p.Counter.Bytes()...)
	}

	return out
}
