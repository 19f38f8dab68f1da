package sdm

import "crypto/aes"

// DefaultFiller is the placeholder byte a tag template carries after the real file data.
const DefaultFiller = 'x'

// DeriveFileSession derives KSesSDMFileReadENC and the IV for encrypted file data.
func DeriveFileSession(fileKey, uid []byte, counter ReadCounter) (key, iv []byte, err error) {
	if err := checkKey(fileKey); err != nil {
		return nil, nil, err
	}

	sv := append(Header(PurposeEncryption), uid...)
	sv = append(sv, counter.Bytes()...)

	key, err = aesCMAC(fileKey, zeroPad(sv))
	if err != nil {
		return nil, nil, err
	}

	iv, err = aesECBEncrypt(key, zeroPad(counter.Bytes()))
	if err != nil {
		return nil, nil, err
	}

	return key, iv, nil
}

// DecryptFileData decrypts mirrored file data and strips trailing filler.
func DecryptFileData(fileKey, uid []byte, counter ReadCounter, ciphertext []byte, filler byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrInvalidFileDataLength
	}

	key, iv, err := DeriveFileSession(fileKey, uid, counter)
	if err != nil {
		return nil, err
	}

	plain, err := aesCBCDecrypt(key, iv, ciphertext)
	if err != nil {
		return nil, err
	}

	return StripFiller(plain, filler), nil
}

// StripFiller removes the run of filler bytes that ends the final 16-byte
// block. Filler inside earlier blocks, or followed by any other byte, is data.
//
// The ciphertext does not carry the payload length, so a payload whose last
// byte equals the filler cannot be recovered intact: its trailing filler bytes
// are stripped with the padding. Tag.Scan refuses such payloads.
func StripFiller(plain []byte, filler byte) []byte {
	lastBlock := len(plain) - aes.BlockSize
	if lastBlock < 0 {
		lastBlock = 0
	}

	end := len(plain)
	for end > lastBlock && plain[end-1] == filler {
		end--
	}

	return plain[:end]
}

// padFiller extends data with filler up to the next block boundary.
func padFiller(data []byte, filler byte) []byte {
	padLen := (aes.BlockSize - len(data)%aes.BlockSize) % aes.BlockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = filler
	}

	return out
}
