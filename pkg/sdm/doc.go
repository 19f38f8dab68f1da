/*
Package sdm verifies and decodes NTAG 424 DNA Secure Dynamic Messaging (SDM)
payloads, also called SUN messages.

On every read the tag mirrors into its NDEF URL:

  - PICC data: one AES block encrypted under the SDM meta read key, carrying a
    flag byte, the 7-byte UID and the 3-byte little-endian read counter.
  - SDMMAC: an 8-byte truncated AES-CMAC computed under a session key derived
    from the SDM file read key, the UID and the counter.
  - optionally, encrypted file data: a block-aligned AES-CBC ciphertext under a
    second session key, authenticated by the SDMMAC together with the counter.

# PICC Data Layout

	[0]      flags    bit7=UID mirrored, bit6=counter mirrored, bits3-0=UID length
	[1:8]    UID      present when bit7 is set
	[8:11]   counter  little-endian, present when bit6 is set
	[11:16]  random padding

# Session Vectors

	SV2 (MAC)        = 3C C3 00 01 00 80 || UID || CTR_LE, zero padded to 16 bytes
	SV1 (encryption) = C3 3C 00 01 00 80 || UID || CTR_LE, zero padded to 16 bytes

	KSesSDMFileReadMAC = AES-CMAC(fileKey, SV2)
	KSesSDMFileReadENC = AES-CMAC(fileKey, SV1)
	IVe                = AES-ECB(KSesSDMFileReadENC, CTR_LE || 00..00)

# SDMMAC

	identity only:  CMAC(KSesSDMFileReadMAC, empty)
	with file data: CMAC(KSesSDMFileReadMAC, upperHex(encFileData) || "&sdmmac=")

The 16-byte CMAC is shortened to its odd-indexed bytes (1, 3, ..., 15), the
same rule for both modes.

Everything in this package is pure: no I/O, no state kept between calls. Counter
monotonicity across scans is the caller's job.
*/
package sdm
