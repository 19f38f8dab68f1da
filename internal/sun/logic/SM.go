package logic

import (
	"crypto/aes"

	"github.com/andrei-cloud/go_sdm/internal/errorcodes"
	"github.com/andrei-cloud/go_sdm/internal/message"
	"github.com/andrei-cloud/go_sdm/pkg/cryptoutils"
	"github.com/andrei-cloud/go_sdm/pkg/sdm"
)

// ExecuteSM processes the SM payload and returns the SDMMAC a tag with the
// loaded file key would emit for the given UID and read counter.
// Format: Mode(1) + UID(14H) + Counter(6H, big-endian) [+ FileLength(4H) + FileData].
// Mode 2 carries the UID alone, for tags without read counter mirroring.
func ExecuteSM(input []byte) ([]byte, error) {
	logInfo("SM: Starting SDMMAC generation.")

	msg, err := message.NewSM(input)
	if err != nil {
		logError("SM: Malformed command payload")
		return nil, err
	}

	kp, err := currentProvider()
	if err != nil {
		logError("SM: SDM keys not loaded")
		return nil, err
	}

	uid, err := cryptoutils.B2Raw(msg.Get("UID"))
	if err != nil {
		return nil, errorcodes.Err15
	}
	identity := uid
	if msg.Get("Counter") != nil {
		ctrBE, err := cryptoutils.B2Raw(msg.Get("Counter"))
		if err != nil {
			return nil, errorcodes.Err15
		}
		counter := sdm.ReadCounter(uint32(ctrBE[0])<<16 | uint32(ctrBE[1])<<8 | uint32(ctrBE[2]))
		identity = append(identity, counter.Bytes()...)
	}

	var file []byte
	if message.IsFileMode(msg) {
		if file, err = cryptoutils.B2Raw(msg.Get("File Data")); err != nil {
			return nil, errorcodes.Err15
		}
		if len(file)%aes.BlockSize != 0 {
			return nil, errorcodes.Err23
		}
	}
	logDebug(msg.Trace())

	mac, err := kp.Verifier.MAC(identity, file)
	if err != nil {
		return nil, errorcodes.FromSDM(err)
	}

	resp := make([]byte, 0, 4+2*sdm.MACSize)
	resp = append(resp, "SN00"...)
	resp = append(resp, cryptoutils.Raw2B(mac)...)

	return resp, nil
}
