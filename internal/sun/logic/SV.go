package logic

import (
	"fmt"

	"github.com/andrei-cloud/go_sdm/internal/errorcodes"
	"github.com/andrei-cloud/go_sdm/internal/message"
	"github.com/andrei-cloud/go_sdm/pkg/cryptoutils"
	"github.com/andrei-cloud/go_sdm/pkg/sdm"
)

// ExecuteSV processes the SV payload and returns response bytes.
// SV verifies a SUN message and returns the tag identity and, in mode 1, the
// decrypted file data.
// Format: Mode(1) + PICCData(32H) + SDMMAC(16H) [+ FileLength(4H) + FileData].
func ExecuteSV(input []byte) ([]byte, error) {
	logInfo("SV: Starting SUN message verification.")

	msg, err := message.NewSV(input)
	if err != nil {
		logError("SV: Malformed command payload")
		return nil, err
	}

	kp, err := currentProvider()
	if err != nil {
		logError("SV: SDM keys not loaded")
		return nil, err
	}

	picc, err := cryptoutils.B2Raw(msg.Get("PICC Data"))
	if err != nil {
		return nil, errorcodes.Err15
	}
	mac, err := cryptoutils.B2Raw(msg.Get("SDMMAC"))
	if err != nil {
		return nil, errorcodes.Err15
	}

	var file []byte
	if message.IsFileMode(msg) {
		if file, err = cryptoutils.B2Raw(msg.Get("File Data")); err != nil {
			return nil, errorcodes.Err15
		}
	}
	logDebug(msg.Trace())

	res, err := kp.Verifier.Verify(sdm.Message{PICCData: picc, MAC: mac, FileData: file})
	if err != nil {
		return nil, errorcodes.FromSDM(err)
	}
	logInfo(fmt.Sprintf("SV: Verified SUN message, mode %s.", res.Mode))

	resp := make([]byte, 0, 4+2*sdm.UIDSize+2*sdm.CounterSize+4+2*len(res.FileData))
	resp = append(resp, "SW00"...)
	resp = append(resp, cryptoutils.Raw2B(res.UID)...)
	resp = append(resp, cryptoutils.Raw2B(res.Counter.BigEndianBytes())...)

	if res.Mode == sdm.ModeIdentityPlusFile {
		length, err := cryptoutils.FormatLength(len(res.FileData), 4)
		if err != nil {
			return nil, errorcodes.Err80
		}
		resp = append(resp, length...)
		resp = append(resp, cryptoutils.Raw2B(res.FileData)...)
	}

	return resp, nil
}
