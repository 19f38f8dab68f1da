package logic

import (
	"fmt"

	"github.com/andrei-cloud/go_sdm/internal/errorcodes"
	"github.com/andrei-cloud/go_sdm/pkg/cryptoutils"
)

// kcvDigits is the number of check value characters reported per key.
const kcvDigits = 6

// ExecuteNC processes the NC payload and returns response bytes.
// The payload is the firmware version supplied by the server.
func ExecuteNC(input []byte) ([]byte, error) {
	logInfo("NC: Starting command diagnostics.")

	if len(input) == 0 {
		logError("NC: Firmware version missing")
		return nil, errorcodes.Err15
	}

	kp, err := currentProvider()
	if err != nil {
		logError("NC: SDM keys not loaded")
		return nil, err
	}

	metaKCV, err := cryptoutils.KeyCV(kp.MetaKey, kcvDigits)
	if err != nil {
		return nil, errorcodes.Err10
	}
	fileKCV, err := cryptoutils.KeyCV(kp.FileKey, kcvDigits)
	if err != nil {
		return nil, errorcodes.Err10
	}
	logDebug(fmt.Sprintf("NC: meta key KCV %s, file key KCV %s", metaKCV, fileKCV))

	// Format response: ND00 + meta KCV + file KCV + firmware version
	resp := make([]byte, 0, 4+2*kcvDigits+len(input))
	resp = append(resp, "ND00"...)
	resp = append(resp, metaKCV...)
	resp = append(resp, fileKCV...)
	resp = append(resp, input...)

	return resp, nil
}
