package sun

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andrei-cloud/go_sdm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zeroKeyHex = "00000000000000000000000000000000"

// runSun initializes config with zero keys and runs the sun command with args.
func runSun(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("GOSDM_KEYS_META", zeroKeyHex)
	t.Setenv("GOSDM_KEYS_FILE", zeroKeyHex)
	require.NoError(t, config.Initialize())

	var out bytes.Buffer
	cmd := NewSunCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestVerifyCommand(t *testing.T) {
	out, err := runSun(t, "verify",
		"--picc", "EF963FF7828658A599F3041510671E88",
		"--mac", "94EED9EE65337086")
	require.NoError(t, err)
	assert.Contains(t, out, "UID:      04DE5F1EACC040")
	assert.Contains(t, out, "Counter:  61")
	assert.Contains(t, out, "SDMMAC:   valid")
}

func TestVerifyCommandRejectsTamperedMAC(t *testing.T) {
	_, err := runSun(t, "verify",
		"--picc", "EF963FF7828658A599F3041510671E88",
		"--mac", "94EED9EE65337087")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CmacMismatch")
}

func TestVerifyCommandFile(t *testing.T) {
	out, err := runSun(t, "verify",
		"--picc", "FD91EC264309878BE6345CBE53BADF40",
		"--mac", "77E33A41193BCEFA",
		"--file", "CEE9A53E3E463EF1F459635736738962")
	require.NoError(t, err)
	assert.Contains(t, out, "Mode:     identity+file")
	assert.Contains(t, out, "Counter:  8")
}

func TestVerifyCommandInvalidInput(t *testing.T) {
	_, err := runSun(t, "verify", "--picc", "EF96", "--mac", "94EED9EE65337086")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--picc must be 16 bytes")
}

func TestMACCommand(t *testing.T) {
	out, err := runSun(t, "mac", "--uid", "04DE5F1EACC040", "--counter", "61")
	require.NoError(t, err)
	assert.Equal(t, "SDMMAC:   94EED9EE65337086\n", out)
}

func TestEmulateCommand(t *testing.T) {
	out, err := runSun(t, "emulate",
		"--uid", "04112233445566",
		"--counter", "5",
		"--data", "serial=42",
		"--url", "https://example.com/tap",
		"--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Counter:  6")
	assert.Contains(t, out, "ENC:      ")
	assert.Contains(t, out, "URL:      https://example.com/tap?picc_data=")
	assert.Contains(t, out, "&sdmmac=")
	assert.Contains(t, out, "Verify:   OK")
}

func TestEmulateCommandCounterOverflow(t *testing.T) {
	_, err := runSun(t, "emulate", "--uid", "04112233445566", "--counter", "16777215")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CounterOverflow")
}

func TestEmulateCommandFillerTerminatedData(t *testing.T) {
	_, err := runSun(t, "emulate", "--uid", "04112233445566", "--data", "box", "--verify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FillerTerminatedData")

	t.Setenv("GOSDM_SDM_FILLER", "#")
	out, err := runSun(t, "emulate", "--uid", "04112233445566", "--data", "box", "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "ENC:      ")
	assert.Contains(t, out, "Verify:   OK")
}

func TestMissingKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, config.Initialize())

	cmd := NewSunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"mac", "--uid", "04DE5F1EACC040"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "SDM keys not set"))
}
