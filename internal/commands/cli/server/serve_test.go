package server

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/andrei-cloud/go_sdm/internal/config"
	"github.com/andrei-cloud/go_sdm/internal/sun/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("GOSDM_KEYS_META", "00000000000000000000000000000000")
	t.Setenv("GOSDM_KEYS_FILE", "00000000000000000000000000000000")

	reload := make(chan os.Signal, 1)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		watchReload(reload, done)
		close(exited)
	}()

	reload <- syscall.SIGHUP
	require.Eventually(t, func() bool {
		resp, err := logic.ExecuteNC([]byte("0001-S424"))
		return err == nil && string(resp) == "ND00763CBC763CBC0001-S424"
	}, 2*time.Second, 10*time.Millisecond)

	close(done)
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("reload watcher did not exit after done was closed")
	}
}

func TestLoadKeysMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, config.Initialize())

	err := loadKeys(config.Get())
	assert.ErrorContains(t, err, "keys.meta and keys.file must be configured")
}
