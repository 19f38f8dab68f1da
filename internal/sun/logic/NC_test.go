package logic

import (
	"testing"

	"github.com/andrei-cloud/go_sdm/internal/errorcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteNC(t *testing.T) {
	t.Parallel()

	require.NoError(t, SetupTestKeyProvider())

	resp, err := ExecuteNC([]byte("0007-E000"))
	require.NoError(t, err)
	assert.Equal(t, "ND00"+"763CBC"+"763CBC"+"0007-E000", string(resp))

	_, err = ExecuteNC(nil)
	assert.Equal(t, errorcodes.Err15, err)
}
