package logic

import (
	"testing"

	"github.com/andrei-cloud/go_sdm/internal/errorcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSV(t *testing.T) {
	t.Parallel()

	require.NoError(t, SetupTestKeyProvider())

	testCases := []struct {
		name             string
		input            string
		expectedResponse string
		expectedError    error
	}{
		{
			name:          "Short Input",
			input:         "0EF96",
			expectedError: errorcodes.Err15,
		},
		{
			name:             "Identity Only",
			input:            "0" + "EF963FF7828658A599F3041510671E88" + "94EED9EE65337086",
			expectedResponse: "SW00" + "04DE5F1EACC040" + "00003D",
		},
		{
			name: "Identity Plus File",
			input: "1" + "FD91EC264309878BE6345CBE53BADF40" + "77E33A41193BCEFA" +
				"0010" + "CEE9A53E3E463EF1F459635736738962",
			expectedResponse: "SW00" + "04958CAA5C5E80" + "000008" + "0000",
		},
		{
			name:          "MAC Mismatch",
			input:         "0" + "EF963FF7828658A599F3041510671E88" + "94EED9EE65337087",
			expectedError: errorcodes.Err01,
		},
		{
			name:          "File MAC Under Other Parameter",
			input:         "1" + "FD91EC264309878BE6345CBE53BADF40" + "ECC1E7F6C6C73BF6" + "0010" + "CEE9A53E3E463EF1F459635736738962",
			expectedError: errorcodes.Err01,
		},
		{
			name:          "Invalid Hex",
			input:         "0" + "ZZ963FF7828658A599F3041510671E88" + "94EED9EE65337086",
			expectedError: errorcodes.Err15,
		},
		{
			name:          "Unaligned File Data",
			input:         "1" + "FD91EC264309878BE6345CBE53BADF40" + "77E33A41193BCEFA" + "0004" + "CEE9A53E",
			expectedError: errorcodes.Err23,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resp, err := ExecuteSV([]byte(tc.input))
			assert.Equal(t, tc.expectedError, err)
			if tc.expectedError == nil {
				assert.Equal(t, tc.expectedResponse, string(resp))
			}
		})
	}
}
