package sdm

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVerifySUNMessageVendorVector checks the NXP AN12196 sample end to end.
func TestVerifySUNMessageVendorVector(t *testing.T) {
	t.Parallel()

	res, err := VerifySUNMessage(
		zeroKey,
		zeroKey,
		mustHex(t, "EF963FF7828658A599F3041510671E88"),
		mustHex(t, "94EED9EE65337086"),
		nil,
	)
	require.NoError(t, err)

	want := &Result{
		Mode:            ModeIdentityOnly,
		UID:             mustHex(t, "04DE5F1EACC040"),
		Counter:         61,
		CounterMirrored: true,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileData []byte
		want     *Result
	}{
		{
			name: "identity only",
			want: &Result{Mode: ModeIdentityOnly, UID: testUID, Counter: 1, CounterMirrored: true},
		},
		{
			name:     "identity plus file",
			fileData: []byte("batch=2024-17"),
			want: &Result{
				Mode:            ModeIdentityPlusFile,
				UID:             testUID,
				Counter:         1,
				CounterMirrored: true,
				FileData:        []byte("batch=2024-17"),
			},
		},
		{
			name:     "multi block file",
			fileData: []byte("0123456789abcdef0123456789abcdefXYZ"),
			want: &Result{
				Mode:            ModeIdentityPlusFile,
				UID:             testUID,
				Counter:         1,
				CounterMirrored: true,
				FileData:        []byte("0123456789abcdef0123456789abcdefXYZ"),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tag := newTestTag(t)
			msg, err := tag.Scan(tc.fileData)
			require.NoError(t, err)

			v, err := NewVerifier(metaKey1, fileKey1)
			require.NoError(t, err)
			res, err := v.Verify(*msg)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, res); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestVerifyTamperRejection mutates every byte of every field of a valid message.
func TestVerifyTamperRejection(t *testing.T) {
	t.Parallel()

	for _, fileData := range [][]byte{nil, []byte("tamper-evident payload")} {
		tag := newTestTag(t)
		msg, err := tag.Scan(fileData)
		require.NoError(t, err)

		v, err := NewVerifier(metaKey1, fileKey1)
		require.NoError(t, err)
		_, err = v.Verify(*msg)
		require.NoError(t, err)

		fields := map[string][]byte{"picc": msg.PICCData, "mac": msg.MAC, "file": msg.FileData}
		for name, field := range fields {
			for i := range field {
				mutated := Message{
					PICCData: append([]byte(nil), msg.PICCData...),
					MAC:      append([]byte(nil), msg.MAC...),
					FileData: append([]byte(nil), msg.FileData...),
				}
				switch name {
				case "picc":
					mutated.PICCData[i] ^= 0x01
				case "mac":
					mutated.MAC[i] ^= 0x01
				case "file":
					mutated.FileData[i] ^= 0x01
				}

				res, err := v.Verify(mutated)
				assert.Error(t, err, "%s byte %d", name, i)
				assert.Nil(t, res, "%s byte %d", name, i)
			}
		}
	}
}

func TestVerifyErrors(t *testing.T) {
	t.Parallel()

	valid := func(t *testing.T, fileData []byte) Message {
		t.Helper()
		msg, err := newTestTag(t).Scan(fileData)
		require.NoError(t, err)

		return *msg
	}

	tests := []struct {
		name    string
		msg     func(t *testing.T) Message
		opts    []Option
		fileKey []byte
		wantErr error
	}{
		{
			name: "short mac",
			msg: func(t *testing.T) Message {
				m := valid(t, nil)
				m.MAC = m.MAC[:7]

				return m
			},
			wantErr: ErrInvalidMACLength,
		},
		{
			name: "short picc data",
			msg: func(t *testing.T) Message {
				m := valid(t, nil)
				m.PICCData = m.PICCData[:8]

				return m
			},
			wantErr: ErrInvalidPICCDataLength,
		},
		{
			name: "unaligned file data",
			msg: func(t *testing.T) Message {
				m := valid(t, []byte("abc"))
				m.FileData = m.FileData[:15]

				return m
			},
			wantErr: ErrInvalidFileDataLength,
		},
		{
			name:    "wrong file key",
			msg:     func(t *testing.T) Message { return valid(t, nil) },
			fileKey: []byte("0000000000000000"),
			wantErr: ErrCMACMismatch,
		},
		{
			name:    "different mac parameter",
			msg:     func(t *testing.T) Message { return valid(t, []byte("abc")) },
			opts:    []Option{WithMACParameter("cmac")},
			wantErr: ErrCMACMismatch,
		},
		{
			name: "uid not mirrored",
			msg: func(t *testing.T) Message {
				tag := newTestTag(t)
				tag.MirrorUID = false
				m, err := tag.Scan(nil)
				require.NoError(t, err)

				return *m
			},
			wantErr: ErrMissingUIDMirror,
		},
		{
			name: "counter not mirrored",
			msg: func(t *testing.T) Message {
				tag := newTestTag(t)
				tag.MirrorCounter = false
				m, err := tag.Scan(nil)
				require.NoError(t, err)

				return *m
			},
			wantErr: ErrMissingCounterMirror,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fileKey := fileKey1
			if tc.fileKey != nil {
				fileKey = tc.fileKey
			}
			v, err := NewVerifier(metaKey1, fileKey, tc.opts...)
			require.NoError(t, err)

			res, err := v.Verify(tc.msg(t))
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tc.wantErr)

			var sdmErr Error
			require.True(t, errors.As(err, &sdmErr))
			assert.NotEmpty(t, sdmErr.Description)
		})
	}
}

func TestVerifyCounterOptional(t *testing.T) {
	t.Parallel()

	tag := newTestTag(t)
	tag.MirrorCounter = false
	msg, err := tag.Scan(nil)
	require.NoError(t, err)

	v, err := NewVerifier(metaKey1, fileKey1, WithCounterRequired(false))
	require.NoError(t, err)
	res, err := v.Verify(*msg)
	require.NoError(t, err)
	assert.Equal(t, testUID, res.UID)
	assert.False(t, res.CounterMirrored)
	assert.Zero(t, res.Counter)
}

func TestVerifyUnsupportedUIDLength(t *testing.T) {
	t.Parallel()

	plain := make([]byte, 16)
	plain[0] = 0xC4
	picc := encryptPICC(t, metaKey1, plain)

	for _, uniform := range []bool{true, false} {
		v, err := NewVerifier(metaKey1, fileKey1, WithUniformTiming(uniform))
		require.NoError(t, err)
		_, err = v.Verify(Message{PICCData: picc, MAC: make([]byte, MACSize)})
		assert.ErrorIs(t, err, ErrUnsupportedUIDLength)
	}
}

func TestVerifyCustomFiller(t *testing.T) {
	t.Parallel()

	tag := newTestTag(t)
	tag.Filler = '*'
	msg, err := tag.Scan([]byte("id=99"))
	require.NoError(t, err)

	v, err := NewVerifier(metaKey1, fileKey1, WithFiller('*'))
	require.NoError(t, err)
	res, err := v.Verify(*msg)
	require.NoError(t, err)
	assert.Equal(t, "id=99", string(res.FileData))
}

func TestNewVerifierInvalidKeys(t *testing.T) {
	t.Parallel()

	_, err := NewVerifier(nil, fileKey1)
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
	_, err = NewVerifier(metaKey1, make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidKeyLength)
}

// TestVerifierConcurrent shares one Verifier between goroutines.
func TestVerifierConcurrent(t *testing.T) {
	t.Parallel()

	tag := newTestTag(t)
	msgs := make([]*Message, 32)
	for i := range msgs {
		m, err := tag.Scan([]byte("concurrent"))
		require.NoError(t, err)
		msgs[i] = m
	}

	v, err := NewVerifier(metaKey1, fileKey1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, len(msgs))
	counters := make([]ReadCounter, len(msgs))
	for i, m := range msgs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := v.Verify(*m)
			errs[i] = err
			if err == nil {
				counters[i] = res.Counter
			}
		}()
	}
	wg.Wait()

	for i := range msgs {
		require.NoError(t, errs[i])
		assert.Equal(t, ReadCounter(i+1), counters[i])
	}
}

func TestVerifierMAC(t *testing.T) {
	t.Parallel()

	v, err := NewVerifier(zeroKey, zeroKey)
	require.NoError(t, err)

	identity := append(mustHex(t, "04DE5F1EACC040"), ReadCounter(61).Bytes()...)
	mac, err := v.MAC(identity, nil)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "94EED9EE65337086"), mac)

	file := make([]byte, 16)
	def, err := v.MAC(identity, file)
	require.NoError(t, err)
	viaFunc, err := ComputeSDMMAC(zeroKey, identity, file)
	require.NoError(t, err)
	assert.Equal(t, viaFunc, def)

	custom, err := NewVerifier(zeroKey, zeroKey, WithMACParameter("cmac"))
	require.NoError(t, err)
	other, err := custom.MAC(identity, file)
	require.NoError(t, err)
	assert.NotEqual(t, def, other)
}

// TestVerifyFileVendorVector uses the NXP AN12196 encrypted file sample,
// which names its MAC parameter "cmac".
func TestVerifyFileVendorVector(t *testing.T) {
	t.Parallel()

	msg := Message{
		PICCData: mustHex(t, "FD91EC264309878BE6345CBE53BADF40"),
		MAC:      mustHex(t, "ECC1E7F6C6C73BF6"),
		FileData: mustHex(t, "CEE9A53E3E463EF1F459635736738962"),
	}

	v, err := NewVerifier(zeroKey, zeroKey, WithMACParameter("cmac"))
	require.NoError(t, err)
	res, err := v.Verify(msg)
	require.NoError(t, err)
	assert.Equal(t, ModeIdentityPlusFile, res.Mode)
	assert.Equal(t, mustHex(t, "04958CAA5C5E80"), res.UID)
	assert.Equal(t, ReadCounter(8), res.Counter)
	// the sample file holds nothing but filler.
	assert.Empty(t, res.FileData)

	_, err = VerifySUNMessage(zeroKey, zeroKey, msg.PICCData, msg.MAC, msg.FileData)
	assert.ErrorIs(t, err, ErrCMACMismatch)

	msg.MAC = mustHex(t, "77E33A41193BCEFA")
	res, err = VerifySUNMessage(zeroKey, zeroKey, msg.PICCData, msg.MAC, msg.FileData)
	require.NoError(t, err)
	assert.Equal(t, ReadCounter(8), res.Counter)
}
