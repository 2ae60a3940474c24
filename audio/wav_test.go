package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVRoundTrip(t *testing.T) {
	in := []float64{0, 0.5, -0.5, 0.25, -0.25, 1, -1}

	encoded := EncodeWAV(in, 16000)
	require.Greater(t, len(encoded), 44, "header plus data")
	assert.Equal(t, "RIFF", string(encoded[0:4]))
	assert.Equal(t, "WAVE", string(encoded[8:12]))

	out, rate, err := DecodeWAV(encoded)
	require.NoError(t, err)
	assert.Equal(t, 16000, rate)
	require.Len(t, out, len(in))
	for i := range in {
		// 16-bit quantization loses at most one step.
		assert.InDelta(t, in[i], out[i], 1.0/32767+1e-9, "sample %d", i)
	}
}

func TestEncodeWAVClampsOutOfRange(t *testing.T) {
	encoded := EncodeWAV([]float64{2.0, -2.0}, 8000)

	out, _, err := DecodeWAV(encoded)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 1.0, out[0], 1.0/32767+1e-9)
	assert.InDelta(t, -1.0, out[1], 1.0/32767+1e-9)
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("too short"),
		[]byte("RIFFxxxxJUNKdata"),
	}
	for _, data := range cases {
		_, _, err := DecodeWAV(data)
		assert.Error(t, err)
	}
}

func TestDecodeWAVTruncatedData(t *testing.T) {
	encoded := EncodeWAV(make([]float64, 100), 16000)

	// A recorder streaming to stdout can be cut mid-chunk; the decoder
	// uses what actually arrived.
	out, rate, err := DecodeWAV(encoded[:len(encoded)-50])
	require.NoError(t, err)
	assert.Equal(t, 16000, rate)
	assert.Equal(t, 75, len(out))
}

func TestWAVEmptyInput(t *testing.T) {
	encoded := EncodeWAV(nil, 16000)

	out, rate, err := DecodeWAV(encoded)
	require.NoError(t, err)
	assert.Equal(t, 16000, rate)
	assert.Empty(t, out)
}
