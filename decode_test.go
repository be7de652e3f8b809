package qrng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIntegers(t *testing.T) {
	values, err := decodeArray([]byte("[3,-7,65535]"), 3, parseInt32)
	require.NoError(t, err)
	assert.Equal(t, []int32{3, -7, 65535}, values)

	t.Run("extra tokens ignored", func(t *testing.T) {
		values, err := decodeArray([]byte("[1,2,3,4]"), 2, parseInt16)
		require.NoError(t, err)
		assert.Equal(t, []int16{1, 2}, values)
	})

	t.Run("trailing newline", func(t *testing.T) {
		values, err := decodeArray([]byte("[1, 2]\n"), 2, parseInt64)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, values)
	})

	t.Run("out of range for int16", func(t *testing.T) {
		_, err := decodeArray([]byte("[40000]"), 1, parseInt16)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("fewer tokens than samples", func(t *testing.T) {
		values, err := decodeArray([]byte("[9]"), 4, parseInt32)
		assert.ErrorIs(t, err, ErrTokenCountMismatch)
		assert.Equal(t, []int32{9}, values)
	})

	t.Run("empty list", func(t *testing.T) {
		values, err := decodeArray([]byte("[]"), 1, parseInt32)
		assert.ErrorIs(t, err, ErrTokenCountMismatch)
		assert.Empty(t, values)
	})
}

func TestDecodeFloats(t *testing.T) {
	f64, err := decodeArray([]byte("[0.125,0.9999,1e-3]"), 3, parseFloat64)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.125, 0.9999, 0.001}, f64)

	f32, err := decodeArray([]byte("[0.5,0.75]"), 2, parseFloat32)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.75}, f32)

	_, err = decodeArray([]byte("[0,5]"), 2, parseFloat64)
	assert.NoError(t, err)

	_, err = decodeArray([]byte("[0;5]"), 1, parseFloat64)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecodeHexBytes(t *testing.T) {
	values, err := decodeArray([]byte(`["1a","ff"]`), 2, parseHexByte)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1a, 0xff}, values)

	values, err = decodeArray([]byte(`["00","0F","7e"]`), 3, parseHexByte)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x0f, 0x7e}, values)

	for _, body := range []string{`[1a]`, `["1ff"]`, `["zz"]`, `["]`} {
		_, err := decodeArray([]byte(body), 1, parseHexByte)
		assert.ErrorIs(t, err, ErrMalformedResponse, body)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, body := range []string{"", "[", "]", "1,2,3", "[1,2,3", "1,2]", "<html>"} {
		_, err := decodeArray([]byte(body), 1, parseInt32)
		assert.ErrorIs(t, err, ErrMalformedResponse, "%q", body)
	}
}
