package qrng

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	table := defaultDescriptors()
	table.setAddress("qrng.example.org")

	withInts := func(d Descriptor, min, max int64, samples int) Descriptor {
		d.MinInt, d.MaxInt, d.Samples = min, max, samples
		return d
	}
	withFloats := func(d Descriptor, min, max float64, samples int) Descriptor {
		d.MinFloat, d.MaxFloat, d.Samples = min, max, samples
		return d
	}
	withSamples := func(d Descriptor, samples int) Descriptor {
		d.Samples = samples
		return d
	}

	tests := []struct {
		name string
		desc Descriptor
		want string
	}{
		{"bytes", withSamples(table[KindBytes], 16), "https://qrng.example.org/api/2.0/hexbytes?quantity=16&dataLength=1"},
		{"int16", withInts(table[KindInt16], -5, 5, 3), "https://qrng.example.org/api/2.0/short?min=-5&max=5&quantity=3"},
		{"int32", withInts(table[KindInt32], 0, 100, 5), "https://qrng.example.org/api/2.0/int?min=0&max=100&quantity=5"},
		{"int64", withInts(table[KindInt64], 0, 1, 1), "https://qrng.example.org/api/2.0/int?min=0&max=1&quantity=1"},
		{"float64", withFloats(table[KindFloat64], 0, 1, 10), "https://qrng.example.org/api/2.0/double?min=0.000000&max=1.000000&quantity=10"},
		{"float32", withFloats(table[KindFloat32], -1.5, 2.25, 2), "https://qrng.example.org/api/2.0/double?min=-1.500000&max=2.250000&quantity=2"},
		{"stream", withSamples(table[KindStream], 4096), "https://qrng.example.org/api/2.0/streambytes?size=4096"},
		{"firmware info", table[KindFirmwareInfo], "https://qrng.example.org/api/2.0/firmwareinfo"},
		{"system info", table[KindSystemInfo], "https://qrng.example.org/api/2.0/systeminfo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildURLDefaults(t *testing.T) {
	table := defaultDescriptors()
	table.setAddress("10.17.2.72")

	got, err := BuildURL(table[KindInt32])
	require.NoError(t, err)
	assert.Equal(t, "https://10.17.2.72/api/2.0/int?min=0&max=1&quantity=1", got)
}

func TestBuildURLErrors(t *testing.T) {
	t.Run("too long", func(t *testing.T) {
		d := defaultDescriptors()[KindInt32]
		d.Address = strings.Repeat("a", MaxURLLength)
		_, err := BuildURL(d)
		assert.ErrorIs(t, err, ErrURLTooLong)
	})

	t.Run("no address", func(t *testing.T) {
		_, err := BuildURL(defaultDescriptors()[KindBytes])
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := BuildURL(Descriptor{Kind: numRequestKinds, Address: "qrng.example.org"})
		assert.Error(t, err)
	})
}

func TestRequestKindString(t *testing.T) {
	assert.Equal(t, "int16", KindInt16.String())
	assert.Equal(t, "systeminfo", KindSystemInfo.String())
	assert.Equal(t, "unknown", RequestKind(99).String())
	assert.True(t, KindFloat32.buffered())
	assert.False(t, KindStream.buffered())
}
