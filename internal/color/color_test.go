package color

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBA(t *testing.T) {
	tcs := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF0000", color.RGBA{R: 255, A: 255}},
		{"green", color.RGBA{G: 128, A: 255}},
		{"blue", color.RGBA{B: 255, A: 255}},
		{"black", color.RGBA{A: 255}},
	}
	for _, tc := range tcs {
		got, err := RGBA(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := RGBA("nope")
	assert.Error(t, err)
}

func TestHex(t *testing.T) {
	h, err := Hex("blue")
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", h)

	h, err = Hex("#FF0000")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", h)
}

func TestDarken(t *testing.T) {
	d, err := Darken("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, "#cc0000", d)

	_, err = Darken("nope")
	assert.Error(t, err)
}
