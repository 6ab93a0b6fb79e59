package assets

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"sheets/fireball.png", "sheets/fireball.png"},
		{"assets/sheets/fireball.png", "sheets/fireball.png"},
		{"/home/me/brawler/assets/sounds/hit.wav", "sounds/hit.wav"},
		{"/tmp/other.png", "other.png"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, cleanAssetPath(c.in))
		})
	}
}

func TestLoadFileEmbedded(t *testing.T) {
	b, err := LoadFile("sheets/fireball.png")
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(b[:4]))

	b, err = LoadFile("assets/sounds/hit.wav")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(b[:4]))

	_, err = LoadFile("sheets/missing.png")
	assert.Error(t, err)
}

func TestShade(t *testing.T) {
	base := color.NRGBA{R: 200, G: 100, B: 50, A: 255}

	first := shade(base, 0, 5)
	last := shade(base, 4, 5)
	assert.Equal(t, color.NRGBA{R: 120, G: 60, B: 30, A: 255}, first)
	assert.Equal(t, base, last)

	prev := -1
	for i := range 5 {
		c := shade(base, i, 5)
		assert.Greater(t, int(c.R), prev)
		prev = int(c.R)
	}

	assert.Equal(t, base, shade(base, 0, 1))
}

func TestBuildFrameTableNilCatalog(t *testing.T) {
	_, err := BuildFrameTable(nil)
	assert.Error(t, err)
}
