package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPalette_FillsTints(t *testing.T) {
	for _, name := range ThemeNames() {
		p, ok := GetPalette(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, p.Night, name)
		assert.NotEmpty(t, p.Work, name)
	}

	_, ok := GetPalette("nope")
	assert.False(t, ok)
}

func TestThemeNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"catppuccin", "gruvbox", "tokyo-night"}, ThemeNames())
}

func TestBlend(t *testing.T) {
	assert.Equal(t, "#000000", string(blend("#000000", "#ffffff", 0)))
	assert.Equal(t, "#ffffff", string(blend("#000000", "#ffffff", 1)))
	assert.Equal(t, "nope", string(blend("nope", "#ffffff", 0.5)))
}

func TestSetTheme_GlamourUsesPalette(t *testing.T) {
	p, _ := GetPalette("gruvbox")
	SetTheme(p)
	t.Cleanup(func() {
		def, _ := GetPalette(DefaultTheme)
		SetTheme(def)
	})

	cfg := GlamourStyle()
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, "#ebdbb2", *cfg.Document.Color)
}
