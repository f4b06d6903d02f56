package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, *DefaultTheme(), cfg.Theme)
	assert.Equal(t, []string{"http://localhost:8080", "http://localhost:5173"}, cfg.Origins())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("THEME_POINT_DIAMETER", "20")
	t.Setenv("THEME_SELECTED_COLOR", "#00ff00")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 20.0, cfg.Theme.PointDiameter)
	assert.Equal(t, "#00ff00", cfg.Theme.SelectedColor)
	assert.Equal(t, "blue", cfg.Theme.QuadColor)
}

func TestLoadRejectsBadTheme(t *testing.T) {
	t.Setenv("THEME_QUAD_COLOR", "not-a-color")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quad color")
}

func TestValidate(t *testing.T) {
	th := DefaultTheme()
	th.PointDiameter = 0
	assert.Error(t, th.Validate())

	th = DefaultTheme()
	th.Font = " "
	assert.Error(t, th.Validate())

	assert.NoError(t, DefaultTheme().Validate())
}

func TestLoadDerivesSelectedColor(t *testing.T) {
	t.Setenv("THEME_SELECTED_COLOR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "#cc0000", cfg.Theme.SelectedColor)
}
