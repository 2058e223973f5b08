package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leterax/go-universe/pkg/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestDecodeOverridesDefaults(t *testing.T) {
	in := `
[window]
width = 1920
title = "Search"

[navigation.flight]
lerp_factor = 0.1
max_ticks = 600

[navigation.reset]
position = [0.0, 10.0, 50.0]
`
	cfg, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, "Search", cfg.Window.Title)

	assert.Equal(t, 0.1, cfg.Navigation.Flight.LerpFactor)
	assert.Equal(t, 600, cfg.Navigation.Flight.MaxTicks)
	assert.Equal(t, nav.DefaultLateralOffset, cfg.Navigation.Flight.LateralOffset)
	assert.Equal(t, [3]float64{0, 10, 50}, cfg.Navigation.Reset.Position)
	assert.Equal(t, nav.DefaultRotateSensitivity, cfg.Navigation.Input.RotateSensitivity)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[window]\nfullscreen = true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fullscreen")
}

func TestDecodeRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"zero width", "[window]\nwidth = 0\n"},
		{"fov too wide", "[window]\nfov = 180.0\n"},
		{"lerp factor above one", "[navigation.flight]\nlerp_factor = 2.0\n"},
		{"negative alignment weight", "[navigation.seek]\nalignment_weight = -1.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Decode(strings.NewReader("[navigation.flight]\nlerp_factor = 2.0\n"))
	assert.ErrorIs(t, err, nav.ErrInvalidConfig)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nvsync = false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Window.VSync)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
