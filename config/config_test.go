package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/PlateFEM/fem"
	"github.com/notargets/PlateFEM/mesh"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[plate]
width     = 1000
height    = 500
thickness = 10
pressure  = 1.5

[material]
young   = 200000
poisson = 0.3

[mesh]
h_elements = 8
v_elements = 4
fixed_rule = all-corners

[server]
addr = 127.0.0.1:8080

[log]
level  = debug
format = JSON
`

func TestDefault(t *testing.T) {
	d := Default()
	require.NoError(t, d.Validate())
	assert.Equal(t, 800., d.Plate.Width)
	assert.Equal(t, 800., d.Plate.Height)
	assert.Equal(t, 3., d.Plate.Thickness)
	assert.Equal(t, 200., d.Plate.Pressure)
	assert.Equal(t, 11., d.Plate.Young)
	assert.Equal(t, 0.34, d.Plate.Poisson)
	assert.Equal(t, 15, d.Plate.HElementCount)
	assert.Equal(t, 15, d.Plate.VElementCount)
	assert.Equal(t, mesh.ThreeCornerRule{}, d.Rule())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, fem.PlateConfig{
		Width:         1000,
		Height:        500,
		Thickness:     10,
		Pressure:      1.5,
		Young:         200000,
		Poisson:       0.3,
		HElementCount: 8,
		VElementCount: 4,
	}, cfg.Plate)
	assert.Equal(t, mesh.AllCornersRule{}, cfg.Rule())
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	// unset keys keep their defaults
	assert.Equal(t, 1024, cfg.Server.ReadBufferSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParseEmptyIsDefault(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"zero elements", "[mesh]\nh_elements = 0\n"},
		{"poisson", "[material]\npoisson = 0.7\n"},
		{"rule", "[mesh]\nfixed_rule = two-corners\n"},
		{"level", "[log]\nlevel = loud\n"},
		{"format", "[log]\nformat = xml\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.source))
			assert.ErrorIs(t, err, fem.ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platefem.ini")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Plate.HElementCount)

	cfg, err = Load(filepath.Join(dir, "missing.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLogApply(t *testing.T) {
	logger := log.New()
	require.NoError(t, Log{Level: "debug", Format: "json"}.Apply(logger))
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, logger.Formatter)

	require.NoError(t, Log{Level: "warn", Format: "text"}.Apply(logger))
	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, logger.Formatter)

	assert.Error(t, Log{Level: "nope"}.Apply(logger))
}
