package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "jettrack.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, LineStyle{Policy: WidthFixed, FixedWidth: DefaultFixedWidth}, cfg.LineStyle())
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
input = "log.csv.zst"
cleaned_output = "clean.csv"

[log]
level = "debug"

[emissions]
kg_per_km = 3.0

[routes]
width_policy = "scaled"

[[typo]]
wrong = "Bostn"
right = "Boston"

[export]
geojson = "routes.geojson"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "log.csv.zst", cfg.Input)
	assert.Equal(t, "clean.csv", cfg.CleanedOutput)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.InDelta(t, 3.0, cfg.Emissions.KgPerKm, 1e-9)
	assert.Equal(t, DefaultReferenceName, cfg.Emissions.ReferenceName)
	assert.Equal(t, WidthScaled, cfg.LineStyle().Policy)
	assert.Equal(t, []Typo{{Wrong: "Bostn", Right: "Boston"}}, cfg.Typos)
	assert.Equal(t, "routes.geojson", cfg.Export.GeoJSON)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "inptu = \"typo.csv\"\n")

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, errUndecodedKeys)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		target error
	}{
		{"empty input", func(cfg *Config) { cfg.Input = "" }, errInvalidSetting},
		{"unknown policy", func(cfg *Config) { cfg.Routes.WidthPolicy = "thick" }, errUnknownWidthPolicy},
		{"zero width", func(cfg *Config) { cfg.Routes.FixedWidth = 0 }, errInvalidSetting},
		{"no reference", func(cfg *Config) { cfg.Emissions.ReferenceTonnes = 0 }, errInvalidSetting},
		{"cyclic typo", func(cfg *Config) {
			cfg.Typos = []Typo{{Wrong: "Texas", Right: "Calfornia"}}
		}, errTypoNotIdempotent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.target)
		})
	}
}
