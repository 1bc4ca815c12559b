package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultKgPerKm is the CO2 estimate for a private jet in kilograms per kilometer.
	DefaultKgPerKm = 2.5
	// DefaultReferenceTonnes is the yearly CO2 output of the comparison town.
	DefaultReferenceTonnes = 5000.0
	DefaultReferenceName   = "Pfaffenhofen a.d.Ilm"
	DefaultFixedWidth      = 3.0
)

var (
	errUndecodedKeys  = errors.New("unknown configuration keys")
	errInvalidSetting = errors.New("invalid setting")
)

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"` // log file used while the TUI owns the terminal
}

type EmissionConfig struct {
	KgPerKm         float64 `toml:"kg_per_km"`
	ReferenceName   string  `toml:"reference_name"`
	ReferenceTonnes float64 `toml:"reference_tonnes"`
}

type RouteConfig struct {
	WidthPolicy string  `toml:"width_policy"`
	FixedWidth  float64 `toml:"fixed_width"`
}

type ExportConfig struct {
	GeoJSON string `toml:"geojson"`
	PDF     string `toml:"pdf"`
}

// Config holds every setting of jettrack. Flags override values read from the file.
type Config struct {
	Input         string         `toml:"input"`
	CleanedOutput string         `toml:"cleaned_output"`
	AirportsCSV   string         `toml:"airports_csv"`
	Log           LogConfig      `toml:"log"`
	Emissions     EmissionConfig `toml:"emissions"`
	Routes        RouteConfig    `toml:"routes"`
	Typos         []Typo         `toml:"typo"`
	Export        ExportConfig   `toml:"export"`
}

func DefaultConfig() *Config {
	return &Config{
		Input:         "flights.csv",
		CleanedOutput: "",
		AirportsCSV:   "",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			File:   "jettrack.log",
		},
		Emissions: EmissionConfig{
			KgPerKm:         DefaultKgPerKm,
			ReferenceName:   DefaultReferenceName,
			ReferenceTonnes: DefaultReferenceTonnes,
		},
		Routes: RouteConfig{
			WidthPolicy: string(WidthFixed),
			FixedWidth:  DefaultFixedWidth,
		},
		Typos:  nil,
		Export: ExportConfig{GeoJSON: "", PDF: ""},
	}
}

// LoadConfig reads a TOML file on top of the defaults. An empty path returns the defaults.
func LoadConfig(filePath string) (*Config, error) {
	cfg := DefaultConfig()
	if filePath == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: failed to decode %s: %w", filePath, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}

		return nil, fmt.Errorf("LoadConfig: %w: %s", errUndecodedKeys, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// LineStyle returns the route width policy of the configuration.
func (cfg *Config) LineStyle() LineStyle {
	return LineStyle{Policy: WidthPolicy(cfg.Routes.WidthPolicy), FixedWidth: cfg.Routes.FixedWidth}
}

func (cfg *Config) Validate() error {
	if cfg.Input == "" {
		return fmt.Errorf("Config.Validate: %w: input path is empty", errInvalidSetting)
	}

	if err := cfg.LineStyle().Validate(); err != nil {
		return fmt.Errorf("Config.Validate: %w", err)
	}

	if cfg.Routes.FixedWidth <= 0 {
		return fmt.Errorf("Config.Validate: %w: fixed_width must be positive", errInvalidSetting)
	}

	if cfg.Emissions.KgPerKm < 0 || cfg.Emissions.ReferenceTonnes <= 0 {
		return fmt.Errorf("Config.Validate: %w: emission factors", errInvalidSetting)
	}

	if err := ValidateTypos(cfg.Typos); err != nil {
		return fmt.Errorf("Config.Validate: %w", err)
	}

	return nil
}
