package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/doclinks/internal/storage"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app" toml:"app"`
	Scan   ScanConfig        `yaml:"scan" toml:"scan"`
	Output OutputConfig      `yaml:"output" toml:"output"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Scan.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level" toml:"log_level"`
}

// ScanConfig controls document discovery and link resolution.
type ScanConfig struct {
	Root            string   `yaml:"root" toml:"root"`
	EntryPoint      string   `yaml:"entry_point" toml:"entry_point"`
	Extensions      []string `yaml:"extensions" toml:"extensions"`
	Ignore          []string `yaml:"ignore" toml:"ignore"`
	ExternalSchemes []string `yaml:"external_schemes" toml:"external_schemes"`
	Workers         int      `yaml:"workers" toml:"workers"`
}

// Validate validates the scan configuration.
func (c *ScanConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.Extensions, validation.Each(validation.Required)),
		validation.Field(&c.ExternalSchemes, validation.Each(validation.Required)),
		validation.Field(&c.Workers, validation.Min(0)),
	)
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format  string `yaml:"format" toml:"format"`
	Color   string `yaml:"color" toml:"color"`
	Verbose bool   `yaml:"verbose" toml:"verbose"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Format, validation.In(FormatText, FormatJSON)),
		validation.Field(&c.Color, validation.In(ColorAuto, ColorAlways, ColorNever)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelWarn,
		},
		Scan: ScanConfig{
			Root:       ".",
			Extensions: append([]string(nil), storage.DefaultExtensions...),
			Ignore:     append([]string(nil), storage.DefaultIgnore...),
		},
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
	}
}
