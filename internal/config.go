package internal

import (
	"log/slog"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/sigil/internal/ingest"
)

// Log formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Ingest     IngestConfig      `yaml:"ingest"`
	Classifier ClassifierConfig  `yaml:"classifier"`
	MCP        MCPConfig         `yaml:"mcp"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Ingest.Validate(); err != nil {
		return err
	}
	return c.MCP.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  slog.Level `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if c.LogFormat == "" {
		c.LogFormat = LogFormatJSON
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.LogFormat, validation.In(LogFormatJSON, LogFormatText)),
	)
}

var extRe = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// IngestConfig controls which files are read and how many at once.
type IngestConfig struct {
	Root       string   `yaml:"root"`
	Extensions []string `yaml:"extensions"`
	MaxBytes   int64    `yaml:"max_bytes"`
	Workers    int      `yaml:"workers"`
}

// Validate validates the ingest configuration.
func (c *IngestConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Extensions, validation.Required, validation.Each(validation.Required, validation.Match(extRe))),
		validation.Field(&c.MaxBytes, validation.Min(int64(0))),
		validation.Field(&c.Workers, validation.Required, validation.Min(1), validation.Max(256)),
	)
}

// Service returns the ingest service configuration.
func (c *IngestConfig) Service() ingest.Config {
	return ingest.Config{
		Root:       c.Root,
		Extensions: c.Extensions,
		MaxBytes:   c.MaxBytes,
		Workers:    c.Workers,
	}
}

// ClassifierConfig points at an optional YAML template catalog that replaces
// the built-in one.
type ClassifierConfig struct {
	CatalogPath string `yaml:"catalog_path"`
}

// MCPConfig holds the identity the MCP server reports.
type MCPConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Validate validates the MCP configuration.
func (c *MCPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Version, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:  slog.LevelInfo,
			LogFormat: LogFormatJSON,
		},
		Ingest: IngestConfig{
			Extensions: append([]string(nil), ingest.DefaultExtensions...),
			MaxBytes:   8 << 20,
			Workers:    4,
		},
		MCP: MCPConfig{
			Name:    "Sigil",
			Version: "1.0.0",
		},
	}
}
