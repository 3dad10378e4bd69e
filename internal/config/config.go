// Package config handles configuration loading and conversion defaults.
package config

import (
	"fmt"
	"os"

	"github.com/woozymasta/gjs/internal/geo"

	"gopkg.in/yaml.v3"
)

// Input formats understood by the readers.
const (
	FormatYAML = "yaml"
	FormatWKT  = "wkt"
)

// Config represents the root configuration file structure.
type Config struct {
	Server    Server `yaml:"server,omitempty"`
	Format    string `yaml:"format,omitempty"`
	Precision *int   `yaml:"precision,omitempty"` // fractional digits, negative for shortest
	Minify    bool   `yaml:"minify,omitempty"`
}

// Server holds the HTTP conversion service settings.
type Server struct {
	Addr        string `yaml:"addr,omitempty"`
	Port        int    `yaml:"port,omitempty"`
	MaxBodySize int64  `yaml:"max_body_size,omitempty"` // bytes
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	precision := geo.DefaultPrecision
	return &Config{
		Format:    FormatYAML,
		Precision: &precision,
		Server: Server{
			Addr:        "0.0.0.0",
			Port:        8080,
			MaxBodySize: 8 << 20,
		},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Unset fields keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that yaml cannot constrain.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatYAML, FormatWKT:
	default:
		return fmt.Errorf("unknown input format %q", c.Format)
	}
	if c.Precision != nil && *c.Precision > geo.MaxPrecision {
		return fmt.Errorf("precision %d exceeds %d", *c.Precision, geo.MaxPrecision)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.MaxBodySize <= 0 {
		return fmt.Errorf("max_body_size must be > 0")
	}
	return nil
}

// EncodeOptions returns the serializer options implied by the configuration.
func (c *Config) EncodeOptions() []geo.EncodeOption {
	if c.Precision == nil {
		return nil
	}
	return []geo.EncodeOption{geo.WithPrecision(*c.Precision)}
}
