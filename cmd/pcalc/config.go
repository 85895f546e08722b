package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of pcalc.
type Config struct {
	Prompt  string             `toml:"prompt" yaml:"prompt"`
	Trace   string             `toml:"trace" yaml:"trace"`
	Lexer   string             `toml:"lexer" yaml:"lexer"`
	Timeout Duration           `toml:"timeout" yaml:"timeout"`
	Tree    bool               `toml:"tree" yaml:"tree"`
	Vars    map[string]float64 `toml:"vars" yaml:"vars"`
}

// Duration wraps time.Duration for config parsing
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML decodes durations like "1.5s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// LoadConfig loads settings from a TOML or YAML file, depending on the
// file's extension. An empty path yields the default settings.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Prompt == "" {
		c.Prompt = "pcalc> "
	}
	if c.Trace == "" {
		c.Trace = "Error"
	}
	if c.Lexer == "" {
		c.Lexer = "combinator"
	}
	if c.Timeout.Duration == 0 {
		c.Timeout.Duration = 5 * time.Second
	}
}
