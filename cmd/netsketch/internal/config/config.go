package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file netsketch looks for.
const FileName = "netsketch.yaml"

// Config represents the netsketch.yaml configuration
type Config struct {
	// Directory exported diagrams are written to
	ExportDir string `yaml:"exportDir,omitempty"`

	// Canvas configuration
	Canvas *CanvasConfig `yaml:"canvas,omitempty"`

	// Preview server configuration
	Serve *ServeConfig `yaml:"serve,omitempty"`
}

// CanvasConfig contains canvas rendering configuration
type CanvasConfig struct {
	// Spacing of the background grid dots, in cells
	GridStep int `yaml:"gridStep,omitempty"`

	// Whether to draw the background grid at all
	ShowGrid *bool `yaml:"showGrid,omitempty"`

	// Accent color for the selected device (hex)
	AccentColor string `yaml:"accentColor,omitempty"`
}

// ServeConfig contains preview server configuration
type ServeConfig struct {
	// Server host
	Host string `yaml:"host,omitempty"`

	// Server port
	Port int `yaml:"port,omitempty"`
}

// Load loads configuration from netsketch.yaml in the given directory.
// A missing file is not an error; defaults are returned.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, FileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	applyDefaults(&config)

	return &config, nil
}

// Save saves configuration to netsketch.yaml in the given directory.
func Save(config *Config, dir string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0644)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	showGrid := true
	return &Config{
		ExportDir: ".",
		Canvas: &CanvasConfig{
			GridStep:    4,
			ShowGrid:    &showGrid,
			AccentColor: "#3b82f6",
		},
		Serve: &ServeConfig{
			Host: "localhost",
			Port: 8080,
		},
	}
}

// applyDefaults applies default values to missing configuration
func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.ExportDir == "" {
		config.ExportDir = defaults.ExportDir
	}

	if config.Canvas == nil {
		config.Canvas = defaults.Canvas
	} else {
		if config.Canvas.GridStep <= 0 {
			config.Canvas.GridStep = defaults.Canvas.GridStep
		}
		if config.Canvas.ShowGrid == nil {
			config.Canvas.ShowGrid = defaults.Canvas.ShowGrid
		}
		if config.Canvas.AccentColor == "" {
			config.Canvas.AccentColor = defaults.Canvas.AccentColor
		}
	}

	if config.Serve == nil {
		config.Serve = defaults.Serve
	} else {
		if config.Serve.Host == "" {
			config.Serve.Host = defaults.Serve.Host
		}
		if config.Serve.Port == 0 {
			config.Serve.Port = defaults.Serve.Port
		}
	}
}
