package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the visualization settings read from a JSON file
type Config struct {
	Grid    GridConfig    `json:"grid"`
	Label   LabelConfig   `json:"label"`
	Overlay OverlayConfig `json:"overlay"`
	Output  OutputConfig  `json:"output"`
}

// GridConfig holds settings for batch-to-grid tiling
type GridConfig struct {
	Rows int   `json:"rows"`
	Cols int   `json:"cols"`
	Fill uint8 `json:"fill"`
}

// LabelConfig holds settings for label colorization
type LabelConfig struct {
	// Colormap overrides the built-in class colors when non-empty. Each entry
	// is an RGB triple indexed by class id.
	Colormap [][3]uint8 `json:"colormap,omitempty"`
	Quality  int        `json:"quality"`
}

// OverlayConfig holds settings for overlay compositing
type OverlayConfig struct {
	Colormap [][3]uint8 `json:"colormap,omitempty"`
	Alpha    float64    `json:"alpha"`
	Quality  int        `json:"quality"`
}

// OutputConfig holds settings for output generation
type OutputConfig struct {
	OutputDir string `json:"output_dir"`
	Prefix    string `json:"prefix"`
	Suffix    string `json:"suffix"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Rows: 4,
			Cols: 4,
			Fill: 0,
		},
		Label: LabelConfig{
			Quality: 85,
		},
		Overlay: OverlayConfig{
			Alpha:   0.5,
			Quality: 85,
		},
		Output: OutputConfig{
			OutputDir: "./output",
			Prefix:    "",
			Suffix:    "_viz",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return fmt.Errorf("grid.rows and grid.cols must be positive")
	}

	if c.Label.Quality < 1 || c.Label.Quality > 100 {
		return fmt.Errorf("label.quality must be between 1 and 100")
	}

	if c.Overlay.Quality < 1 || c.Overlay.Quality > 100 {
		return fmt.Errorf("overlay.quality must be between 1 and 100")
	}

	if c.Overlay.Alpha < 0 || c.Overlay.Alpha > 1 {
		return fmt.Errorf("overlay.alpha must be between 0 and 1")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "segviz", "config.json")
}
