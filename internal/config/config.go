// Package config handles terrain tool configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Map sources.
const (
	SourceEmbedded = "embedded" // built-in starting layout
	SourceFile     = "file"     // .tmap or YAML layout on disk
	SourcePerlin   = "perlin"   // procedurally generated
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Map       MapConfig       `yaml:"map"`
	Editor    EditorConfig    `yaml:"editor"`
	Generator GeneratorConfig `yaml:"generator"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MapConfig selects the starting layout.
type MapConfig struct {
	Source string `yaml:"source"` // embedded, file or perlin
	Path   string `yaml:"path"`   // layout file for the file source
	Width  int    `yaml:"width"`  // generated map size
	Height int    `yaml:"height"`
	Seed   int64  `yaml:"seed"`
}

// EditorConfig holds terrain tool settings.
type EditorConfig struct {
	BrushWidth     int  `yaml:"brush_width"`
	BrushHeight    int  `yaml:"brush_height"`
	Smooth         bool `yaml:"smooth"`
	PixelsPerLevel int  `yaml:"pixels_per_level"` // cursor travel per height unit
}

// GeneratorConfig holds Perlin noise parameters.
type GeneratorConfig struct {
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
	Scale     float64 `yaml:"scale"`     // noise units per tile
	Amplitude int     `yaml:"amplitude"` // highest generated base height
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Listen          string        `yaml:"listen"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Map: MapConfig{
			Source: SourceEmbedded,
			Width:  20,
			Height: 20,
			Seed:   1,
		},
		Editor: EditorConfig{
			BrushWidth:     1,
			BrushHeight:    1,
			Smooth:         false,
			PixelsPerLevel: 8,
		},
		Generator: GeneratorConfig{
			Alpha:     2,
			Beta:      2,
			Octaves:   3,
			Scale:     0.1,
			Amplitude: 6,
		},
		Metrics: MetricsConfig{
			Enabled:         false,
			Listen:          ":9100",
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would otherwise fail deep inside the editor.
func (c *Config) Validate() error {
	switch c.Map.Source {
	case SourceEmbedded, SourcePerlin:
	case SourceFile:
		if c.Map.Path == "" {
			return fmt.Errorf("%w: map.path is required for source %q", ErrInvalidConfig, c.Map.Source)
		}
	default:
		return fmt.Errorf("%w: unknown map.source %q", ErrInvalidConfig, c.Map.Source)
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("%w: map size %dx%d", ErrInvalidConfig, c.Map.Width, c.Map.Height)
	}
	if c.Editor.BrushWidth < 1 || c.Editor.BrushHeight < 1 {
		return fmt.Errorf("%w: brush %dx%d", ErrInvalidConfig, c.Editor.BrushWidth, c.Editor.BrushHeight)
	}
	if c.Editor.PixelsPerLevel < 1 {
		return fmt.Errorf("%w: editor.pixels_per_level must be positive", ErrInvalidConfig)
	}
	if c.Generator.Octaves < 1 || c.Generator.Amplitude < 0 {
		return fmt.Errorf("%w: generator octaves %d amplitude %d", ErrInvalidConfig, c.Generator.Octaves, c.Generator.Amplitude)
	}
	return nil
}
