// Package config handles meshtool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshras/internal/engine/rasterizer"
)

// ErrInvalidSortOrder is returned by Validate for unknown sort orders.
var ErrInvalidSortOrder = errors.New("invalid sort order")

// Config holds all tool settings.
type Config struct {
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// RenderConfig holds polygon sorting settings.
type RenderConfig struct {
	SortOrder     string `yaml:"sort_order" toml:"sort_order"`           // rasterizer.ParseSortOrder names
	SortAlphaOnly bool   `yaml:"sort_alpha_only" toml:"sort_alpha_only"` // Only sort z-sorted (alpha) materials
}

// CameraConfig places the orbit camera used to derive sort transforms.
type CameraConfig struct {
	Distance float32 `yaml:"distance" toml:"distance"` // 0 fits the camera to the mesh bounds
	Pitch    float32 `yaml:"pitch" toml:"pitch"`       // Radians
	Yaw      float32 `yaml:"yaw" toml:"yaw"`           // Radians
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			SortOrder:     rasterizer.SortBackToFront.String(),
			SortAlphaOnly: true,
		},
		Camera: CameraConfig{
			Distance: 0,
			Pitch:    0.5,
			Yaw:      0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be expressed by the file format alone.
func (c *Config) Validate() error {
	if _, err := rasterizer.ParseSortOrder(c.Render.SortOrder); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSortOrder, c.Render.SortOrder)
	}
	return nil
}
