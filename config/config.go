// Package config defines studio configuration and its loader.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/furry-motion/motion"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile receives logs while the terminal UI owns the screen. Empty
	// disables logging during interactive runs.
	LogFile string `koanf:"log_file"`

	// TickRateMS is the animation frame interval.
	TickRateMS int `koanf:"tick_rate_ms"`

	// Spring constants for the scroll pencil.
	SpringStiffness float64 `koanf:"spring_stiffness"`
	SpringDamping   float64 `koanf:"spring_damping"`
	SpringRestDelta float64 `koanf:"spring_rest_delta"`

	// ChatModel and ChatAPIKey configure the studio assistant.
	ChatModel  string `koanf:"chat_model"`
	ChatAPIKey string `koanf:"chat_api_key"`

	// CommentsDB is the sqlite path for comment threads. Empty keeps
	// comments in memory.
	CommentsDB string `koanf:"comments_db"`

	// MetricsAddr serves Prometheus metrics when set, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		TickRateMS:      16,
		SpringStiffness: 60,
		SpringDamping:   20,
		SpringRestDelta: 0.001,
		ChatModel:       "gemini-3-flash-preview",
		CommentsDB:      "studio.db",
	}
}

// TickRate returns the frame interval.
func (c *Config) TickRate() time.Duration {
	return time.Duration(c.TickRateMS) * time.Millisecond
}

// Spring returns the pencil spring constants.
func (c *Config) Spring() motion.SpringConfig {
	return motion.SpringConfig{
		Stiffness: c.SpringStiffness,
		Damping:   c.SpringDamping,
		RestDelta: c.SpringRestDelta,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.TickRateMS <= 0 {
		return fmt.Errorf("%w: tick_rate_ms must be positive", ErrInvalidConfig)
	}
	if c.SpringStiffness <= 0 || c.SpringDamping <= 0 || c.SpringRestDelta < 0 {
		return fmt.Errorf("%w: spring constants must be positive", ErrInvalidConfig)
	}
	if err := c.Spring().WithDefaults().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
