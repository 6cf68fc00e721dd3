package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FOV validation bounds in degrees.
const (
	minFOVDegrees = 0
	maxFOVDegrees = 180
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if WINGSPAN_CONFIG is set
//  3. env (prefix WINGSPAN_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("WINGSPAN_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: WINGSPAN_ADDR, WINGSPAN_FOV_DEGREES, ...
	// Map env keys like WINGSPAN_FOV_DEGREES -> fov_degrees (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("WINGSPAN_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "wingspan_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Mode != "known_reference" && c.Mode != "fixed_distance":
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	case c.FOVDegrees <= minFOVDegrees || c.FOVDegrees >= maxFOVDegrees:
		return fmt.Errorf("%w: fov_degrees %v outside (0, 180)", ErrInvalidConfig, c.FOVDegrees)
	case c.ReferenceLengthCM <= 0:
		return fmt.Errorf("%w: reference_length_cm must be positive", ErrInvalidConfig)
	case c.FixedDistanceCM <= 0:
		return fmt.Errorf("%w: fixed_distance_cm must be positive", ErrInvalidConfig)
	case c.RefreshHz <= 0:
		return fmt.Errorf("%w: refresh_hz must be positive", ErrInvalidConfig)
	case c.VideoWidth <= 0 || c.VideoHeight <= 0:
		return fmt.Errorf("%w: video dimensions must be positive", ErrInvalidConfig)
	}
	return nil
}
