package config

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/domain/view"
)

// Minimum pitch size in cells that still leaves room for markers and lines.
const (
	minPitchWidth  = 20
	minPitchHeight = 8
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PITCHLOG_CONFIG is set
//  3. env (prefix PITCHLOG_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv("PITCHLOG_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "config file %s", path), ErrLoadConfig)
		}
	}

	// Map env keys like PITCHLOG_METRICS_ADDR -> metrics_addr (flat keys).
	envProvider := env.Provider("PITCHLOG_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "pitchlog_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "environment"), ErrLoadConfig)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshal"), ErrLoadConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if _, err := model.ParseVariant(c.Variant); err != nil {
		return errors.Mark(err, ErrInvalidConfig)
	}
	if _, err := view.ParseLocale(c.Locale); err != nil {
		return errors.Mark(err, ErrInvalidConfig)
	}
	if c.PitchWidth < minPitchWidth || c.PitchHeight < minPitchHeight {
		return errors.Wrapf(ErrInvalidConfig, "pitch must be at least %dx%d cells, got %dx%d",
			minPitchWidth, minPitchHeight, c.PitchWidth, c.PitchHeight)
	}
	if c.MaxEvents < 0 {
		return errors.Wrapf(ErrInvalidConfig, "max_events must not be negative, got %d", c.MaxEvents)
	}
	return nil
}
