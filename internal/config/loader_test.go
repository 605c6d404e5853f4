package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFile, convey.ShouldEqual, "pitchlog.log")
			convey.So(cfg.Variant, convey.ShouldEqual, "enhanced")
			convey.So(cfg.Locale, convey.ShouldEqual, "es")
			convey.So(cfg.MetricsAddr, convey.ShouldBeEmpty)
			convey.So(cfg.PitchWidth, convey.ShouldEqual, 60)
			convey.So(cfg.PitchHeight, convey.ShouldEqual, 21)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Variant, convey.ShouldEqual, "enhanced")
				convey.So(cfg.PitchWidth, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PITCHLOG_VARIANT", "legacy")
			_ = os.Setenv("PITCHLOG_LOCALE", "en")
			_ = os.Setenv("PITCHLOG_METRICS_ADDR", "127.0.0.1:9464")
			_ = os.Setenv("PITCHLOG_PITCH_WIDTH", "80")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Variant, convey.ShouldEqual, "legacy")
				convey.So(cfg.Locale, convey.ShouldEqual, "en")
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, "127.0.0.1:9464")
				convey.So(cfg.PitchWidth, convey.ShouldEqual, 80)
				convey.So(cfg.PitchHeight, convey.ShouldEqual, 21)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
# pitch layout
pitch_width: 90
pitch_height: 30
output: "events.json"
log_level: debug
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PITCHLOG_CONFIG", tmpFile)
			_ = os.Setenv("PITCHLOG_PITCH_HEIGHT", "25")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PitchWidth, convey.ShouldEqual, 90)  // From file
				convey.So(cfg.PitchHeight, convey.ShouldEqual, 25) // Overridden by env
				convey.So(cfg.Output, convey.ShouldEqual, "events.json")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Locale, convey.ShouldEqual, "es") // From defaults
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("PITCHLOG_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PITCHLOG_CONFIG", "/non/existent/pitchlog.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the variant is unknown", func() {
			_ = os.Setenv("PITCHLOG_VARIANT", "deluxe")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an invalid-config error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the pitch is too small", func() {
			_ = os.Setenv("PITCHLOG_PITCH_WIDTH", "5")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should return an invalid-config error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "pitch must be at least")
			})
		})

		convey.Convey("When a numeric variable is not a number", func() {
			_ = os.Setenv("PITCHLOG_PITCH_WIDTH", "wide")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"PITCHLOG_CONFIG",
		"PITCHLOG_VARIANT",
		"PITCHLOG_LOCALE",
		"PITCHLOG_METRICS_ADDR",
		"PITCHLOG_PITCH_WIDTH",
		"PITCHLOG_PITCH_HEIGHT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "pitchlog-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
