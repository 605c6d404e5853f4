// Package config defines process configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of the defaults.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFile receives log output; the terminal UI owns stdout.
	LogFile string `koanf:"log_file"`
	// Variant selects the widget flavour: enhanced or legacy.
	Variant string `koanf:"variant"`
	// Locale selects the label catalog: es or en.
	Locale string `koanf:"locale"`
	// Output is where the hidden field value is written on exit. Empty means stdout.
	Output string `koanf:"output"`
	// MetricsAddr serves /metrics and /healthz when set, e.g. "127.0.0.1:9464".
	MetricsAddr string `koanf:"metrics_addr"`
	// PitchWidth and PitchHeight size the drawn pitch in terminal cells.
	PitchWidth  int `koanf:"pitch_width"`
	PitchHeight int `koanf:"pitch_height"`
	// MaxEvents caps the event list; zero means unbounded.
	MaxEvents int `koanf:"max_events"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFile:     "pitchlog.log",
		Variant:     "enhanced",
		Locale:      "es",
		Output:      "",
		MetricsAddr: "",
		PitchWidth:  60,
		PitchHeight: 21,
		MaxEvents:   0,
	}
}
