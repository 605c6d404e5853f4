package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/okian/pitchlog/internal/adapters/http/api"
	"github.com/okian/pitchlog/internal/adapters/tui"
	service "github.com/okian/pitchlog/internal/app"
	"github.com/okian/pitchlog/internal/config"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/domain/view"
	"github.com/okian/pitchlog/pkg/logger"
	"github.com/okian/pitchlog/pkg/metrics"
)

const outputFilePermission = 0o600

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// The terminal UI owns stdout, so logs go to a file.
	if err := logger.InitFile(cfg.LogFile); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		loggerInstance.Error(ctx, "failed to create screen", logger.Error(err))
		os.Stderr.WriteString("failed to create screen: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		loggerInstance.Error(ctx, "failed to initialize screen", logger.Error(err))
		os.Stderr.WriteString("failed to initialize screen: " + err.Error() + "\n")
		os.Exit(1)
	}

	hidden, runErr := run(ctx, cfg, screen, loggerInstance)
	// Restore the terminal before anything is printed.
	screen.Fini()
	if runErr != nil {
		loggerInstance.Error(ctx, "widget session failed", logger.Error(runErr))
		os.Stderr.WriteString("pitchlog: " + runErr.Error() + "\n")
		os.Exit(1)
	}

	if err := writeOutput(cfg.Output, hidden, os.Stdout); err != nil {
		loggerInstance.Error(ctx, "failed to write events", logger.Error(err))
		os.Stderr.WriteString("pitchlog: " + err.Error() + "\n")
		os.Exit(1)
	}
	loggerInstance.Info(ctx, "session finished", logger.Int("bytes", len(hidden)))
}

// run drives one widget session on screen and returns the final hidden field
// value. The caller owns screen.Init and screen.Fini.
func run(ctx context.Context, cfg *config.Config, screen tcell.Screen, log logger.Logger) (string, error) {
	variant, err := model.ParseVariant(cfg.Variant)
	if err != nil {
		return "", err
	}
	locale, err := view.ParseLocale(cfg.Locale)
	if err != nil {
		return "", err
	}
	sessionID := uuid.NewString()

	// Collectors are labelled with the variant; nothing is recorded unless
	// the monitoring server can expose it.
	metrics.Configure(
		metrics.WithConstLabel("variant", string(variant)),
		metrics.WithMetricsEnabled(cfg.MetricsAddr != ""),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	host := tui.New(screen,
		tui.WithPitchSize(cfg.PitchWidth, cfg.PitchHeight),
		tui.WithLogger(log),
	)
	opts := []service.Option{
		service.WithLogger(log),
		service.WithVariant(variant),
		service.WithLocale(locale),
		service.WithSessionID(sessionID),
		service.WithMaxEvents(cfg.MaxEvents),
		service.WithRenderer(host),
		service.WithFieldWriter(host),
	}

	// Optional monitoring server; it only reads published snapshots.
	serveErr := make(chan error, 1)
	if cfg.MetricsAddr != "" {
		publisher := api.NewPublisher(sessionID)
		opts = append(opts, service.WithFieldWriter(publisher))
		srv := api.NewServer(publisher, view.LabelsFor(locale))
		go func() {
			serveErr <- srv.ListenAndServe(ctx, cfg.MetricsAddr, log)
		}()
	} else {
		close(serveErr)
	}

	w := service.New(opts...)
	host.Bind(w)
	if err := w.Init(ctx); err != nil {
		return "", err
	}
	log.Info(ctx, "widget session started",
		logger.String("session_id", sessionID),
		logger.String("variant", string(variant)),
		logger.String("locale", string(locale)),
	)

	if err := host.Run(ctx); err != nil {
		return "", err
	}
	cancel()
	if err := <-serveErr; err != nil {
		log.Warn(ctx, "monitoring server stopped with error", logger.Error(err))
	}
	return w.HiddenValue(), nil
}

// writeOutput writes the hidden field value to path, or to stdout when path is empty.
func writeOutput(path, hidden string, stdout io.Writer) error {
	if path == "" {
		_, err := io.WriteString(stdout, hidden+"\n")
		return errors.Wrap(err, "write stdout")
	}
	if err := os.WriteFile(path, []byte(hidden+"\n"), outputFilePermission); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
