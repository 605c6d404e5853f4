// Package cli implements the pitchlog-replay command line.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/adapters/formfield"
	"github.com/okian/pitchlog/internal/adapters/http/htmlview"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/replay"
	"github.com/okian/pitchlog/pkg/logger"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitMismatch = 2
)

type flags struct {
	scenario string
	format   string
	seedPage string
	expect   string
	logLevel string
}

// NewRootCmd creates the root command. Output goes to the command's out
// writer; logs go to stderr.
func NewRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "pitchlog-replay",
		Short: "Replay a scripted pitch capture session",
		Long: `Runs a YAML scenario of form edits, pitch clicks, commits and deletes
through the capture widget without a terminal, then prints the resulting
hidden field, HTML fragment or analytics summary.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReplay(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.scenario, "scenario", "", "Scenario YAML file (required)")
	cmd.Flags().StringVar(&f.format, "format", string(FormatHidden), "Output format: hidden, json, html or summary")
	cmd.Flags().StringVar(&f.seedPage, "seed-page", "", "HTML page whose goal_events input preloads the event list")
	cmd.Flags().StringVar(&f.expect, "expect", "", "File with the expected hidden field value")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runReplay(cmd *cobra.Command, f *flags) error {
	ctx := cmd.Context()

	format := OutputFormat(strings.ToLower(strings.TrimSpace(f.format)))
	if !format.Valid() {
		return errors.Wrapf(ErrInvalidFormat, "%q (must be hidden, json, html or summary)", f.format)
	}

	if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
		return errors.Wrap(err, "initializing logger")
	}
	if err := logger.SetLevelString(f.logLevel); err != nil {
		return err
	}
	log := logger.Named("replay")

	sc, err := replay.LoadScenario(f.scenario)
	if err != nil {
		return err
	}

	var opts []replay.RunOption
	opts = append(opts, replay.WithLogger(log))
	if f.seedPage != "" {
		seed, err := loadSeed(f.seedPage)
		if err != nil {
			return err
		}
		log.Info(ctx, "seeded from page", logger.String("page", f.seedPage), logger.Int("events", len(seed)))
		opts = append(opts, replay.WithSeed(seed))
	}

	report, err := replay.Run(ctx, sc, opts...)
	if err != nil {
		return err
	}
	log.Info(ctx, "scenario replayed",
		logger.String("session_id", report.SessionID),
		logger.Int("events", len(report.Rows)),
		logger.Int("rejections", len(report.Rejections)),
	)

	if err := WriteOutput(cmd.OutOrStdout(), report, format); err != nil {
		return err
	}

	if f.expect != "" {
		expected, err := os.ReadFile(f.expect)
		if err != nil {
			return errors.Wrapf(err, "reading %s", f.expect)
		}
		if err := replay.MatchHidden(report, string(expected)); err != nil {
			return err
		}
	}
	return nil
}

// loadSeed reads the hidden field out of a saved host page.
func loadSeed(path string) ([]model.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "opening %s", path), ErrSeedPage)
	}
	defer func() { _ = file.Close() }()

	return decodeSeed(file)
}

func decodeSeed(r io.Reader) ([]model.Event, error) {
	raw, err := htmlview.ExtractHidden(r)
	if err != nil {
		return nil, errors.Mark(err, ErrSeedPage)
	}
	events, err := formfield.Decode(raw)
	if err != nil {
		return nil, errors.Mark(err, ErrSeedPage)
	}
	return events, nil
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, replay.ErrHiddenMismatch):
		return ExitMismatch
	default:
		return ExitError
	}
}
