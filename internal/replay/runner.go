package replay

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/adapters/formfield"
	"github.com/okian/pitchlog/internal/adapters/http/htmlview"
	service "github.com/okian/pitchlog/internal/app"
	"github.com/okian/pitchlog/internal/domain/analytics"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/domain/view"
	"github.com/okian/pitchlog/pkg/logger"
)

// Rejection is an expected step failure.
type Rejection struct {
	Step    int    `json:"step"`
	Action  string `json:"action"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// Report is the outcome of a replayed scenario.
type Report struct {
	SessionID  string            `json:"session_id"`
	Variant    string            `json:"variant"`
	Hidden     string            `json:"hidden"`
	Rows       []string          `json:"rows"`
	Rejections []Rejection       `json:"rejections"`
	Summary    analytics.Summary `json:"summary"`
	// HTML is the widget fragment as a host page would embed it.
	HTML string `json:"-"`
}

type runOptions struct {
	seed   []model.Event
	logger logger.Logger
}

// RunOption configures Run.
type RunOption func(*runOptions)

// WithSeed preloads the event list before the first step.
func WithSeed(events []model.Event) RunOption {
	return func(o *runOptions) {
		o.seed = events
	}
}

// WithLogger sets the logger handed to the widget.
func WithLogger(l logger.Logger) RunOption {
	return func(o *runOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Run replays sc through a fresh widget. A step whose outcome does not match
// its expect_error fails the run.
func Run(ctx context.Context, sc *Scenario, opts ...RunOption) (*Report, error) {
	o := runOptions{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	variant, err := model.ParseVariant(sc.Variant)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidScenario)
	}
	locale, err := view.ParseLocale(sc.Locale)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidScenario)
	}
	labels := view.LabelsFor(locale)
	html := htmlview.New(labels)

	w := service.New(
		service.WithVariant(variant),
		service.WithLocale(locale),
		service.WithSessionID(sc.SessionID),
		service.WithMaxEvents(sc.MaxEvents),
		service.WithRenderer(html),
		service.WithFieldWriter(html),
		service.WithLogger(o.logger),
	)
	if err := w.Init(ctx); err != nil {
		return nil, err
	}
	if o.seed != nil {
		if err := w.Seed(ctx, o.seed); err != nil {
			return nil, errors.Wrap(err, "seed")
		}
	}

	report := &Report{
		SessionID:  w.SessionID(),
		Variant:    string(variant),
		Rejections: []Rejection{},
	}
	for i, step := range sc.Steps {
		err := apply(ctx, w, sc, step)
		switch {
		case step.ExpectError == "" && err != nil:
			return nil, errors.Mark(errors.Wrapf(err, "step %d (%s)", i, step.Action), ErrStepFailed)
		case step.ExpectError == "":
			continue
		case err == nil:
			return nil, errors.Wrapf(ErrExpectationFailed, "step %d (%s): expected %s, got success",
				i, step.Action, step.ExpectError)
		case service.Reason(err) != step.ExpectError:
			return nil, errors.Wrapf(ErrExpectationFailed, "step %d (%s): expected %s, got %s (%v)",
				i, step.Action, step.ExpectError, service.Reason(err), err)
		}
		report.Rejections = append(report.Rejections, Rejection{
			Step:    i,
			Action:  step.Action,
			Reason:  service.Reason(err),
			Message: service.AlertMessage(err, labels),
		})
	}

	v := w.View(ctx)
	report.Hidden = v.Hidden
	report.Rows = make([]string, len(v.Rows))
	for i, row := range v.Rows {
		report.Rows[i] = row.Text
	}
	report.Summary = w.Summary(ctx)

	page, err := htmlview.RenderView(v, labels)
	if err != nil {
		return nil, err
	}
	report.HTML = page
	return report, nil
}

func apply(ctx context.Context, w *service.Widget, sc *Scenario, step Step) error {
	switch step.Action {
	case ActionSet:
		return applySet(ctx, w, step)
	case ActionClick:
		_, err := w.Click(ctx, step.X, step.Y, sc.Rect())
		return err
	case ActionCommit:
		_, err := w.Commit(ctx)
		return err
	case ActionDelete:
		return w.Delete(ctx, step.Index)
	case ActionReset:
		w.Reset()
		return nil
	default:
		return errors.Wrapf(ErrInvalidScenario, "unknown action %q", step.Action)
	}
}

// applySet edits the form in the order a user would: direction, minute,
// play type (which may hide the subtype selector), then subtype.
func applySet(ctx context.Context, w *service.Widget, step Step) error {
	if step.Direction != "" {
		if err := w.SetDirection(model.Direction(step.Direction)); err != nil {
			return err
		}
	}
	if step.Minute != nil {
		w.SetMinute(*step.Minute)
	}
	if pt := strings.TrimSpace(step.PlayType); pt != "" {
		if err := w.SetPlayType(ctx, model.PlayType(pt)); err != nil {
			return err
		}
	}
	if step.Subtype != nil {
		return w.SetSubtype(*step.Subtype)
	}
	return nil
}

// MatchHidden compares the report's hidden field with an expected value.
// Both sides are decoded and re-encoded, so formatting differences are ignored.
func MatchHidden(report *Report, expected string) error {
	want, err := formfield.Decode(expected)
	if err != nil {
		return errors.Wrap(err, "expected value")
	}
	wantRaw, err := formfield.Encode(want)
	if err != nil {
		return err
	}
	if wantRaw != report.Hidden {
		return errors.Wrapf(ErrHiddenMismatch, "want %s, got %s", wantRaw, report.Hidden)
	}
	return nil
}
