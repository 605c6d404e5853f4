// Package service provides the pitch event-capture widget: it owns the form
// state, the pending clicks and the committed event list, and keeps the
// rendered views and the hidden form field in step with them.
package service

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/okian/pitchlog/internal/adapters/repository"
	"github.com/okian/pitchlog/internal/domain/analytics"
	"github.com/okian/pitchlog/internal/domain/capture"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/domain/view"
	"github.com/okian/pitchlog/pkg/logger"
	"github.com/okian/pitchlog/pkg/metrics"
)

// Form holds the current values of the form controls.
type Form struct {
	Direction model.Direction
	// Minute is kept as typed; it is parsed on commit.
	Minute   string
	PlayType model.PlayType
	Subtype  string
}

// Widget is a single event-capture widget instance.
//
// It is not safe for concurrent use. Hosts call it from one event loop.
type Widget struct {
	// Configuration
	sessionID string
	variant   model.Variant
	locale    view.Locale
	labels    view.Labels
	maxEvents int

	// Collaborators
	store    repository.Store
	renderer Renderer
	fields   []FieldWriter
	sync     *Synchronizer
	logger   logger.Logger

	// State
	form        Form
	machine     *capture.Machine
	initialized bool
}

// Option applies a configuration option to the Widget.
type Option func(*Widget)

// WithLogger sets a custom logger for the widget.
func WithLogger(l logger.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithVariant selects the enhanced or legacy play-type catalog.
func WithVariant(v model.Variant) Option {
	return func(w *Widget) {
		if v != "" {
			w.variant = v
		}
	}
}

// WithLocale selects the label catalog.
func WithLocale(l view.Locale) Option {
	return func(w *Widget) {
		if l != "" {
			w.locale = l
		}
	}
}

// WithRenderer sets the sink for markers, the event list and the controls.
func WithRenderer(r Renderer) Option {
	return func(w *Widget) {
		w.renderer = r
	}
}

// WithFieldWriter adds a sink for the hidden field value. It may be given
// more than once; every writer receives every value.
func WithFieldWriter(f FieldWriter) Option {
	return func(w *Widget) {
		if f != nil {
			w.fields = append(w.fields, f)
		}
	}
}

// WithStore replaces the in-memory event store.
func WithStore(s repository.Store) Option {
	return func(w *Widget) {
		if s != nil {
			w.store = s
		}
	}
}

// WithSessionID sets the id reported in logs. A random one is used by default.
func WithSessionID(id string) Option {
	return func(w *Widget) {
		if id != "" {
			w.sessionID = id
		}
	}
}

// WithMaxEvents caps the default store. Zero means unlimited.
func WithMaxEvents(n int) Option {
	return func(w *Widget) {
		if n >= 0 {
			w.maxEvents = n
		}
	}
}

// New constructs a widget. Call Init before driving it.
func New(opts ...Option) *Widget {
	w := &Widget{
		sessionID: uuid.NewString(),
		variant:   model.EnhancedVariant,
		locale:    view.Spanish,
	}

	for _, opt := range opts {
		opt(w)
	}

	w.labels = view.LabelsFor(w.locale)
	return w
}

// Init creates the default collaborators, resets the form and draws every
// target once, including an "[]" hidden field for the empty list.
func (w *Widget) Init(ctx context.Context) error {
	if w.initialized {
		return nil
	}
	variant, err := model.ParseVariant(string(w.variant))
	if err != nil {
		return err
	}
	w.variant = variant
	locale, err := view.ParseLocale(string(w.locale))
	if err != nil {
		return err
	}
	w.locale = locale
	w.labels = view.LabelsFor(locale)

	if w.logger == nil {
		w.logger = logger.Get()
	}
	w.logger = w.logger.Named("widget")
	if w.store == nil {
		w.store = repository.NewEventStore(ctx, repository.WithMaxEvents(w.maxEvents))
	}
	w.sync = NewSynchronizer(w.renderer, w.labels, w.logger, w.fields...)

	first := w.variant.PlayTypes()[0]
	w.form = Form{Direction: model.DirectionFor, PlayType: first}
	w.machine = capture.NewMachine(capture.ResolveMode(first))
	w.initialized = true

	w.logger.Info(ctx, "widget initialized",
		logger.String("session", w.sessionID),
		logger.String("variant", string(w.variant)),
		logger.String("locale", string(w.locale)),
	)

	w.syncPending()
	return w.sync.Events(ctx, w.store.List(ctx))
}

// SetDirection sets the for/against selector. Pending clicks are kept.
func (w *Widget) SetDirection(d model.Direction) error {
	if !d.Valid() {
		return errors.Wrapf(ErrInvalidDirection, "%q", d)
	}
	w.form.Direction = d
	return nil
}

// SetMinute stores the minute text as typed.
func (w *Widget) SetMinute(s string) {
	w.form.Minute = s
}

// SetPlayType changes the play type. The capture mode is re-resolved, pending
// clicks are discarded and the subtype is cleared when its selector hides.
func (w *Widget) SetPlayType(ctx context.Context, pt model.PlayType) error {
	if !w.initialized {
		return ErrNotInitialized
	}
	if !w.variant.Allows(pt) {
		return errors.Wrapf(ErrUnknownPlayType, "%q in %s variant", pt, w.variant)
	}

	w.form.PlayType = pt
	if !capture.NeedsSubtype(pt) {
		w.form.Subtype = ""
	}
	mode := capture.ResolveMode(pt)
	w.machine.SetMode(mode)
	metrics.RecordModeChange()

	w.logger.Debug(ctx, "play type changed",
		logger.String("play_type", string(pt)),
		logger.String("mode", mode.String()),
	)
	w.syncPending()
	return nil
}

// SetSubtype sets the set-piece sub-category. An empty value clears it.
func (w *Widget) SetSubtype(s string) error {
	if !capture.NeedsSubtype(w.form.PlayType) {
		return ErrSubtypeUnavailable
	}
	if s != "" && !model.IsSetPieceSubtype(s) {
		return errors.Wrapf(ErrUnknownSubtype, "%q", s)
	}
	w.form.Subtype = s
	return nil
}

// Click maps a pointer position inside rect onto the pitch and feeds it to
// the capture state machine.
func (w *Widget) Click(ctx context.Context, clientX, clientY float64, rect capture.Rect) (capture.State, error) {
	if !w.initialized {
		return capture.Empty, ErrNotInitialized
	}
	p, err := capture.MapClick(clientX, clientY, rect)
	if err != nil {
		return w.machine.State(), err
	}

	state := w.machine.Click(p)
	metrics.RecordClick(w.machine.Mode().String())
	w.logger.Debug(ctx, "pitch click",
		logger.Float64("x", p.X),
		logger.Float64("y", p.Y),
		logger.String("state", state.String()),
	)
	w.syncPending()
	return state, nil
}

// Commit validates the form and pending clicks and appends the event.
// On failure nothing changes and the error maps to an alert via AlertMessage.
func (w *Widget) Commit(ctx context.Context) (model.Event, error) {
	if !w.initialized {
		return model.Event{}, ErrNotInitialized
	}

	pending := w.machine.Pending()
	minute, err := ValidateForm(w.form, pending, w.machine.Mode())
	if err != nil {
		w.reject(ctx, err)
		return model.Event{}, err
	}

	e := model.Event{
		Direction: w.form.Direction,
		Minute:    minute,
		PlayType:  w.form.PlayType,
		Start:     *pending.Start,
	}
	if capture.NeedsSubtype(w.form.PlayType) {
		s := strings.TrimSpace(w.form.Subtype)
		e.Subtype = &s
	}
	if w.machine.Mode() == capture.TwoClick {
		e.End = pending.End
	}

	index, err := w.store.Append(ctx, e)
	if err != nil {
		w.reject(ctx, err)
		return model.Event{}, err
	}
	metrics.RecordCommit(string(e.PlayType))
	w.logger.Info(ctx, "event committed",
		logger.String("session", w.sessionID),
		logger.Int("index", index),
		logger.String("direction", string(e.Direction)),
		logger.Int("minute", e.Minute),
		logger.String("play_type", string(e.PlayType)),
	)

	w.machine.Reset()
	if err := w.sync.Events(ctx, w.store.List(ctx)); err != nil {
		return e, err
	}
	w.syncPending()
	return e, nil
}

func (w *Widget) reject(ctx context.Context, err error) {
	metrics.RecordRejection(Reason(err))
	w.logger.Debug(ctx, "commit rejected", logger.Error(err))
}

// Delete removes the event at index i; later events shift down by one.
func (w *Widget) Delete(ctx context.Context, i int) error {
	if !w.initialized {
		return ErrNotInitialized
	}
	removed, err := w.store.Delete(ctx, i)
	if err != nil {
		return err
	}
	metrics.RecordDeletion()
	w.logger.Info(ctx, "event deleted",
		logger.Int("index", i),
		logger.String("play_type", string(removed.PlayType)),
	)
	return w.sync.Events(ctx, w.store.List(ctx))
}

// Reset discards pending clicks.
func (w *Widget) Reset() {
	if !w.initialized {
		return
	}
	w.machine.Reset()
	w.syncPending()
}

// Seed replaces the event list, e.g. with a previously submitted hidden field.
func (w *Widget) Seed(ctx context.Context, events []model.Event) error {
	if !w.initialized {
		return ErrNotInitialized
	}
	for i, e := range events {
		if !w.variant.Allows(e.PlayType) {
			return errors.Wrapf(ErrUnknownPlayType, "event %d: %q in %s variant", i, e.PlayType, w.variant)
		}
	}
	if err := w.store.Replace(ctx, events); err != nil {
		return err
	}
	w.logger.Info(ctx, "event list seeded", logger.Int("events", len(events)))
	return w.sync.Events(ctx, w.store.List(ctx))
}

func (w *Widget) syncPending() {
	w.sync.Markers(view.BuildMarkers(w.machine.Pending()))
	w.sync.Controls(w.controls())
}

func (w *Widget) controls() view.Controls {
	mode, state := w.machine.Mode(), w.machine.State()
	return view.Controls{
		Mode:           mode,
		State:          state,
		Help:           view.HelpText(mode, state, w.labels),
		CommitEnabled:  w.machine.CommitEnabled(),
		SubtypeVisible: capture.NeedsSubtype(w.form.PlayType),
	}
}

// Events returns a copy of the committed events in order.
func (w *Widget) Events(ctx context.Context) []model.Event {
	if w.store == nil {
		return []model.Event{}
	}
	return w.store.List(ctx)
}

// Pending returns a copy of the pending clicks.
func (w *Widget) Pending() capture.Pending {
	if w.machine == nil {
		return capture.Pending{}
	}
	return w.machine.Pending()
}

// Form returns the current form values.
func (w *Widget) Form() Form { return w.form }

// Mode returns the active capture mode.
func (w *Widget) Mode() capture.Mode {
	if w.machine == nil {
		return capture.OneClick
	}
	return w.machine.Mode()
}

// State returns the pending capture state.
func (w *Widget) State() capture.State {
	if w.machine == nil {
		return capture.Empty
	}
	return w.machine.State()
}

// CommitEnabled reports whether the commit control is enabled.
func (w *Widget) CommitEnabled() bool {
	return w.machine != nil && w.machine.CommitEnabled()
}

// HiddenValue returns the current hidden field value.
func (w *Widget) HiddenValue() string {
	if w.sync == nil {
		return "[]"
	}
	return w.sync.Hidden()
}

// View returns a full snapshot of what the widget displays.
func (w *Widget) View(ctx context.Context) view.View {
	if !w.initialized {
		return view.View{Markers: []view.Marker{}, Rows: []view.Row{}, Hidden: "[]"}
	}
	return view.View{
		Markers:  view.BuildMarkers(w.machine.Pending()),
		Rows:     view.BuildRows(w.store.List(ctx), w.labels),
		Controls: w.controls(),
		Hidden:   w.sync.Hidden(),
	}
}

// Summary aggregates the committed events.
func (w *Widget) Summary(ctx context.Context) analytics.Summary {
	return analytics.Summarize(w.Events(ctx))
}

// SessionID returns the widget's session id.
func (w *Widget) SessionID() string { return w.sessionID }

// Variant returns the active variant.
func (w *Widget) Variant() model.Variant { return w.variant }

// Labels returns the active label catalog.
func (w *Widget) Labels() view.Labels { return w.labels }
