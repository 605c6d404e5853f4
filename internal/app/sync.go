package service

import (
	"context"
	"time"

	"github.com/okian/pitchlog/internal/adapters/formfield"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/domain/view"
	"github.com/okian/pitchlog/pkg/logger"
	"github.com/okian/pitchlog/pkg/metrics"
)

// Renderer draws the widget. Every call carries the complete target; renderers
// replace what they drew before rather than patching it.
type Renderer interface {
	RenderMarkers(markers []view.Marker)
	RenderEvents(rows []view.Row)
	RenderControls(c view.Controls)
}

// FieldWriter receives the serialized event list for the hidden form field.
type FieldWriter interface {
	SetValue(value string)
}

type nopRenderer struct{}

func (nopRenderer) RenderMarkers([]view.Marker)  {}
func (nopRenderer) RenderEvents([]view.Row)      {}
func (nopRenderer) RenderControls(view.Controls) {}

// Synchronizer pushes widget state to the renderer and the hidden field.
type Synchronizer struct {
	renderer Renderer
	fields   []FieldWriter
	labels   view.Labels
	logger   logger.Logger

	hidden string
}

// NewSynchronizer wires the render sinks. A nil renderer and no field writers
// are allowed; the hidden value is still tracked and available through Hidden.
func NewSynchronizer(r Renderer, l view.Labels, log logger.Logger, fields ...FieldWriter) *Synchronizer {
	if r == nil {
		r = nopRenderer{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Synchronizer{renderer: r, fields: fields, labels: l, logger: log, hidden: "[]"}
}

// Markers redraws the pending markers layer.
func (s *Synchronizer) Markers(markers []view.Marker) {
	s.renderer.RenderMarkers(markers)
	metrics.RecordRender("markers")
}

// Controls redraws help text, commit button state and the subtype selector.
func (s *Synchronizer) Controls(c view.Controls) {
	s.renderer.RenderControls(c)
	metrics.RecordRender("controls")
}

// Events rebuilds the event list and then writes the hidden field.
func (s *Synchronizer) Events(ctx context.Context, events []model.Event) error {
	s.renderer.RenderEvents(view.BuildRows(events, s.labels))
	metrics.RecordRender("events")

	start := time.Now()
	value, err := formfield.Encode(events)
	if err != nil {
		s.logger.Error(ctx, "failed to serialize events", logger.Error(err))
		return err
	}
	metrics.RecordSerialization(len(value), float64(time.Since(start).Microseconds())/1000)

	s.hidden = value
	for _, f := range s.fields {
		f.SetValue(value)
	}
	s.logger.Debug(ctx, "hidden field updated",
		logger.Int("events", len(events)),
		logger.Int("bytes", len(value)),
	)
	return nil
}

// Hidden returns the last value written to the hidden field.
func (s *Synchronizer) Hidden() string {
	return s.hidden
}
