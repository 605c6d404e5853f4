// Package formfield encodes the event list into the hidden form field value
// and decodes it back.
//
// The wire shape is the one the host form consumer reads:
//
//	[{"for_or_against":"for","minute":34,"play_type":"Transición","abp_subtype":null,
//	  "x_start":10,"y_start":10,"x_end":90,"y_end":80}]
//
// The flat keys are kept on purpose because the form consumer reads them.
// They map to model.Event as: for_or_against is Direction, play_type is
// PlayType, abp_subtype is Subtype, x_start/y_start is Start and x_end/y_end
// is End. Absent Subtype and End are written as null.
package formfield

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/domain/model"
)

// FieldID is the DOM id of the hidden input the value is written to.
const FieldID = "goal_events"

type wireEvent struct {
	ForOrAgainst string   `json:"for_or_against"`
	Minute       int      `json:"minute"`
	PlayType     string   `json:"play_type"`
	ABPSubtype   *string  `json:"abp_subtype"`
	XStart       float64  `json:"x_start"`
	YStart       float64  `json:"y_start"`
	XEnd         *float64 `json:"x_end"`
	YEnd         *float64 `json:"y_end"`
}

func toWire(e model.Event) wireEvent {
	w := wireEvent{
		ForOrAgainst: string(e.Direction),
		Minute:       e.Minute,
		PlayType:     string(e.PlayType),
		XStart:       e.Start.X,
		YStart:       e.Start.Y,
	}
	if e.Subtype != nil {
		s := *e.Subtype
		w.ABPSubtype = &s
	}
	if e.End != nil {
		x, y := e.End.X, e.End.Y
		w.XEnd, w.YEnd = &x, &y
	}
	return w
}

func (w wireEvent) toEvent() (model.Event, error) {
	e := model.Event{
		Direction: model.Direction(w.ForOrAgainst),
		Minute:    w.Minute,
		PlayType:  model.PlayType(w.PlayType),
		Start:     model.Point{X: w.XStart, Y: w.YStart},
	}
	if w.ABPSubtype != nil {
		s := *w.ABPSubtype
		e.Subtype = &s
	}
	switch {
	case w.XEnd != nil && w.YEnd != nil:
		e.End = &model.Point{X: *w.XEnd, Y: *w.YEnd}
	case w.XEnd != nil || w.YEnd != nil:
		return model.Event{}, errors.Wrap(ErrMalformed, "end point needs both x_end and y_end")
	}
	return e, nil
}

// Encode serializes events in order. An empty list encodes as "[]".
func Encode(events []model.Event) (string, error) {
	wire := make([]wireEvent, len(events))
	for i, e := range events {
		wire[i] = toWire(e)
	}
	out, err := sonic.Marshal(wire)
	if err != nil {
		return "", errors.Wrap(err, "encode events")
	}
	return string(out), nil
}

// Decode parses a hidden field value and validates every event.
// An empty or blank value decodes as an empty list.
func Decode(raw string) ([]model.Event, error) {
	if strings.TrimSpace(raw) == "" {
		return []model.Event{}, nil
	}
	var wire []wireEvent
	if err := sonic.UnmarshalString(raw, &wire); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode events"), ErrMalformed)
	}
	events := make([]model.Event, 0, len(wire))
	for i, w := range wire {
		e, err := w.toEvent()
		if err != nil {
			return nil, errors.Wrapf(err, "event %d", i)
		}
		if err := e.Validate(); err != nil {
			return nil, errors.Wrapf(err, "event %d", i)
		}
		events = append(events, e)
	}
	return events, nil
}
