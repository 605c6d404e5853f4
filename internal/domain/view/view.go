// Package view builds render descriptions of the widget state.
//
// Builders are pure: they take domain state and return plain values that a
// terminal or HTML renderer can draw without knowing the capture rules.
package view

import (
	"fmt"
	"strings"

	"github.com/okian/pitchlog/internal/domain/capture"
	"github.com/okian/pitchlog/internal/domain/model"
)

// MarkerRole distinguishes the pending start and end markers.
type MarkerRole string

const (
	RoleStart MarkerRole = "start"
	RoleEnd   MarkerRole = "end"
)

// Marker is a pending click drawn on the pitch at percentage coordinates.
type Marker struct {
	Role MarkerRole
	X    float64
	Y    float64
}

// Row is one line of the committed event list. Index is the positional index
// the row's delete control removes.
type Row struct {
	Index int
	Text  string
	Event model.Event
}

// Controls describes the form affordances that depend on capture state.
type Controls struct {
	Mode           capture.Mode
	State          capture.State
	Help           string
	CommitEnabled  bool
	SubtypeVisible bool
}

// View is a full snapshot of what the widget displays.
type View struct {
	Markers  []Marker
	Rows     []Row
	Controls Controls
	Hidden   string
}

// BuildMarkers returns zero, one or two markers for the pending points.
func BuildMarkers(p capture.Pending) []Marker {
	markers := make([]Marker, 0, 2)
	if p.Start != nil {
		markers = append(markers, Marker{Role: RoleStart, X: p.Start.X, Y: p.Start.Y})
	}
	if p.End != nil {
		markers = append(markers, Marker{Role: RoleEnd, X: p.End.X, Y: p.End.Y})
	}
	return markers
}

// BuildRows formats one row per event, in store order.
func BuildRows(events []model.Event, l Labels) []Row {
	rows := make([]Row, len(events))
	for i, e := range events {
		rows[i] = Row{Index: i, Text: FormatRow(e, l), Event: e}
	}
	return rows
}

// FormatRow renders an event as a single list line, e.g.
// "A favor · Min 34 · Transición · inicio (10.0, 10.0) · fin (90.0, 80.0)".
func FormatRow(e model.Event, l Labels) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s · %s %d · %s", l.DirectionLabel(e.Direction), l.Minute, e.Minute, e.PlayType)
	if e.Subtype != nil && *e.Subtype != "" {
		fmt.Fprintf(&b, " · %s", *e.Subtype)
	}
	fmt.Fprintf(&b, " · %s (%.1f, %.1f)", l.Start, e.Start.X, e.Start.Y)
	if e.End != nil {
		fmt.Fprintf(&b, " · %s (%.1f, %.1f)", l.End, e.End.X, e.End.Y)
	}
	return b.String()
}

// HelpText describes the next action the user has to take.
func HelpText(mode capture.Mode, state capture.State, l Labels) string {
	if mode == capture.OneClick {
		return l.HelpSingle
	}
	switch state {
	case capture.StartSet:
		return l.HelpEnd
	case capture.Ready:
		return l.HelpReady
	default:
		return l.HelpStart
	}
}
