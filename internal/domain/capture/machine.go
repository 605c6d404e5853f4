package capture

import "github.com/okian/pitchlog/internal/domain/model"

// State of the pending capture.
type State int

const (
	Empty State = iota
	StartSet
	Ready
)

func (s State) String() string {
	switch s {
	case StartSet:
		return "start_set"
	case Ready:
		return "ready"
	default:
		return "empty"
	}
}

// Pending holds clicks not yet committed to an event.
type Pending struct {
	Start *model.Point
	End   *model.Point
}

// Machine tracks pending clicks for the current capture mode.
// It is not safe for concurrent use; the widget drives it from one handler at a time.
type Machine struct {
	mode    Mode
	pending Pending
}

// NewMachine returns an empty machine in the given mode.
func NewMachine(mode Mode) *Machine {
	return &Machine{mode: mode}
}

// Mode returns the current capture mode.
func (m *Machine) Mode() Mode { return m.mode }

// State derives the capture state from the pending points.
func (m *Machine) State() State {
	switch {
	case m.pending.Start == nil:
		return Empty
	case m.pending.End != nil:
		return Ready
	default:
		return StartSet
	}
}

// Pending returns a copy of the pending points.
func (m *Machine) Pending() Pending {
	out := Pending{}
	if m.pending.Start != nil {
		p := *m.pending.Start
		out.Start = &p
	}
	if m.pending.End != nil {
		p := *m.pending.End
		out.End = &p
	}
	return out
}

// Click applies a pitch click and returns the resulting state.
//
// In one-click mode every click replaces the start point. In two-click mode a
// click after the start sets the end; any other click starts a new pair.
func (m *Machine) Click(p model.Point) State {
	if m.mode == TwoClick && m.State() == StartSet {
		m.pending.End = &p
		return Ready
	}
	m.pending = Pending{Start: &p}
	return StartSet
}

// SetMode switches the capture mode and always clears pending points.
func (m *Machine) SetMode(mode Mode) {
	m.mode = mode
	m.Reset()
}

// Reset clears pending points.
func (m *Machine) Reset() {
	m.pending = Pending{}
}

// CommitEnabled reports whether enough points are captured to commit.
func (m *Machine) CommitEnabled() bool {
	if m.mode == TwoClick {
		return m.State() == Ready
	}
	return m.State() != Empty
}
