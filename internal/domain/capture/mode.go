package capture

import "github.com/okian/pitchlog/internal/domain/model"

// Mode is the number of pitch clicks an event needs.
type Mode int

const (
	OneClick Mode = iota
	TwoClick
)

func (m Mode) String() string {
	if m == TwoClick {
		return "two_click"
	}
	return "one_click"
}

// ResolveMode is the single place that maps a play type to its capture mode.
func ResolveMode(pt model.PlayType) Mode {
	if pt == model.PlayTransition {
		return TwoClick
	}
	return OneClick
}

// NeedsSubtype reports whether the set-piece sub-category selector applies to pt.
func NeedsSubtype(pt model.PlayType) bool {
	return pt == model.PlaySetPiece
}
