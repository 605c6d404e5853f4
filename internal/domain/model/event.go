// Package model contains domain models passed between layers.
package model

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Minute bounds accepted for a recorded event (extra time included).
const (
	MinMinute = 0
	MaxMinute = 120
)

// Direction tells whether the event went for or against the recording team.
type Direction string

const (
	DirectionFor     Direction = "for"
	DirectionAgainst Direction = "against"
)

// Directions lists the selectable directions in display order.
func Directions() []Direction {
	return []Direction{DirectionFor, DirectionAgainst}
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionFor || d == DirectionAgainst
}

// PlayType is the categorical play label. Values are the option values of the
// host form, so they are kept verbatim.
type PlayType string

const (
	PlayPositional      PlayType = "Ataque posicional"
	PlayTransition      PlayType = "Transición"
	PlaySetPiece        PlayType = "ABP"
	PlayBuildUpLoss     PlayType = "Pérdida en salida"
	PlayIndividualError PlayType = "Error individual"
	PlayOther           PlayType = "Otro"
)

// SetPieceSubtypes are the options of the ABP sub-category selector.
func SetPieceSubtypes() []string {
	return []string{"Córner", "Falta directa", "Falta indirecta", "Penalti", "Saque de banda"}
}

// IsSetPieceSubtype reports whether s is a known ABP sub-category.
func IsSetPieceSubtype(s string) bool {
	return slices.Contains(SetPieceSubtypes(), s)
}

// Point is a position on the pitch in percent of its width and height.
type Point struct {
	X float64 `validate:"gte=0,lte=100"`
	Y float64 `validate:"gte=0,lte=100"`
}

// Event is a committed pitch event. It is a value type; copies are independent.
type Event struct {
	Direction Direction `validate:"required,oneof=for against"`
	Minute    int       `validate:"gte=0,lte=120"`
	PlayType  PlayType  `validate:"required"`
	// Subtype is set only for set-piece events.
	Subtype *string
	Start   Point
	// End is set only for transition events.
	End *Point
}

var validate = validator.New()

// Validate checks field ranges and the optional-field invariants:
// End is present iff the play is a transition and Subtype iff it is a set piece.
func (e Event) Validate() error {
	if err := validate.Struct(e); err != nil {
		return errors.Mark(errors.Wrap(err, "event fields"), ErrInvalidEvent)
	}
	if !EnhancedVariant.Allows(e.PlayType) {
		return errors.Wrapf(ErrInvalidEvent, "unknown play type %q", e.PlayType)
	}
	if isTransition := e.PlayType == PlayTransition; isTransition != (e.End != nil) {
		return errors.Wrapf(ErrInvalidEvent, "end point must be set iff play type is %q", PlayTransition)
	}
	hasSubtype := e.Subtype != nil && strings.TrimSpace(*e.Subtype) != ""
	if isSetPiece := e.PlayType == PlaySetPiece; isSetPiece != hasSubtype {
		return errors.Wrapf(ErrInvalidEvent, "subtype must be set iff play type is %q", PlaySetPiece)
	}
	if e.End != nil {
		if err := validate.Struct(*e.End); err != nil {
			return errors.Mark(errors.Wrap(err, "end point"), ErrInvalidEvent)
		}
	}
	return nil
}

// Clone returns a deep copy of e so callers can never alias stored pointers.
func (e Event) Clone() Event {
	out := e
	if e.Subtype != nil {
		s := *e.Subtype
		out.Subtype = &s
	}
	if e.End != nil {
		p := *e.End
		out.End = &p
	}
	return out
}
