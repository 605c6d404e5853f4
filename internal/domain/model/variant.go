package model

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Variant selects which widget flavour is active. The enhanced widget offers
// transitions and set pieces; the legacy one only single-click play types.
type Variant string

const (
	EnhancedVariant Variant = "enhanced"
	LegacyVariant   Variant = "legacy"
)

// ParseVariant maps a config value to a Variant. Empty means enhanced.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "", EnhancedVariant:
		return EnhancedVariant, nil
	case LegacyVariant:
		return LegacyVariant, nil
	default:
		return "", errors.Wrapf(ErrUnknownVariant, "%q", s)
	}
}

// PlayTypes returns the play-type options offered by the variant, in display order.
func (v Variant) PlayTypes() []PlayType {
	if v == LegacyVariant {
		return []PlayType{PlayPositional, PlayBuildUpLoss, PlayIndividualError, PlayOther}
	}
	return []PlayType{PlayPositional, PlayTransition, PlaySetPiece, PlayBuildUpLoss, PlayIndividualError, PlayOther}
}

// Allows reports whether pt is offered by the variant.
func (v Variant) Allows(pt PlayType) bool {
	return slices.Contains(v.PlayTypes(), pt)
}

// HasSubtypes reports whether the variant renders the set-piece sub-category selector.
func (v Variant) HasSubtypes() bool {
	return v.Allows(PlaySetPiece)
}
