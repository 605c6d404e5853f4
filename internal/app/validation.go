package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/adapters/repository"
	"github.com/okian/pitchlog/internal/domain/capture"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/domain/view"
)

// ParseMinute reads the minute field. The value must be a whole number in
// [0,120]; "34", " 34 " and "34.0" are accepted, "", "34.5" and "abc" are not.
func ParseMinute(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrInvalidMinute, "empty")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidMinute, "%q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errors.Wrapf(ErrInvalidMinute, "%q is not a whole number", s)
	}
	if f < model.MinMinute || f > model.MaxMinute {
		return 0, errors.Wrapf(ErrInvalidMinute, "%q out of range", s)
	}
	return int(f), nil
}

// ValidateForm runs the commit checks in order and stops at the first failure:
// minute, set-piece subtype, start location, transition end.
func ValidateForm(f Form, p capture.Pending, mode capture.Mode) (int, error) {
	minute, err := ParseMinute(f.Minute)
	if err != nil {
		return 0, err
	}
	if capture.NeedsSubtype(f.PlayType) && strings.TrimSpace(f.Subtype) == "" {
		return 0, ErrSubtypeRequired
	}
	if p.Start == nil {
		return 0, ErrLocationRequired
	}
	if mode == capture.TwoClick && p.End == nil {
		return 0, ErrEndRequired
	}
	return minute, nil
}

// AlertMessage returns the user-facing text for a commit or form error.
// Errors without a dedicated label get the generic InvalidInput text.
func AlertMessage(err error, l view.Labels) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidMinute):
		return l.InvalidMinute
	case errors.Is(err, ErrSubtypeRequired):
		return l.SubtypeRequired
	case errors.Is(err, ErrLocationRequired):
		return l.LocationRequired
	case errors.Is(err, ErrEndRequired):
		return l.EndRequired
	case errors.Is(err, repository.ErrIndexOutOfRange):
		return l.IndexOutOfRange
	case errors.Is(err, repository.ErrStoreFull):
		return l.StoreFull
	case errors.Is(err, ErrUnknownPlayType):
		return l.UnknownPlayType
	default:
		return l.InvalidInput
	}
}

// Reason returns a stable snake_case label for a widget error. It is the
// metrics label for rejected commits and the key replay scripts match on.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidMinute):
		return "invalid_minute"
	case errors.Is(err, ErrSubtypeRequired):
		return "subtype_required"
	case errors.Is(err, ErrLocationRequired):
		return "location_required"
	case errors.Is(err, ErrEndRequired):
		return "end_required"
	case errors.Is(err, repository.ErrStoreFull):
		return "store_full"
	case errors.Is(err, repository.ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, ErrSubtypeUnavailable):
		return "subtype_unavailable"
	case errors.Is(err, ErrUnknownSubtype):
		return "unknown_subtype"
	case errors.Is(err, ErrUnknownPlayType):
		return "unknown_play_type"
	case errors.Is(err, ErrInvalidDirection):
		return "invalid_direction"
	case err == nil:
		return ""
	default:
		return "other"
	}
}
