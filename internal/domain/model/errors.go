package model

import "github.com/cockroachdb/errors"

// Sentinel kinds for model errors.
var (
	ErrInvalidEvent   = errors.New("invalid event")
	ErrUnknownVariant = errors.New("unknown widget variant")
)
