package tui

import "github.com/cockroachdb/errors"

// ErrNotBound is returned by Run when no widget has been bound.
var ErrNotBound = errors.New("no widget bound to host")
