package api

import "github.com/cockroachdb/errors"

// Sentinel kinds for API errors.
var (
	ErrServe      = errors.New("monitoring server failed")
	ErrNoSnapshot = errors.New("no widget snapshot published yet")
)
