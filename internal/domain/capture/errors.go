package capture

import "github.com/cockroachdb/errors"

// Sentinel kinds for capture errors.
var (
	ErrEmptyRect = errors.New("pitch has no visible area")
)
