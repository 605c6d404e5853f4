package service

import "github.com/cockroachdb/errors"

// Validation failures surfaced to the user as a blocking alert. Pending clicks
// are left untouched when a commit fails with one of these.
var (
	ErrInvalidMinute    = errors.New("invalid minute")
	ErrSubtypeRequired  = errors.New("set-piece subtype required")
	ErrLocationRequired = errors.New("pitch location required")
	ErrEndRequired      = errors.New("transition end required")
)

// Form edits that the current controls do not allow.
var (
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrUnknownPlayType    = errors.New("play type not offered")
	ErrSubtypeUnavailable = errors.New("subtype selector is hidden for this play type")
	ErrUnknownSubtype     = errors.New("unknown set-piece subtype")
)

// ErrNotInitialized is returned by operations that need Init to have run.
var ErrNotInitialized = errors.New("widget not initialized")
