package repository

import "github.com/cockroachdb/errors"

// Sentinel kinds for event store errors.
var (
	ErrIndexOutOfRange = errors.New("event index out of range")
	ErrStoreFull       = errors.New("event store is full")
)
