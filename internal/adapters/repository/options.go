package repository

import "github.com/okian/pitchlog/internal/domain/model"

// Option applies a configuration option to the EventStore.
type Option func(*EventStore)

// WithCapacity preallocates room for n events.
func WithCapacity(n int) Option {
	return func(s *EventStore) {
		if n > 0 {
			s.events = make([]model.Event, 0, n)
		}
	}
}

// WithMaxEvents caps the list length; Append fails with ErrStoreFull beyond it.
// Zero or negative means unbounded.
func WithMaxEvents(n int) Option {
	return func(s *EventStore) {
		s.maxEvents = n
	}
}
