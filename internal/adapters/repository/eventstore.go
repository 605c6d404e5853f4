package repository

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/pkg/metrics"
)

// EventStore is a slice-backed Store. Duplicates are allowed.
//
// It is not synchronized: the widget touches it only from its own handlers.
type EventStore struct {
	events    []model.Event
	maxEvents int
}

var _ Store = (*EventStore)(nil)

// NewEventStore creates an empty store.
func NewEventStore(_ context.Context, opts ...Option) *EventStore {
	s := &EventStore{events: []model.Event{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append implements Store.
func (s *EventStore) Append(_ context.Context, e model.Event) (int, error) {
	if err := e.Validate(); err != nil {
		return -1, err
	}
	if s.maxEvents > 0 && len(s.events) >= s.maxEvents {
		return -1, errors.Wrapf(ErrStoreFull, "limit %d", s.maxEvents)
	}
	s.events = append(s.events, e.Clone())
	metrics.UpdateRecordedEvents(len(s.events))
	return len(s.events) - 1, nil
}

// Delete implements Store.
func (s *EventStore) Delete(_ context.Context, i int) (model.Event, error) {
	if i < 0 || i >= len(s.events) {
		return model.Event{}, errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, len(s.events))
	}
	removed := s.events[i]
	s.events = slices.Delete(s.events, i, i+1)
	metrics.UpdateRecordedEvents(len(s.events))
	return removed, nil
}

// Replace implements Store.
func (s *EventStore) Replace(_ context.Context, events []model.Event) error {
	if s.maxEvents > 0 && len(events) > s.maxEvents {
		return errors.Wrapf(ErrStoreFull, "%d events, limit %d", len(events), s.maxEvents)
	}
	next := make([]model.Event, 0, len(events))
	for i, e := range events {
		if err := e.Validate(); err != nil {
			return errors.Wrapf(err, "event %d", i)
		}
		next = append(next, e.Clone())
	}
	s.events = next
	metrics.UpdateRecordedEvents(len(s.events))
	return nil
}

// List implements Store.
func (s *EventStore) List(_ context.Context) []model.Event {
	out := make([]model.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out
}

// Count implements Store.
func (s *EventStore) Count(_ context.Context) int {
	return len(s.events)
}
