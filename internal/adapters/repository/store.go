// Package repository holds the ordered in-memory list of committed pitch events.
package repository

import (
	"context"

	"github.com/okian/pitchlog/internal/domain/model"
)

// Store provides ordered access to committed events.
//
// Insertion order is display order and serialization order. Indices are
// positional and shift down when an earlier event is deleted.
type Store interface {
	// Append validates e and adds it at the end. Returns its index.
	Append(ctx context.Context, e model.Event) (int, error)

	// Delete removes exactly the event at index i and returns it.
	// Returns ErrIndexOutOfRange if i does not address an event.
	Delete(ctx context.Context, i int) (model.Event, error)

	// Replace swaps the whole list, validating every event first.
	// On error the store is left untouched.
	Replace(ctx context.Context, events []model.Event) error

	// List returns a copy of the events in order.
	List(ctx context.Context) []model.Event

	// Count returns the number of stored events.
	Count(ctx context.Context) int
}
