package repository

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/domain/model"
)

func event(minute int) model.Event {
	return model.Event{
		Direction: model.DirectionFor,
		Minute:    minute,
		PlayType:  model.PlayPositional,
		Start:     model.Point{X: 50, Y: 50},
	}
}

func minutes(events []model.Event) []int {
	out := make([]int, len(events))
	for i, e := range events {
		out[i] = e.Minute
	}
	return out
}

func TestEventStore_AppendKeepsCommitOrder(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore(ctx)

	for i, m := range []int{5, 90, 5, 33} {
		idx, err := store.Append(ctx, event(m))
		if err != nil {
			t.Fatalf("append %d: unexpected error: %v", m, err)
		}
		if idx != i {
			t.Errorf("expected index %d, got %d", i, idx)
		}
	}

	if count := store.Count(ctx); count != 4 {
		t.Fatalf("expected count 4, got %d", count)
	}
	got := minutes(store.List(ctx))
	want := []int{5, 90, 5, 33}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected minute %d, got %d", i, want[i], got[i])
		}
	}
}

func TestEventStore_AppendRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore(ctx)

	bad := event(121)
	if _, err := store.Append(ctx, bad); !errors.Is(err, model.ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected empty store, got %d", count)
	}
}

func TestEventStore_DeleteShiftsLaterIndices(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore(ctx)
	for _, m := range []int{1, 2, 3, 4} {
		if _, err := store.Append(ctx, event(m)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	removed, err := store.Delete(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.Minute != 2 {
		t.Errorf("expected to remove minute 2, got %d", removed.Minute)
	}

	got := minutes(store.List(ctx))
	want := []int{1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected minute %d, got %d", i, want[i], got[i])
		}
	}
}

func TestEventStore_DeleteOutOfRange(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore(ctx)
	if _, err := store.Append(ctx, event(10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, i := range []int{-1, 1, 7} {
		if _, err := store.Delete(ctx, i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("index %d: expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected store untouched, got count %d", count)
	}
}

func TestEventStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore(ctx)
	e := event(10)
	e.PlayType = model.PlayTransition
	e.End = &model.Point{X: 1, Y: 1}
	if _, err := store.Append(ctx, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.End.X = 50
	listed := store.List(ctx)
	listed[0].End.X = 70
	listed[0].Minute = 99

	again := store.List(ctx)
	if again[0].End.X != 1 || again[0].Minute != 10 {
		t.Errorf("store was mutated through an alias: %+v", again[0])
	}
}

func TestEventStore_Replace(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore(ctx, WithCapacity(4))
	if _, err := store.Append(ctx, event(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Replace(ctx, []model.Event{event(7), event(121)}); err == nil {
		t.Fatal("expected replace with an invalid event to fail")
	}
	if got := minutes(store.List(ctx)); len(got) != 1 || got[0] != 1 {
		t.Errorf("failed replace must leave the store untouched, got %v", got)
	}

	if err := store.Replace(ctx, []model.Event{event(7), event(8)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := minutes(store.List(ctx)); len(got) != 2 || got[0] != 7 || got[1] != 8 {
		t.Errorf("unexpected contents after replace: %v", got)
	}
}

func TestEventStore_MaxEvents(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore(ctx, WithMaxEvents(1))
	if _, err := store.Append(ctx, event(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Append(ctx, event(2)); !errors.Is(err, ErrStoreFull) {
		t.Errorf("expected ErrStoreFull, got %v", err)
	}
}
