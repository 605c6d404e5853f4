package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/okian/pitchlog/internal/adapters/formfield"
	"github.com/okian/pitchlog/internal/domain/analytics"
	"github.com/okian/pitchlog/internal/domain/model"
)

// Snapshot is the widget state as of its last hidden field write.
type Snapshot struct {
	SessionID string
	Hidden    string
	Events    []model.Event
	Summary   analytics.Summary
	UpdatedAt time.Time
}

// Publisher receives hidden field values from the widget's event loop and
// hands immutable snapshots to the HTTP goroutines.
type Publisher struct {
	sessionID string
	current   atomic.Pointer[Snapshot]
}

var _ SnapshotSource = (*Publisher)(nil)

// NewPublisher creates a publisher for one widget session.
func NewPublisher(sessionID string) *Publisher {
	return &Publisher{sessionID: sessionID}
}

// SetValue publishes a new hidden field value. Values that do not decode are
// ignored; the previous snapshot stays current.
func (p *Publisher) SetValue(value string) {
	events, err := formfield.Decode(value)
	if err != nil {
		return
	}
	p.current.Store(&Snapshot{
		SessionID: p.sessionID,
		Hidden:    value,
		Events:    events,
		Summary:   analytics.Summarize(events),
		UpdatedAt: time.Now().UTC(),
	})
}

// Snapshot returns the last published snapshot.
func (p *Publisher) Snapshot() (Snapshot, bool) {
	s := p.current.Load()
	if s == nil {
		return Snapshot{}, false
	}
	return *s, true
}

// EventsHandler serves the published hidden field value.
type EventsHandler struct {
	source SnapshotSource
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(source SnapshotSource) *EventsHandler {
	return &EventsHandler{source: source}
}

// HandleGetEvents handles GET /events requests. The body is the hidden field
// value exactly as the host form would submit it.
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.source.Snapshot()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no_snapshot", ErrNoSnapshot)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(snap.Hidden))
}
