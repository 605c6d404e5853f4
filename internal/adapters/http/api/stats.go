package api

import (
	"net/http"
	"time"

	"github.com/okian/pitchlog/internal/domain/analytics"
)

// StatsHandler handles stats requests.
type StatsHandler struct {
	source SnapshotSource
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(source SnapshotSource) *StatsHandler {
	return &StatsHandler{source: source}
}

type statsResponse struct {
	SessionID string            `json:"session_id"`
	Events    int               `json:"events"`
	UpdatedAt string            `json:"updated_at"`
	Summary   analytics.Summary `json:"summary"`
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.source.Snapshot()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no_snapshot", ErrNoSnapshot)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		SessionID: snap.SessionID,
		Events:    len(snap.Events),
		UpdatedAt: snap.UpdatedAt.Format(time.RFC3339),
		Summary:   snap.Summary,
	})
}
