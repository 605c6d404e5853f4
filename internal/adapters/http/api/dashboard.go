package api

import (
	"net/http"

	"github.com/okian/pitchlog/internal/adapters/http/htmlview"
	"github.com/okian/pitchlog/internal/domain/view"
)

// dashboardHandler renders the published event list as the host page would show it.
type dashboardHandler struct {
	source SnapshotSource
	labels view.Labels
}

func newDashboardHandler(source SnapshotSource, labels view.Labels) *dashboardHandler {
	return &dashboardHandler{source: source, labels: labels}
}

// HandleDashboard handles GET /dashboard requests.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.source.Snapshot()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no_snapshot", ErrNoSnapshot)
		return
	}

	renderer := htmlview.New(h.labels)
	renderer.RenderEvents(view.BuildRows(snap.Events, h.labels))
	renderer.SetValue(snap.Hidden)
	if err := renderer.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "render", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<!doctype html>\n<title>pitchlog</title>\n" + renderer.Events() + "\n" + renderer.Hidden() + "\n"))
}
