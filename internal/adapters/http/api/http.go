// Package api serves the read-only monitoring endpoints: health, Prometheus
// metrics and the last event list the widget published.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/adapters/http/swagger"
	"github.com/okian/pitchlog/internal/domain/view"
	"github.com/okian/pitchlog/pkg/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 3 * time.Second
)

// SnapshotSource provides the last published widget state. Implementations
// must be safe to call from the HTTP goroutines.
type SnapshotSource interface {
	Snapshot() (Snapshot, bool)
}

// Server wires HTTP routes for the monitoring API.
type Server struct {
	healthHandler    *HealthHandler
	metricsHandler   http.Handler
	eventsHandler    *EventsHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers. labels localize the
// dashboard rows.
func NewServer(source SnapshotSource, labels view.Labels) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		metricsHandler:   NewMetricsHandler(),
		eventsHandler:    NewEventsHandler(source),
		statsHandler:     NewStatsHandler(source),
		dashboardHandler: newDashboardHandler(source, labels),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.metricsHandler)
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleGetEvents, "events"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	swagger.Register(ctx, mux)
}

// ListenAndServe serves the routes on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string, log logger.Logger) error {
	mux := http.NewServeMux()
	s.Register(ctx, mux)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "monitoring server listening", logger.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Mark(errors.Wrapf(err, "listen on %s", addr), ErrServe)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Mark(errors.Wrap(err, "shutdown"), ErrServe)
		}
		log.Info(ctx, "monitoring server stopped")
		return nil
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
