package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/pitchlog/pkg/metrics"
)

// MetricsMiddleware serves next for GET requests only and records the request
// count and latency per endpoint. Every route is read-only, so other methods
// get 404 like an unknown path.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		if r.Method == http.MethodGet {
			next.ServeHTTP(rec, r)
		} else {
			http.NotFound(rec, r)
		}

		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status,
			float64(time.Since(start).Microseconds())/1000)
	}
}

// statusRecorder remembers the status code the handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
