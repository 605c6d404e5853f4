// Package swagger serves the OpenAPI description of the monitoring endpoints.
package swagger

import (
	"context"
	_ "embed"
	"net/http"
)

// OpenAPI contains the embedded OpenAPI YAML specification.
//
//go:embed openapi.yaml
var OpenAPI []byte

// Register attaches the OpenAPI routes to mux.
// Routes:
//
//	GET /openapi.yaml -> embedded OpenAPI spec
//	GET /api-docs     -> index linking the spec and the endpoints
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})
}

const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>pitchlog monitoring API</title>
  </head>
  <body>
    <h1>pitchlog monitoring API</h1>
    <ul id="api-docs">
      <li><a href="/openapi.yaml">OpenAPI spec</a></li>
      <li><a href="/healthz">/healthz</a></li>
      <li><a href="/events">/events</a></li>
      <li><a href="/stats">/stats</a></li>
      <li><a href="/dashboard">/dashboard</a></li>
      <li><a href="/metrics">/metrics</a></li>
    </ul>
  </body>
</html>`
