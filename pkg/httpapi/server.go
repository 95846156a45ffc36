// Package httpapi is chainsaw's external HTTP surface: namespace
// management, blob insert/get/delete, and label queries, plus health,
// readiness, and metrics endpoints. Built on Go's 1.22+ pattern-based
// http.ServeMux, following the teacher's pkg/api/health.go (also a
// hand-rolled mux, no router dependency) — now the sole external API since
// the teacher's gRPC surface is dropped (see DESIGN.md).
package httpapi

import (
	"net/http"
	"time"

	"github.com/cuemby/chainsaw/pkg/chainsaw"
	"github.com/cuemby/chainsaw/pkg/metrics"
)

// Server wraps a *chainsaw.DB with the HTTP surface in front of it.
type Server struct {
	db      *chainsaw.DB
	mux     *http.ServeMux
	started time.Time
}

// New builds the routed mux for db. The returned Server is also an
// http.Handler, suitable for http.ListenAndServe or embedding in tests via
// httptest.NewServer.
func New(db *chainsaw.DB) *Server {
	s := &Server{db: db, mux: http.NewServeMux(), started: time.Now()}

	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /readyz", s.handleReadyz)
	s.mux.Handle("GET /metrics", metrics.Handler())

	s.mux.HandleFunc("GET /namespaces", s.handleListNamespaces)
	s.mux.HandleFunc("PUT /namespaces/{ns}", s.handleCreateNamespace)
	s.mux.HandleFunc("DELETE /namespaces/{ns}", s.handleDropNamespace)

	s.mux.HandleFunc("PUT /blobs/{ns}/{id}", s.handlePutBlob)
	s.mux.HandleFunc("GET /blobs/{ns}/{id}", s.handleGetBlob)
	s.mux.HandleFunc("DELETE /blobs/{ns}/{id}", s.handleDeleteBlob)
	s.mux.HandleFunc("POST /blobs/{ns}", s.handleInsertBlob)

	s.mux.HandleFunc("GET /labels/{ns}", s.handleQuery)

	return s
}

// ServeHTTP lets Server itself be passed wherever an http.Handler is
// expected; middleware wraps this, not the bare mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WithMiddleware(s.mux).ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on addr, mirroring the teacher's
// pkg/api/health.go timeouts.
func (s *Server) ListenAndServe(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}
