package httpapi

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse is the /healthz body: chainsaw has no external
// dependencies to probe, so liveness only ever reports the process is up.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// ReadyResponse is the /readyz body.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(s.started).String(),
	})
}

// handleReadyz reports ready once the database file opened successfully;
// chainsaw has no cluster membership or leader election to wait on, unlike
// the teacher's Raft-gated /ready check.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := "ready"
	code := http.StatusOK

	if s.db == nil {
		checks["database"] = "not initialized"
		status = "not ready"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, ReadyResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
