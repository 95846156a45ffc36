package httpapi

import (
	"net/http"

	"github.com/cuemby/chainsaw/pkg/metrics"
	"github.com/cuemby/chainsaw/pkg/namespace"
)

func (s *Server) handleListNamespaces(w http.ResponseWriter, r *http.Request) {
	names, err := s.db.ListNamespaces()
	if err != nil {
		writeErr(w, err)
		return
	}
	metrics.NamespacesTotal.Set(float64(len(names)))
	writeJSON(w, http.StatusOK, map[string][]string{"namespaces": names})
}

func (s *Server) handleCreateNamespace(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("ns")
	nsHandle, err := s.db.OpenNamespace(ns)
	if err != nil {
		writeErr(w, err)
		return
	}
	refreshNamespaceGauges(nsHandle)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDropNamespace(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("ns")
	if err := s.db.DropNamespace(ns); err != nil {
		writeErr(w, err)
		return
	}
	metrics.ObjectsTotal.DeleteLabelValues(ns)
	metrics.LabelsTotal.DeleteLabelValues(ns)
	w.WriteHeader(http.StatusNoContent)
}

// refreshNamespaceGauges republishes chainsaw_objects_total and
// chainsaw_labels_total for ns after a structural operation, mirroring the
// teacher's pattern of updating gauges inline at the handler that changed
// the underlying count rather than through a polling collector. Stats
// failures are not fatal to the request that triggered them — the gauge
// just goes stale until the next successful refresh.
func refreshNamespaceGauges(ns *namespace.Namespace) {
	stats, err := ns.Stats()
	if err != nil {
		return
	}
	metrics.ObjectsTotal.WithLabelValues(ns.Name()).Set(float64(stats.Data.Len))
	metrics.LabelsTotal.WithLabelValues(ns.Name()).Set(float64(stats.Labels.Len))
}
