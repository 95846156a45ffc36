package httpapi

import (
	"net/http"

	"github.com/cuemby/chainsaw/pkg/query"
)

// handleQuery evaluates a label query against a namespace:
// GET /labels/{ns}?include=name=value&exclude=name=value&prefix=name
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("ns")
	namespace, err := s.db.OpenNamespace(ns)
	if err != nil {
		writeErr(w, err)
		return
	}

	include, err := parseLabelParams(r.URL.Query()["include"])
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	exclude, err := parseLabelParams(r.URL.Query()["exclude"])
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	ids, err := namespace.Query(query.Request{
		Include:       include,
		Exclude:       exclude,
		IncludePrefix: r.URL.Query()["prefix"],
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]uint64{"ids": ids})
}
