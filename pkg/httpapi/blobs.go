package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cuemby/chainsaw/pkg/chainsaw"
)

const maxBlobBytes = 64 << 20 // 64MiB per request body

// handlePutBlob stores the request body under a caller-supplied ObjectID:
// PUT /blobs/{ns}/{id}?label=name=value&label=...
func (s *Server) handlePutBlob(w http.ResponseWriter, r *http.Request) {
	ns, id, err := s.pathNamespaceAndID(w, r)
	if err != nil {
		return
	}
	labels, err := parseLabelParams(r.URL.Query()["label"])
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxBlobBytes+1))
	if err != nil || len(blob) > maxBlobBytes {
		writeBadRequest(w, "body too large or unreadable")
		return
	}

	namespace, err := s.db.OpenNamespace(ns)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := namespace.InsertWithID(r.Context(), id, blob, labels); err != nil {
		writeErr(w, err)
		return
	}
	refreshNamespaceGauges(namespace)
	w.WriteHeader(http.StatusNoContent)
}

// handleInsertBlob auto-assigns an ObjectID: POST /blobs/{ns}
func (s *Server) handleInsertBlob(w http.ResponseWriter, r *http.Request) {
	ns := r.PathValue("ns")
	labels, err := parseLabelParams(r.URL.Query()["label"])
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxBlobBytes+1))
	if err != nil || len(blob) > maxBlobBytes {
		writeBadRequest(w, "body too large or unreadable")
		return
	}

	namespace, err := s.db.OpenNamespace(ns)
	if err != nil {
		writeErr(w, err)
		return
	}
	id, err := namespace.Insert(r.Context(), blob, labels)
	if err != nil {
		writeErr(w, err)
		return
	}
	refreshNamespaceGauges(namespace)
	writeJSON(w, http.StatusCreated, map[string]uint64{"id": id})
}

func (s *Server) handleGetBlob(w http.ResponseWriter, r *http.Request) {
	ns, id, err := s.pathNamespaceAndID(w, r)
	if err != nil {
		return
	}
	namespace, err := s.db.OpenNamespace(ns)
	if err != nil {
		writeErr(w, err)
		return
	}
	blob, ok, err := namespace.Get(id)
	if err != nil {
		writeErr(w, err)
		return
	}
	if !ok {
		writeErr(w, &chainsaw.Error{Kind: chainsaw.KindNotFound, Namespace: ns, Op: "get", Cause: fmt.Errorf("object %d not found", id)})
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

func (s *Server) handleDeleteBlob(w http.ResponseWriter, r *http.Request) {
	ns, id, err := s.pathNamespaceAndID(w, r)
	if err != nil {
		return
	}
	namespace, err := s.db.OpenNamespace(ns)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := namespace.Delete(r.Context(), []uint64{id}); err != nil {
		writeErr(w, err)
		return
	}
	refreshNamespaceGauges(namespace)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) pathNamespaceAndID(w http.ResponseWriter, r *http.Request) (string, uint64, error) {
	ns := r.PathValue("ns")
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "id must be a non-negative integer")
		return "", 0, err
	}
	return ns, id, nil
}
