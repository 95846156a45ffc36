package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cuemby/chainsaw/pkg/chainsaw"
	"github.com/cuemby/chainsaw/pkg/httpapi"
	"github.com/cuemby/chainsaw/pkg/log"
)

func init() {
	log.Init(log.Config{Level: log.ErrorLevel, Output: io.Discard})
}

func newTestServer(t *testing.T) (*httptest.Server, *chainsaw.DB) {
	t.Helper()
	dir := t.TempDir()
	db, err := chainsaw.Open(filepath.Join(dir, "chainsaw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := httptest.NewServer(httpapi.New(db))
	t.Cleanup(srv.Close)
	return srv, db
}

func TestHealthzReportsHealthy(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body httpapi.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "healthy", body.Status)
}

func TestReadyzReportsReady(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEveryResponseCarriesRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestNamespaceLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/namespaces/widgets", nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/namespaces")
	require.NoError(t, err)
	defer resp.Body.Close()
	var listed map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Contains(t, listed["namespaces"], "widgets")

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/namespaces/widgets", nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestNamespaceCreateRejectsReservedName(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/namespaces/namespaces", nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "bad_namespace_name", body["error_kind"])
}

func TestBlobInsertGetDeleteRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	resp, err := client.Post(srv.URL+"/blobs/photos?label=content_type=image/png", "application/octet-stream", bytes.NewReader([]byte("pngdata")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var inserted map[string]uint64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&inserted))
	id := inserted["id"]

	getResp, err := client.Get(srv.URL + "/blobs/photos/" + itoa(id))
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	body, err := io.ReadAll(getResp.Body)
	require.NoError(t, err)
	require.Equal(t, "pngdata", string(body))

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/blobs/photos/"+itoa(id), nil)
	delResp, err := client.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	getResp2, err := client.Get(srv.URL + "/blobs/photos/" + itoa(id))
	require.NoError(t, err)
	defer getResp2.Body.Close()
	require.Equal(t, http.StatusNotFound, getResp2.StatusCode)
}

func TestBlobPutWithCallerID(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/blobs/photos/42?label=kind=thumb", bytes.NewReader([]byte("thumb-bytes")))
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Re-PUT with the same ID collides.
	req2, _ := http.NewRequest(http.MethodPut, srv.URL+"/blobs/photos/42?label=kind=thumb", bytes.NewReader([]byte("other")))
	resp2, err := client.Do(req2)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestQueryReturnsMatchingIDs(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	post := func(label string) uint64 {
		resp, err := client.Post(srv.URL+"/blobs/photos?label="+label, "application/octet-stream", bytes.NewReader([]byte("x")))
		require.NoError(t, err)
		defer resp.Body.Close()
		var body map[string]uint64
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body["id"]
	}
	png := post("content_type=image/png")
	_ = post("content_type=text/plain")

	resp, err := client.Get(srv.URL + "/labels/photos?include=content_type=image/png")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string][]uint64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Equal(t, []uint64{png}, result["ids"])
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func TestRequestIDLoggerDoesNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		log.WithRequestID("x").Info().Msg("noop")
	})
}
