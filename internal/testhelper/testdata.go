// Package testhelper loads testdata fixtures and fakes marketplace endpoints in tests.
package testhelper

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// LoadTestdata loads a file from the calling package's testdata directory.
func LoadTestdata(t *testing.T, filename string) []byte {
	t.Helper()

	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path) //nolint:gosec // Test file paths are controlled
	if err != nil {
		t.Fatalf("Failed to load testdata file %s: %v", path, err)
	}
	return data
}

// LoadJSON loads and unmarshals JSON from a testdata file.
func LoadJSON(t *testing.T, filename string, v any) {
	t.Helper()

	if err := json.Unmarshal(LoadTestdata(t, filename), v); err != nil {
		t.Fatalf("Failed to unmarshal JSON from testdata file %s: %v", filename, err)
	}
}

// Request is one call captured by a Recorder.
type Request struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// Recorder is an httptest server that records requests and answers them with
// a handler chosen by the caller.
type Recorder struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
}

// NewRecorder starts a server that records each request and then calls handler.
// The server is closed when the test ends.
func NewRecorder(t *testing.T, handler func(w http.ResponseWriter, r *Request)) *Recorder {
	t.Helper()

	rec := &Recorder{}
	rec.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		req := Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		}
		rec.mu.Lock()
		rec.requests = append(rec.requests, req)
		rec.mu.Unlock()

		handler(w, &req)
	}))
	t.Cleanup(rec.Close)
	return rec
}

// Requests returns the captured requests in arrival order.
func (r *Recorder) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.requests...)
}

// WriteJSON answers with v encoded as JSON.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
