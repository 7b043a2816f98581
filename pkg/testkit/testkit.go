// Package testkit provides shared helpers for service and handler tests:
// an in-memory database, JSON request plumbing and a stub transport for
// outbound gateway calls.
package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/quodex/invizo/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB opens a fresh in-memory sqlite database and migrates the given
// models. Each call gets its own database so tests stay isolated.
func NewDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err, "open in-memory database")

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...), "migrate test schema")
	}
	return db
}

// DoJSON sends a JSON request through handler. body may be nil; token, if
// non-empty, is sent as a bearer token.
func DoJSON(t *testing.T, handler http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// Envelope mirrors the standard response wrapper for assertions.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// DecodeEnvelope parses a recorded response body.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "decode response envelope: %s", rec.Body.String())
	return env
}

// StubTransport is an http.RoundTripper that answers outbound calls with
// canned JSON, matched by URL path suffix. Install it on the shared
// client's Transport; Calls records every request for later assertions.
type StubTransport struct {
	mu        sync.Mutex
	responses map[string]stubResponse
	Calls     []*http.Request
	Bodies    [][]byte
}

type stubResponse struct {
	status int
	body   string
}

func NewStubTransport() *StubTransport {
	return &StubTransport{responses: map[string]stubResponse{}}
}

// Respond registers a canned response for requests whose path ends in
// pathSuffix.
func (s *StubTransport) Respond(pathSuffix string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[pathSuffix] = stubResponse{status: status, body: body}
}

func (s *StubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw []byte
	if req.Body != nil {
		raw, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}
	s.Calls = append(s.Calls, req)
	s.Bodies = append(s.Bodies, raw)

	for suffix, resp := range s.responses {
		if strings.HasSuffix(req.URL.Path, suffix) {
			return &http.Response{
				StatusCode: resp.status,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(strings.NewReader(resp.body)),
				Request:    req,
			}, nil
		}
	}

	return &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(`{"error":"no stub for path"}`)),
		Request:    req,
	}, nil
}
