package iam

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is one call received by fakeIAM
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// fakeIAM is an httptest server standing in for the IAM API
type fakeIAM struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest

	// createStatus and createBody answer the create-application call
	createStatus int
	createBody   string

	// roleStatus answers the n-th assignRoles call (0-based); missing
	// entries default to 200
	roleStatus map[int]int
	roleCalls  int
}

func newFakeIAM(t *testing.T) *fakeIAM {
	f := &fakeIAM{
		t:            t,
		createStatus: http.StatusCreated,
		createBody:   `{"id":"a1","clientId":"c1","secret":"s1"}`,
		roleStatus:   map[int]int{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeIAM) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	assert.NoError(f.t, err)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == createApplicationPath:
		w.WriteHeader(f.createStatus)
		_, _ = w.Write([]byte(f.createBody))
	case strings.HasSuffix(r.URL.Path, "/assignRoles"):
		f.mu.Lock()
		status, ok := f.roleStatus[f.roleCalls]
		f.roleCalls++
		f.mu.Unlock()
		if !ok {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeIAM) URL() string {
	return f.server.URL
}

func (f *fakeIAM) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeIAM) RequestsTo(suffix string) []recordedRequest {
	var out []recordedRequest
	for _, r := range f.Requests() {
		if strings.HasSuffix(r.Path, suffix) {
			out = append(out, r)
		}
	}
	return out
}

func decodeJSON(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}
