// Package rdbtest contains a fake database server, simple mocks for common
// interfaces, and other test utilities.
package rdbtest

import (
	"maps"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/AdguardTeam/golibs/httphdr"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/replitdb/internal/rdbhttp"
	"github.com/AdguardTeam/replitdb/keycodec"
	"github.com/stretchr/testify/require"
)

// BasePath is the path of the database on the test server, imitating the
// token that real database URLs carry.
const BasePath = "/v0/test-token"

// Hook is called by [Server] before handling each request.  If it returns
// true, the request is considered handled.
type Hook func(w http.ResponseWriter, r *http.Request) (handled bool)

// Server is an in-memory imitation of the Replit database HTTP API.
type Server struct {
	// URL is the base database URL of the server.
	URL *url.URL

	mu       *sync.Mutex
	data     map[string]string
	hook     Hook
	requests []string
}

// NewServer starts a new *Server with a copy of data and stops it on test
// cleanup.
func NewServer(tb testing.TB, data map[string]string) (s *Server) {
	tb.Helper()

	s = &Server{
		mu:   &sync.Mutex{},
		data: maps.Clone(data),
	}

	if s.data == nil {
		s.data = map[string]string{}
	}

	srv := httptest.NewServer(s)
	tb.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL + BasePath)
	require.NoError(tb, err)

	s.URL = u

	return s
}

// SetHook sets the hook called before handling requests.  h may be nil.
func (s *Server) SetHook(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hook = h
}

// Data returns a copy of the stored data.
func (s *Server) Data() (data map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.data)
}

// Put stores a value directly, without a request.
func (s *Server) Put(key, val string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = val
}

// Remove removes a value directly, without a request.
func (s *Server) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
}

// Requests returns the method and the escaped request URI of every request
// received so far, such as "GET /v0/test-token/a%2F1".
func (s *Server) Requests() (reqs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.requests)
}

// type check
var _ http.Handler = (*Server)(nil)

// ServeHTTP implements the [http.Handler] interface for *Server.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())
	hook := s.hook
	s.mu.Unlock()

	if hook != nil && hook(w, r) {
		return
	}

	rest, ok := strings.CutPrefix(r.URL.EscapedPath(), BasePath)
	if !ok {
		http.Error(w, "unknown path", http.StatusBadRequest)

		return
	}

	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		s.serveCollection(w, r)

		return
	}

	key, err := url.PathUnescape(rest)
	if err != nil {
		http.Error(w, "bad key", http.StatusBadRequest)

		return
	}

	s.serveKey(w, r, key)
}

// serveCollection handles listing and setting.
func (s *Server) serveCollection(w http.ResponseWriter, r *http.Request) {
	pt := testutil.PanicT{}

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		require.Equal(pt, "true", q.Get("encode"))

		s.writeText(w, http.StatusOK, s.list(q.Get("prefix")))
	case http.MethodPost:
		require.Equal(pt, rdbhttp.HdrValApplicationFormURLEncoded, r.Header.Get(httphdr.ContentType))
		require.NoError(pt, r.ParseForm())

		s.mu.Lock()
		for k, v := range r.PostForm {
			s.data[k] = v[len(v)-1]
		}
		s.mu.Unlock()

		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// list returns the encoded newline-separated keys with prefix.
func (s *Server) list(prefix string) (body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for _, k := range slices.Sorted(maps.Keys(s.data)) {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, keycodec.Encode(k))
		}
	}

	return strings.Join(keys, "\n")
}

// serveKey handles getting and deleting key.
func (s *Server) serveKey(w http.ResponseWriter, r *http.Request, key string) {
	s.mu.Lock()
	val, ok := s.data[key]
	if ok && r.Method == http.MethodDelete {
		delete(s.data, key)
	}
	s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)

			return
		}

		s.writeText(w, http.StatusOK, val)
	case http.MethodDelete:
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// writeText writes a plain-text response.
func (s *Server) writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set(httphdr.ContentType, rdbhttp.HdrValTextPlain)
	w.WriteHeader(code)

	_, err := w.Write([]byte(body))
	require.NoError(testutil.PanicT{}, err)
}

// RespondWith returns a hook that responds to every request matching method
// with code and body.  An empty method matches every request.
func RespondWith(method string, code int, body string) (h Hook) {
	return func(w http.ResponseWriter, r *http.Request) (handled bool) {
		if method != "" && r.Method != method {
			return false
		}

		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))

		return true
	}
}
