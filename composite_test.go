package replitdb_test

import (
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/replitdb"
	"github.com/AdguardTeam/replitdb/internal/rdbtest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testData is the common data for composite operation tests.
var testData = map[string]string{
	"a/1":        "1",
	"a/2":        "2",
	"b/1":        "3",
	"with space": "",
	"k=v&x":      "line\nbreak",
}

func TestClient_GetAll(t *testing.T) {
	testCases := []struct {
		name    string
		maxConc int
	}{{
		name:    "sequential",
		maxConc: 0,
	}, {
		name:    "parallel",
		maxConc: 3,
	}, {
		name:    "parallel_wide",
		maxConc: 100,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := rdbtest.NewServer(t, testData)
			c := newTestClient(t, srv, &replitdb.ClientConfig{
				MaxConcurrency: tc.maxConc,
			})

			kvs, err := c.GetAll(testutil.ContextWithTimeout(t, testTimeout))
			require.NoError(t, err)

			if diff := cmp.Diff(testData, kvs); diff != "" {
				t.Errorf("GetAll() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("empty_db", func(t *testing.T) {
		srv := rdbtest.NewServer(t, nil)
		c := newTestClient(t, srv, nil)

		kvs, err := c.GetAll(testutil.ContextWithTimeout(t, testTimeout))
		require.NoError(t, err)

		assert.Empty(t, kvs)
		assert.NotNil(t, kvs)
	})
}

func TestClient_GetAll_vanished(t *testing.T) {
	srv := rdbtest.NewServer(t, map[string]string{
		"stays": "1",
	})

	// Imitate a key that is deleted between the listing and the fetch.
	srv.SetHook(func(w http.ResponseWriter, r *http.Request) (handled bool) {
		if r.URL.RawQuery == "" {
			return false
		}

		_, _ = w.Write([]byte("stays\ngone"))

		return true
	})

	c := newTestClient(t, srv, nil)

	ctx := testutil.ContextWithTimeout(t, testTimeout)
	kvs, err := c.GetAll(ctx)
	assert.Nil(t, kvs)
	assert.ErrorIs(t, err, replitdb.ErrKeyVanished)
	testutil.AssertErrorMsg(t, `key "gone": key vanished during listing`, err)
}

func TestClient_GetAll_firstError(t *testing.T) {
	keys := []string{"k0", "k1", "k2", "k3", "k4", "k5", "k6", "k7"}
	data := map[string]string{}
	for _, k := range keys {
		data[k] = k
	}

	srv := rdbtest.NewServer(t, data)

	var gets atomic.Int32
	srv.SetHook(func(w http.ResponseWriter, r *http.Request) (handled bool) {
		if r.Method != http.MethodGet || r.URL.RawQuery != "" {
			return false
		}

		gets.Add(1)
		if strings.HasSuffix(r.URL.Path, "/k3") {
			http.Error(w, testErrBody, http.StatusInternalServerError)

			return true
		}

		return false
	})

	testCases := []struct {
		name    string
		maxConc int
	}{{
		name:    "sequential",
		maxConc: 1,
	}, {
		name:    "parallel",
		maxConc: 2,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, srv, &replitdb.ClientConfig{
				MaxConcurrency: tc.maxConc,
			})

			kvs, err := c.GetAll(testutil.ContextWithTimeout(t, testTimeout))
			assert.Nil(t, kvs)

			// http.Error appends a newline to the body.
			testutil.AssertErrorMsg(t, testErrBody+"\n", err)
		})
	}

	// The sequential run stops right at the failed key.
	assert.GreaterOrEqual(t, gets.Load(), int32(4))
}

func TestClient_Empty(t *testing.T) {
	testCases := []struct {
		name    string
		maxConc int
	}{{
		name:    "sequential",
		maxConc: 0,
	}, {
		name:    "parallel",
		maxConc: 4,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := rdbtest.NewServer(t, testData)
			c := newTestClient(t, srv, &replitdb.ClientConfig{
				MaxConcurrency: tc.maxConc,
			})

			ctx := testutil.ContextWithTimeout(t, testTimeout)
			err := c.Empty(ctx)
			require.NoError(t, err)

			keys, err := c.List(ctx)
			require.NoError(t, err)

			assert.Empty(t, keys)
			assert.Empty(t, srv.Data())
		})
	}

	t.Run("already_empty", func(t *testing.T) {
		srv := rdbtest.NewServer(t, nil)
		c := newTestClient(t, srv, nil)

		assert.NoError(t, c.Empty(testutil.ContextWithTimeout(t, testTimeout)))
	})
}

func TestClient_Empty_deleteError(t *testing.T) {
	srv := rdbtest.NewServer(t, map[string]string{
		"a": "1",
		"b": "2",
		"c": "3",
	})
	srv.SetHook(func(w http.ResponseWriter, r *http.Request) (handled bool) {
		if r.Method != http.MethodDelete || !strings.HasSuffix(r.URL.Path, "/b") {
			return false
		}

		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(testErrBody))

		return true
	})

	c := newTestClient(t, srv, nil)

	err := c.Empty(testutil.ContextWithTimeout(t, testTimeout))
	testutil.AssertErrorMsg(t, testErrBody, err)

	// Keys deleted before the failure stay deleted, the rest are kept.
	assert.Equal(t, map[string]string{"b": "2", "c": "3"}, srv.Data())
}
