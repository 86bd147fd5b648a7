package replitdb_test

import (
	"context"
	"strings"
	"testing"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/replitdb"
	"github.com/AdguardTeam/replitdb/internal/rdbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPrefix is the common key prefix for tests.
const testPrefix = "ns:"

func TestKeyNamespace(t *testing.T) {
	var gotKeys []string
	onGet := func(_ context.Context, key string) (val string, ok bool, err error) {
		gotKeys = append(gotKeys, key)

		return "val", true, nil
	}

	var gotSetKey, gotSetVal string
	onSet := func(_ context.Context, key, val string) (err error) {
		gotSetKey, gotSetVal = key, val

		return nil
	}

	var gotDelKey string
	onDelete := func(_ context.Context, key string) (err error) {
		gotDelKey = key

		return nil
	}

	kv := &rdbtest.DB{
		OnGet:    onGet,
		OnSet:    onSet,
		OnDelete: onDelete,
	}

	n := replitdb.NewKeyNamespace(&replitdb.KeyNamespaceConfig{
		KV:     kv,
		Prefix: testPrefix,
	})

	ctx := testutil.ContextWithTimeout(t, testTimeout)

	val, ok, err := n.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "val", val)
	assert.Equal(t, []string{testPrefix + "key"}, gotKeys)

	err = n.Set(ctx, "key", "new")
	require.NoError(t, err)

	assert.Equal(t, testPrefix+"key", gotSetKey)
	assert.Equal(t, "new", gotSetVal)

	err = n.Delete(ctx, "key")
	require.NoError(t, err)

	assert.Equal(t, testPrefix+"key", gotDelKey)
}

func TestKeyNamespace_ListPrefix(t *testing.T) {
	var gotPrefix string
	kv := &rdbtest.DB{
		OnListPrefix: func(_ context.Context, prefix string) (keys []string, err error) {
			gotPrefix = prefix

			return []string{testPrefix + "a/1", testPrefix + "a/2", "other:a/3"}, nil
		},
	}

	n := replitdb.NewKeyNamespace(&replitdb.KeyNamespaceConfig{
		KV:     kv,
		Prefix: testPrefix,
	})

	keys, err := n.ListPrefix(testutil.ContextWithTimeout(t, testTimeout), "a/")
	require.NoError(t, err)

	assert.Equal(t, testPrefix+"a/", gotPrefix)
	assert.Equal(t, []string{"a/1", "a/2"}, keys)

	t.Run("error", func(t *testing.T) {
		kv.OnListPrefix = func(_ context.Context, _ string) (keys []string, err error) {
			return nil, assert.AnError
		}

		keys, err = n.List(testutil.ContextWithTimeout(t, testTimeout))
		assert.Nil(t, keys)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestKeyNamespace_server(t *testing.T) {
	srv := rdbtest.NewServer(t, map[string]string{
		testPrefix + "a": "1",
		testPrefix + "b": "2",
		"outside":        "3",
	})

	n := replitdb.NewKeyNamespace(&replitdb.KeyNamespaceConfig{
		KV:     newTestClient(t, srv, nil),
		Prefix: testPrefix,
	})

	ctx := testutil.ContextWithTimeout(t, testTimeout)

	kvs, err := n.GetAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, kvs)

	err = n.Empty(ctx)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"outside": "3"}, srv.Data())

	for _, r := range srv.Requests() {
		if strings.HasPrefix(r, "DELETE ") {
			assert.Contains(t, r, "/ns%3A")
		}
	}
}
