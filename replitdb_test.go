package replitdb_test

import (
	"testing"
	"time"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/replitdb"
	"github.com/AdguardTeam/replitdb/internal/rdbtest"
	"github.com/stretchr/testify/require"
)

// Common Testing Constants And Variables

// testTimeout is the common timeout for tests and contexts.
const testTimeout = 1 * time.Second

// testErrBody is the common body of error responses for tests.
const testErrBody = "boom"

// testLogger is the common logger for tests.
var testLogger = slogutil.NewDiscardLogger()

// newTestClient returns a new client for srv.  conf may be nil, and its URL is
// replaced with the URL of srv.
func newTestClient(tb testing.TB, srv *rdbtest.Server, conf *replitdb.ClientConfig) (c *replitdb.Client) {
	tb.Helper()

	withURL := &replitdb.ClientConfig{}
	if conf != nil {
		*withURL = *conf
	}

	withURL.URL = srv.URL
	withURL.Logger = testLogger
	if withURL.Timeout == 0 {
		withURL.Timeout = testTimeout
	}

	c, err := replitdb.NewClient(withURL)
	require.NoError(tb, err)

	return c
}
