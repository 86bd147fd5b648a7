package cmd

import (
	"os"
	"testing"
	"time"

	"github.com/AdguardTeam/golibs/testutil"
	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvironment_defaults(t *testing.T) {
	for _, name := range []string{
		"LOG_FORMAT",
		"LOG_TIMESTAMP",
		"REPLIT_DB_MAX_RESP_SIZE",
		"REPLIT_DB_RATE_LIMIT",
		"REPLIT_DB_TIMEOUT",
		"VERBOSE",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	envs, err := parseEnvironment()
	require.NoError(t, err)
	require.NoError(t, envs.Validate())

	assert.Equal(t, &environment{
		LogFormat:    "text",
		MaxRespSize:  64 * datasize.MB,
		Timeout:      30 * time.Second,
		RateLimit:    0,
		Verbosity:    0,
		LogTimestamp: true,
	}, envs)
}

func TestStrictBool_UnmarshalText(t *testing.T) {
	testCases := []struct {
		name       string
		in         string
		want       strictBool
		wantErrMsg string
	}{{
		name:       "true",
		in:         "1",
		want:       true,
		wantErrMsg: "",
	}, {
		name:       "false",
		in:         "0",
		want:       false,
		wantErrMsg: "",
	}, {
		name:       "word",
		in:         "true",
		want:       false,
		wantErrMsg: `invalid value "true", supported: "0", "1"`,
	}, {
		name:       "empty",
		in:         "",
		want:       false,
		wantErrMsg: `invalid value "", supported: "0", "1"`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var sb strictBool
			err := sb.UnmarshalText([]byte(tc.in))
			testutil.AssertErrorMsg(t, tc.wantErrMsg, err)

			assert.Equal(t, tc.want, sb)
		})
	}
}
