package rdbhttp_test

import (
	"net/url"
	"testing"

	"github.com/AdguardTeam/golibs/netutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/AdguardTeam/replitdb/internal/rdbhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTTPURL(t *testing.T) {
	goodURL := testURL()

	badSchemeURL := netutil.CloneURL(goodURL)
	badSchemeURL.Scheme = "ftp"

	testCases := []struct {
		want       *url.URL
		name       string
		in         string
		wantErrMsg string
	}{{
		want:       goodURL,
		name:       "ok",
		in:         goodURL.String(),
		wantErrMsg: ``,
	}, {
		want:       nil,
		name:       "invalid",
		in:         "\n",
		wantErrMsg: `parse "\n": net/url: invalid control character in URL`,
	}, {
		want:       nil,
		name:       "bad_scheme",
		in:         "ftp://example.com/a",
		wantErrMsg: `validate "ftp://example.com/a": bad scheme "ftp"`,
	}, {
		want:       nil,
		name:       "relative",
		in:         "/a/b/c/",
		wantErrMsg: `validate "/a/b/c/": empty host`,
	}, {
		want:       nil,
		name:       "empty",
		in:         "",
		wantErrMsg: `validate "": empty host`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rdbhttp.ParseHTTPURL(tc.in)
			assert.Equal(t, tc.want, got)
			testutil.AssertErrorMsg(t, tc.wantErrMsg, err)
		})
	}

	t.Run("nil", func(t *testing.T) {
		testutil.AssertErrorMsg(t, `validate "": nil url`, rdbhttp.ValidateHTTPURL(nil))
	})
}

func TestJoinEscaped(t *testing.T) {
	testCases := []struct {
		name    string
		base    string
		segment string
		want    string
	}{{
		name:    "no_path",
		base:    "https://db.example/",
		segment: "key",
		want:    "https://db.example/key",
	}, {
		name:    "empty_path",
		base:    "https://db.example",
		segment: "a%2F1",
		want:    "https://db.example/a%2F1",
	}, {
		name:    "token_path",
		base:    "https://db.example/v0/token",
		segment: "a%20b",
		want:    "https://db.example/v0/token/a%20b",
	}, {
		name:    "trailing_slash",
		base:    "https://db.example/v0/token/",
		segment: "%3F",
		want:    "https://db.example/v0/token/%3F",
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base, err := url.Parse(tc.base)
			require.NoError(t, err)

			u, err := rdbhttp.JoinEscaped(base, tc.segment)
			require.NoError(t, err)

			assert.Equal(t, tc.want, u.String())

			// base must stay intact.
			assert.Equal(t, tc.base, base.String())
		})
	}

	t.Run("bad_segment", func(t *testing.T) {
		base := testURL()
		_, err := rdbhttp.JoinEscaped(base, "%zz")
		testutil.AssertErrorMsg(t, `unescaping segment: invalid URL escape "%zz"`, err)
	})
}

func testURL() (u *url.URL) {
	return &url.URL{
		Scheme:   "http",
		User:     url.UserPassword("user", "pass"),
		Host:     "example.com",
		Path:     "/a/b/c/",
		RawQuery: "d=e",
		Fragment: "f",
	}
}
