package rdbhttp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/netutil"
)

// ValidateHTTPURL returns an error if u is not an absolute HTTP(S) URL.  All
// returned errors will have the underlying type [*url.Error].
func ValidateHTTPURL(u *url.URL) (err error) {
	if u == nil {
		return &url.Error{
			Op:  "validate",
			URL: "",
			Err: errors.Error("nil url"),
		}
	}

	switch {
	case u.Host == "":
		return &url.Error{
			Op:  "validate",
			URL: u.Redacted(),
			Err: errors.Error("empty host"),
		}
	case u.Scheme != "http" && u.Scheme != "https":
		return &url.Error{
			Op:  "validate",
			URL: u.Redacted(),
			Err: fmt.Errorf("bad scheme %q", u.Scheme),
		}
	default:
		return nil
	}
}

// ParseHTTPURL parses an absolute URL and makes sure that it is a valid HTTP(S)
// URL.  All returned errors will have the underlying type [*url.Error].
func ParseHTTPURL(s string) (u *url.URL, err error) {
	u, err = url.Parse(s)
	if err != nil {
		return nil, err
	}

	err = ValidateHTTPURL(u)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// JoinEscaped returns a copy of base with the already escaped path segment
// appended to its path.  Unlike [url.URL.JoinPath], it keeps escaped slashes
// within segment.  segment must be a valid escaped path segment.
func JoinEscaped(base *url.URL, segment string) (u *url.URL, err error) {
	unescaped, err := url.PathUnescape(segment)
	if err != nil {
		return nil, fmt.Errorf("unescaping segment: %w", err)
	}

	u = netutil.CloneURL(base)
	u.RawPath = strings.TrimSuffix(base.EscapedPath(), "/") + "/" + segment
	u.Path = strings.TrimSuffix(base.Path, "/") + "/" + unescaped

	return u, nil
}
