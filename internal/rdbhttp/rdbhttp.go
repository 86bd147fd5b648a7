// Package rdbhttp contains common constants, functions, and types for working
// with HTTP.
package rdbhttp

import (
	"net/http"

	"github.com/AdguardTeam/replitdb/internal/version"
)

// HTTP header value constants.
const (
	HdrValApplicationFormURLEncoded = "application/x-www-form-urlencoded"
	HdrValTextPlain                 = "text/plain"
)

// userAgent is the cached User-Agent string for the client.
var userAgent = version.Name() + "/" + version.Version()

// UserAgent returns the ID of the client as a User-Agent string.
func UserAgent() (ua string) {
	return userAgent
}

// IsSuccess returns true if code is a 2xx HTTP status code.
func IsSuccess(code int) (ok bool) {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
