package rdbhttp_test

import (
	"net/http"
	"testing"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/replitdb/internal/rdbhttp"
	"github.com/stretchr/testify/assert"
)

// Common Testing Constants And Variables

// testSrv is the common Server header value for tests.
const testSrv = "testServer/1.0"

// testError is the common error for tests.
const testError errors.Error = "test error"

func TestIsSuccess(t *testing.T) {
	testCases := []struct {
		name string
		code int
		want bool
	}{{
		name: "ok",
		code: http.StatusOK,
		want: true,
	}, {
		name: "no_content",
		code: http.StatusNoContent,
		want: true,
	}, {
		name: "redirect",
		code: http.StatusMultipleChoices,
		want: false,
	}, {
		name: "not_found",
		code: http.StatusNotFound,
		want: false,
	}, {
		name: "continue",
		code: http.StatusContinue,
		want: false,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rdbhttp.IsSuccess(tc.code))
		})
	}
}
