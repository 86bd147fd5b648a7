package replitdb_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/AdguardTeam/replitdb"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	testCases := []struct {
		err     error
		wantIs  error
		name    string
		wantMsg string
	}{{
		err:     &replitdb.RemoteError{Body: testErrBody, StatusCode: http.StatusInternalServerError},
		wantIs:  nil,
		name:    "remote",
		wantMsg: testErrBody,
	}, {
		err:     &replitdb.RemoteError{Body: "", StatusCode: http.StatusBadGateway},
		wantIs:  nil,
		name:    "remote_empty",
		wantMsg: "",
	}, {
		err:     &replitdb.TransportError{Err: assert.AnError},
		wantIs:  assert.AnError,
		name:    "transport",
		wantMsg: assert.AnError.Error(),
	}, {
		err:     &replitdb.ConfigurationError{Err: replitdb.ErrNoURL},
		wantIs:  replitdb.ErrNoURL,
		name:    "configuration",
		wantMsg: "configuration: no database url; set REPLIT_DB_URL or provide it explicitly",
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantMsg, tc.err.Error())

			if tc.wantIs != nil {
				assert.True(t, errors.Is(tc.err, tc.wantIs))
			}
		})
	}
}
