package replitdb

import (
	"fmt"

	"github.com/AdguardTeam/golibs/errors"
)

// ErrKeyVanished is returned by GetAll when a key returned by the listing has
// been removed from the database before its value could be fetched.
const ErrKeyVanished errors.Error = "key vanished during listing"

// ErrNoURL is returned when the database URL isn't configured.
const ErrNoURL errors.Error = "no database url; set " + EnvURL + " or provide it explicitly"

// ErrRateLimited is returned when the request couldn't be made within the
// limits of the configured rate limiter.
const ErrRateLimited errors.Error = "rate limited"

// errNilConfig is returned by [ClientConfig.Validate] for a nil config.
const errNilConfig errors.Error = "nil config"

// TransportError is returned when the request couldn't be sent or the
// response couldn't be read.
type TransportError struct {
	// Err is the underlying error.  It is never nil.
	Err error
}

// type check
var _ error = (*TransportError)(nil)

// Error implements the error interface for *TransportError.
func (err *TransportError) Error() (msg string) {
	return err.Err.Error()
}

// type check
var _ errors.Wrapper = (*TransportError)(nil)

// Unwrap implements the [errors.Wrapper] interface for *TransportError.
func (err *TransportError) Unwrap() (unwrapped error) {
	return err.Err
}

// RemoteError is returned when the database responds with an unexpected
// status code.  Its message is the body of the response.
type RemoteError struct {
	// Body is the text of the response.
	Body string

	// StatusCode is the HTTP status code of the response.
	StatusCode int
}

// type check
var _ error = (*RemoteError)(nil)

// Error implements the error interface for *RemoteError.
func (err *RemoteError) Error() (msg string) {
	return err.Body
}

// ConfigurationError is returned when a client cannot be created because of
// its configuration.
type ConfigurationError struct {
	// Err is the underlying error.  It is never nil.
	Err error
}

// type check
var _ error = (*ConfigurationError)(nil)

// Error implements the error interface for *ConfigurationError.
func (err *ConfigurationError) Error() (msg string) {
	return fmt.Sprintf("configuration: %s", err.Err)
}

// type check
var _ errors.Wrapper = (*ConfigurationError)(nil)

// Unwrap implements the [errors.Wrapper] interface for *ConfigurationError.
func (err *ConfigurationError) Unwrap() (unwrapped error) {
	return err.Err
}
