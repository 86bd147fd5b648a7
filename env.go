package replitdb

import (
	"fmt"
	"net/url"

	"github.com/AdguardTeam/golibs/netutil/urlutil"
	"github.com/caarlos0/env/v7"
)

// EnvURL is the name of the environment variable with the database URL.
const EnvURL = "REPLIT_DB_URL"

// environment represents the configuration that is kept in the environment.
type environment struct {
	URL *urlutil.URL `env:"REPLIT_DB_URL"`
}

// URLFromEnv returns the database URL from the [EnvURL] environment variable.
// Any error returned has the type [*ConfigurationError].  If the variable is
// not set or empty, the error wraps [ErrNoURL].
func URLFromEnv() (u *url.URL, err error) {
	envs := &environment{}
	err = env.Parse(envs)
	if err != nil {
		return nil, &ConfigurationError{
			Err: fmt.Errorf("parsing environment: %w", err),
		}
	}

	if envs.URL == nil || envs.URL.String() == "" {
		return nil, &ConfigurationError{Err: ErrNoURL}
	}

	return &envs.URL.URL, nil
}

// NewClientFromEnv is like [NewClient] but takes the URL from the environment
// using [URLFromEnv].  conf may be nil, and its URL field is ignored.
func NewClientFromEnv(conf *ClientConfig) (c *Client, err error) {
	u, err := URLFromEnv()
	if err != nil {
		return nil, err
	}

	withURL := &ClientConfig{}
	if conf != nil {
		*withURL = *conf
	}

	withURL.URL = u

	return NewClient(withURL)
}
