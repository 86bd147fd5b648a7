package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/validate"
	"github.com/c2h5oh/datasize"
	"github.com/caarlos0/env/v7"
)

// environment represents the configuration that is kept in the environment.
// The database URL itself is read by [replitdb.URLFromEnv].
type environment struct {
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	MaxRespSize datasize.ByteSize `env:"REPLIT_DB_MAX_RESP_SIZE" envDefault:"64MB"`

	Timeout time.Duration `env:"REPLIT_DB_TIMEOUT" envDefault:"30s"`

	RateLimit float64 `env:"REPLIT_DB_RATE_LIMIT" envDefault:"0"`

	Verbosity uint8 `env:"VERBOSE" envDefault:"0"`

	LogTimestamp strictBool `env:"LOG_TIMESTAMP" envDefault:"1"`
}

// parseEnvironment reads the configuration.
func parseEnvironment() (envs *environment, err error) {
	envs = &environment{}
	err = env.Parse(envs)
	if err != nil {
		return nil, fmt.Errorf("parsing environments: %w", err)
	}

	return envs, nil
}

// type check
var _ validate.Interface = (*environment)(nil)

// Validate implements the [validate.Interface] interface for *environment.
func (envs *environment) Validate() (err error) {
	errs := []error{
		validate.Positive("REPLIT_DB_TIMEOUT", envs.Timeout),
		validate.Positive("REPLIT_DB_MAX_RESP_SIZE", envs.MaxRespSize),
		validate.NoGreaterThan("REPLIT_DB_MAX_RESP_SIZE", envs.MaxRespSize, math.MaxInt),
		validate.NotNegative("REPLIT_DB_RATE_LIMIT", envs.RateLimit),
	}

	_, err = slogutil.NewFormat(envs.LogFormat)
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: %w", err))
	}

	_, err = slogutil.VerbosityToLevel(envs.Verbosity)
	if err != nil {
		errs = append(errs, fmt.Errorf("VERBOSE: %w", err))
	}

	return errors.Join(errs...)
}

// strictBool is a type for booleans that are parsed from the environment more
// strictly than the usual bool.  It only accepts "0" and "1" as valid values.
type strictBool bool

// UnmarshalText implements the encoding.TextUnmarshaler interface for
// *strictBool.
func (sb *strictBool) UnmarshalText(b []byte) (err error) {
	if len(b) == 1 {
		switch b[0] {
		case '0':
			*sb = false

			return nil
		case '1':
			*sb = true

			return nil
		default:
			// Go on and return an error.
		}
	}

	return fmt.Errorf("invalid value %q, supported: %q, %q", b, "0", "1")
}
