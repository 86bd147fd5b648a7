package cmd

import (
	"fmt"
	"log/slog"
	"net/url"
	"runtime"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/replitdb"
	"github.com/AdguardTeam/replitdb/internal/metrics"
	"github.com/AdguardTeam/replitdb/internal/rdbhttp"
	"github.com/AdguardTeam/replitdb/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"
)

// appName is the name of the command-line tool.
const appName = "replitdb"

// Names of the flags.
const (
	flagConcurrency  = "concurrency"
	flagFormat       = "format"
	flagOutput       = "output"
	flagPrefix       = "prefix"
	flagPrintMetrics = "print-metrics"
	flagURL          = "url"
	flagYes          = "yes"
)

// executor runs the commands of the tool.
type executor struct {
	envs   *environment
	logger *slog.Logger
	sio    *stdio
	reg    *prometheus.Registry

	// db is the database client.  It is created on the first use, since some
	// commands, such as help, don't need it.
	db *replitdb.Client
}

// newExecutor returns a new properly initialized *executor.
func newExecutor(envs *environment, logger *slog.Logger, sio *stdio) (e *executor) {
	return &executor{
		envs:   envs,
		logger: logger,
		sio:    sio,
		reg:    prometheus.NewRegistry(),
	}
}

// newApp returns the command-line application running the commands with e.
func (e *executor) newApp() (app *cli.App) {
	return &cli.App{
		Name:      appName,
		Usage:     "command-line client for the Replit key-value database",
		Version:   version.Version(),
		Reader:    e.sio.in,
		Writer:    e.sio.out,
		ErrWriter: e.sio.err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagURL,
				Aliases: []string{"u"},
				Usage:   "database url, overrides " + replitdb.EnvURL,
			},
			&cli.IntFlag{
				Name:    flagConcurrency,
				Aliases: []string{"c"},
				Usage:   "maximum number of parallel requests made by empty and dump",
				Value:   0,
			},
			&cli.BoolFlag{
				Name:  flagPrintMetrics,
				Usage: "print the collected metrics to stderr on exit",
			},
		},
		Commands: []*cli.Command{{
			Name:      "get",
			Aliases:   []string{"g"},
			Usage:     "print the value of a key",
			ArgsUsage: "KEY",
			Action:    e.get,
		}, {
			Name:      "set",
			Aliases:   []string{"s"},
			Usage:     "set the value of a key, reading it from stdin if omitted",
			ArgsUsage: "KEY [VALUE]",
			Action:    e.set,
		}, {
			Name:      "delete",
			Aliases:   []string{"d"},
			Usage:     "delete a key",
			ArgsUsage: "KEY",
			Action:    e.delete,
		}, {
			Name:    "list",
			Aliases: []string{"l"},
			Usage:   "list keys",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagPrefix,
					Aliases: []string{"p"},
					Usage:   "only list keys starting with this prefix",
				},
			},
			Action: e.list,
		}, {
			Name:  "empty",
			Usage: "delete all keys",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    flagYes,
					Aliases: []string{"y"},
					Usage:   "confirm the deletion",
				},
			},
			Action: e.empty,
		}, {
			Name:  "dump",
			Usage: "print or save all key-value pairs",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagFormat,
					Aliases: []string{"f"},
					Usage:   "output format, " + dumpFormatJSON + " or " + dumpFormatYAML,
					Value:   dumpFormatJSON,
				},
				&cli.PathFlag{
					Name:    flagOutput,
					Aliases: []string{"o"},
					Usage:   "file to write the dump to atomically instead of stdout",
				},
			},
			Action: e.dump,
		}, {
			Name:      "load",
			Usage:     "set all key-value pairs from a json or yaml dump",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagFormat,
					Aliases: []string{"f"},
					Usage:   "input format, " + dumpFormatJSON + " or " + dumpFormatYAML,
					Value:   dumpFormatJSON,
				},
			},
			Action: e.load,
		}},
		After: e.after,
		// Never call os.Exit from within the application.
		ExitErrHandler: func(_ *cli.Context, _ error) {},
		Suggest:        true,
	}
}

// client returns the database client, creating it if necessary.
func (e *executor) client(c *cli.Context) (db *replitdb.Client, err error) {
	if e.db != nil {
		return e.db, nil
	}

	u, err := dbURL(c.String(flagURL))
	if err != nil {
		return nil, err
	}

	m, err := metrics.NewDBClient(metrics.Namespace, e.reg)
	if err != nil {
		return nil, fmt.Errorf("registering client metrics: %w", err)
	}

	err = metrics.SetUpGauge(
		e.reg,
		metrics.Namespace,
		version.Version(),
		version.Branch(),
		version.CommitTime(),
		version.Revision(),
		runtime.Version(),
	)
	if err != nil {
		return nil, fmt.Errorf("registering build metrics: %w", err)
	}

	var limiter *rate.Limiter
	if e.envs.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(e.envs.RateLimit), 1)
	}

	e.db, err = replitdb.NewClient(&replitdb.ClientConfig{
		URL:            u,
		Logger:         e.logger,
		Metrics:        m,
		Limiter:        limiter,
		Timeout:        e.envs.Timeout,
		MaxRespSize:    e.envs.MaxRespSize,
		MaxConcurrency: c.Int(flagConcurrency),
	})
	if err != nil {
		return nil, err
	}

	return e.db, nil
}

// dbURL returns the database URL from the flag value or from the environment,
// if the flag is empty.
func dbURL(flagVal string) (u *url.URL, err error) {
	if flagVal == "" {
		return replitdb.URLFromEnv()
	}

	u, err = rdbhttp.ParseHTTPURL(flagVal)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flagURL, err)
	}

	return u, nil
}

// after prints the metrics if requested.
func (e *executor) after(c *cli.Context) (err error) {
	if !c.Bool(flagPrintMetrics) {
		return nil
	}

	mfs, err := e.reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	var errs []error
	for _, mf := range mfs {
		_, err = expfmt.MetricFamilyToText(e.sio.err, mf)
		if err != nil {
			errs = append(errs, fmt.Errorf("writing metric %q: %w", mf.GetName(), err))
		}
	}

	return errors.Join(errs...)
}
