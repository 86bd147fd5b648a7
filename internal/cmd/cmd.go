// Package cmd is the entry point of the Replit database command-line tool.  It
// contains the environment handling, the command definitions, and so on.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/replitdb/internal/version"
	"golang.org/x/sys/unix"
)

// Exit status constants.
const (
	statusSuccess = 0
	statusError   = 1
)

// Main is the entry point of application.
func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)

	status := run(ctx, os.Args, &stdio{
		in:  os.Stdin,
		out: os.Stdout,
		err: os.Stderr,
	})

	stop()

	os.Exit(status)
}

// stdio contains the standard streams of the tool.
type stdio struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// run parses the environment, runs the command from args, and returns the exit
// status.
func run(ctx context.Context, args []string, sio *stdio) (status int) {
	envs, err := parseEnvironment()
	if err == nil {
		err = envs.Validate()
	}

	if err != nil {
		_, _ = fmt.Fprintf(sio.err, "%s: %s\n", appName, err)

		return statusError
	}

	// The environment has been validated, so the errors are nil.
	lvl, _ := slogutil.VerbosityToLevel(envs.Verbosity)
	logger := slogutil.New(&slogutil.Config{
		Output: sio.err,
		// Don't use [slogutil.NewFormat] here, because the value is validated.
		Format:       slogutil.Format(envs.LogFormat),
		AddTimestamp: bool(envs.LogTimestamp),
		Level:        lvl,
	})

	logger.DebugContext(
		ctx,
		"starting",
		"version", version.Version(),
		"revision", version.Revision(),
		"branch", version.Branch(),
		"commit_time", version.CommitTime(),
	)

	e := newExecutor(envs, logger.With(slogutil.KeyPrefix, appName), sio)
	err = e.newApp().RunContext(ctx, args)
	if err != nil {
		logger.DebugContext(ctx, "command failed", slogutil.KeyError, err)
		_, _ = fmt.Fprintf(sio.err, "%s: %s\n", appName, err)

		return statusError
	}

	return statusSuccess
}
