package cmd

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/ioutil"
	"github.com/urfave/cli/v2"
)

const (
	// errBadArgs is returned when a command gets a wrong number of arguments.
	errBadArgs errors.Error = "wrong number of arguments"

	// errKeyNotFound is returned by the get command if there is no such key.
	errKeyNotFound errors.Error = "key not found"

	// errNotConfirmed is returned by the empty command when it isn't
	// confirmed.
	errNotConfirmed errors.Error = "not confirmed; use --" + flagYes + " to delete all keys"
)

// args returns the arguments of the command and checks that there are from
// minNum to maxNum of them.
func args(c *cli.Context, minNum, maxNum int) (res []string, err error) {
	res = c.Args().Slice()
	if l := len(res); l < minNum || l > maxNum {
		return nil, fmt.Errorf(
			"%s %s: %w: got %d",
			c.Command.Name,
			c.Command.ArgsUsage,
			errBadArgs,
			l,
		)
	}

	return res, nil
}

// get is the action of the get command.
func (e *executor) get(c *cli.Context) (err error) {
	a, err := args(c, 1, 1)
	if err != nil {
		return err
	}

	db, err := e.client(c)
	if err != nil {
		return err
	}

	key := a[0]
	val, ok, err := db.Get(c.Context, key)
	if err != nil {
		return fmt.Errorf("getting %q: %w", key, err)
	} else if !ok {
		return fmt.Errorf("%q: %w", key, errKeyNotFound)
	}

	_, err = io.WriteString(e.sio.out, val+"\n")

	return err
}

// set is the action of the set command.
func (e *executor) set(c *cli.Context) (err error) {
	a, err := args(c, 1, 2)
	if err != nil {
		return err
	}

	db, err := e.client(c)
	if err != nil {
		return err
	}

	key := a[0]

	var val string
	if len(a) == 2 {
		val = a[1]
	} else {
		var b []byte
		b, err = io.ReadAll(ioutil.LimitReader(e.sio.in, e.envs.MaxRespSize.Bytes()))
		if err != nil {
			return fmt.Errorf("reading value: %w", err)
		}

		val = string(b)
	}

	err = db.Set(c.Context, key, val)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}

	return nil
}

// delete is the action of the delete command.
func (e *executor) delete(c *cli.Context) (err error) {
	a, err := args(c, 1, 1)
	if err != nil {
		return err
	}

	db, err := e.client(c)
	if err != nil {
		return err
	}

	err = db.Delete(c.Context, a[0])
	if err != nil {
		return fmt.Errorf("deleting %q: %w", a[0], err)
	}

	return nil
}

// list is the action of the list command.
func (e *executor) list(c *cli.Context) (err error) {
	_, err = args(c, 0, 0)
	if err != nil {
		return err
	}

	db, err := e.client(c)
	if err != nil {
		return err
	}

	keys, err := db.ListPrefix(c.Context, c.String(flagPrefix))
	if err != nil {
		return fmt.Errorf("listing: %w", err)
	}

	b := &strings.Builder{}
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('\n')
	}

	_, err = io.WriteString(e.sio.out, b.String())

	return err
}

// empty is the action of the empty command.
func (e *executor) empty(c *cli.Context) (err error) {
	_, err = args(c, 0, 0)
	if err != nil {
		return err
	}

	if !c.Bool(flagYes) {
		return errNotConfirmed
	}

	db, err := e.client(c)
	if err != nil {
		return err
	}

	err = db.Empty(c.Context)
	if err != nil {
		return fmt.Errorf("emptying: %w", err)
	}

	e.logger.InfoContext(c.Context, "database emptied")

	return nil
}

// load is the action of the load command.  The keys are set one by one in
// lexicographical order.
func (e *executor) load(c *cli.Context) (err error) {
	a, err := args(c, 1, 1)
	if err != nil {
		return err
	}

	format := c.String(flagFormat)
	err = validateDumpFormat(format)
	if err != nil {
		return err
	}

	// #nosec G304 -- Trust the path explicitly given by the user.
	data, err := os.ReadFile(a[0])
	if err != nil {
		return fmt.Errorf("reading dump: %w", err)
	}

	kvs, err := decodeDump(data, format)
	if err != nil {
		return fmt.Errorf("decoding dump: %w", err)
	}

	db, err := e.client(c)
	if err != nil {
		return err
	}

	for _, k := range slices.Sorted(maps.Keys(kvs)) {
		err = db.Set(c.Context, k, kvs[k])
		if err != nil {
			return fmt.Errorf("setting %q: %w", k, err)
		}
	}

	e.logger.InfoContext(c.Context, "dump loaded", "keys", len(kvs))

	return nil
}
