package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/google/renameio/v2"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

// Supported dump formats.
const (
	dumpFormatJSON = "json"
	dumpFormatYAML = "yaml"
)

// dumpFilePerm is the permission of the dump files.  The values may be
// sensitive, so only the owner can read them.
const dumpFilePerm = 0o600

// validateDumpFormat returns an error if format is not a supported dump
// format.
func validateDumpFormat(format string) (err error) {
	switch format {
	case dumpFormatJSON, dumpFormatYAML:
		return nil
	default:
		return fmt.Errorf("--%s: %w: %q", flagFormat, errors.ErrBadEnumValue, format)
	}
}

// dump is the action of the dump command.
func (e *executor) dump(c *cli.Context) (err error) {
	_, err = args(c, 0, 0)
	if err != nil {
		return err
	}

	format := c.String(flagFormat)
	err = validateDumpFormat(format)
	if err != nil {
		return err
	}

	db, err := e.client(c)
	if err != nil {
		return err
	}

	kvs, err := db.GetAll(c.Context)
	if err != nil {
		return fmt.Errorf("getting all keys: %w", err)
	}

	data, err := encodeDump(kvs, format)
	if err != nil {
		// Don't wrap the error, since it's informative enough as is.
		return err
	}

	out := c.Path(flagOutput)
	if out == "" || out == "-" {
		_, err = e.sio.out.Write(data)

		return err
	}

	err = renameio.WriteFile(out, data, dumpFilePerm)
	if err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}

	e.logger.InfoContext(c.Context, "dump written", "path", out, "keys", len(kvs))

	return nil
}

// encodeDump encodes kvs in the given format.  The keys are sorted in both
// formats.  format must be valid.
func encodeDump(kvs map[string]string, format string) (data []byte, err error) {
	switch format {
	case dumpFormatJSON:
		data, err = json.MarshalIndent(kvs, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}

		return append(data, '\n'), nil
	case dumpFormatYAML:
		data, err = yaml.Marshal(kvs)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}

		return data, nil
	default:
		panic(fmt.Errorf("format: %w: %q", errors.ErrBadEnumValue, format))
	}
}

// decodeDump decodes the key-value pairs from data in the given format.
// format must be valid.
func decodeDump(data []byte, format string) (kvs map[string]string, err error) {
	kvs = map[string]string{}
	switch format {
	case dumpFormatJSON:
		err = json.Unmarshal(data, &kvs)
	case dumpFormatYAML:
		err = yaml.Unmarshal(data, &kvs)
	default:
		panic(fmt.Errorf("format: %w: %q", errors.ErrBadEnumValue, format))
	}

	if err != nil {
		// Don't wrap the error, since it's informative enough as is.
		return nil, err
	}

	return kvs, nil
}
