// Package keycodec contains the percent-encoding used for keys and values sent
// to the database and for keys received in listings.
package keycodec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/AdguardTeam/golibs/errors"
)

// upperHex is the alphabet of the hexadecimal digits of escapes.
const upperHex = "0123456789ABCDEF"

// Encode percent-encodes every byte of s that is not an unreserved character
// as defined by RFC 3986.  The result is safe to use as a URL path segment, a
// query value, and a form field name or value.  Spaces are encoded as "%20".
func Encode(s string) (enc string) {
	n := 0
	for i := range len(s) {
		if !isUnreserved(s[i]) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	b := &strings.Builder{}
	b.Grow(len(s) + 2*n)
	for i := range len(s) {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)

			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}

	return b.String()
}

// isUnreserved returns true if c doesn't need to be escaped.
//
// See https://datatracker.ietf.org/doc/html/rfc3986#section-2.3.
func isUnreserved(c byte) (ok bool) {
	switch {
	case
		'a' <= c && c <= 'z',
		'A' <= c && c <= 'Z',
		'0' <= c && c <= '9',
		c == '-', c == '.', c == '_', c == '~':
		return true
	default:
		return false
	}
}

// ErrBadEscape is returned by [Decode] when the input contains a percent
// sign that isn't followed by two hexadecimal digits.
const ErrBadEscape errors.Error = "bad percent escape"

// ErrBadUTF8 is returned by [Decode] when the decoded bytes are not valid
// UTF-8.
const ErrBadUTF8 errors.Error = "decoded value is not valid utf-8"

// DecodeError is returned by [Decode] when its input cannot be decoded.
type DecodeError struct {
	// Err is the underlying error.  It is either [ErrBadEscape] or
	// [ErrBadUTF8].
	Err error

	// Input is the string that could not be decoded.
	Input string

	// Offset is the byte offset of the problem.  For [ErrBadEscape] it points
	// into Input, for [ErrBadUTF8] it points into the decoded bytes.
	Offset int
}

// type check
var _ error = (*DecodeError)(nil)

// Error implements the error interface for *DecodeError.
func (err *DecodeError) Error() (msg string) {
	return fmt.Sprintf("decoding %q at offset %d: %s", err.Input, err.Offset, err.Err)
}

// type check
var _ errors.Wrapper = (*DecodeError)(nil)

// Unwrap implements the [errors.Wrapper] interface for *DecodeError.
func (err *DecodeError) Unwrap() (unwrapped error) {
	return err.Err
}

// Decode percent-decodes s.  Unlike form decoding, "+" is not converted into a
// space.  Any error returned has the type [*DecodeError].
func Decode(s string) (dec string, err error) {
	i := strings.IndexByte(s, '%')
	if i < 0 {
		return validUTF8(s, s)
	}

	b := &strings.Builder{}
	b.Grow(len(s))
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			b.WriteByte(c)

			continue
		}

		if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
			return "", &DecodeError{
				Err:    ErrBadEscape,
				Input:  s,
				Offset: i,
			}
		}

		b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
		i += 2
	}

	return validUTF8(s, b.String())
}

// validUTF8 returns dec if it is a valid UTF-8 string.  in is the original
// input used for error reporting.
func validUTF8(in, dec string) (res string, err error) {
	if utf8.ValidString(dec) {
		return dec, nil
	}

	off := 0
	for off < len(dec) {
		r, size := utf8.DecodeRuneInString(dec[off:])
		if r == utf8.RuneError && size <= 1 {
			break
		}

		off += size
	}

	return "", &DecodeError{
		Err:    ErrBadUTF8,
		Input:  in,
		Offset: off,
	}
}

// isHex returns true if c is a hexadecimal digit.
func isHex(c byte) (ok bool) {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// unhex returns the value of the hexadecimal digit c.  c must be a valid
// hexadecimal digit.
func unhex(c byte) (v byte) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
