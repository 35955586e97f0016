// Package netx holds HTTP response helpers shared by platform clients.
package netx

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// DefaultBodyLimit bounds how much of a response body is ever buffered.
const DefaultBodyLimit = 1 << 20

// DisplayLimit is how much of an error body is kept for display.
const DisplayLimit = 500

// ResponseTooLargeError reports that a response body exceeded the limit.
type ResponseTooLargeError struct {
	Limit int64
}

func (e ResponseTooLargeError) Error() string {
	return fmt.Sprintf("response body exceeded limit of %d bytes", e.Limit)
}

// ReadAllWithLimit reads r up to limit bytes. If limit <= 0 it behaves like
// io.ReadAll.
func ReadAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(&io.LimitedReader{R: r, N: limit + 1})
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ResponseTooLargeError{Limit: limit}
	}
	return data, nil
}

// IsResponseTooLarge reports whether err is a ResponseTooLargeError.
func IsResponseTooLarge(err error) bool {
	var limitErr ResponseTooLargeError
	return errors.As(err, &limitErr)
}

// Truncate shortens s to at most max bytes, ending with "..." when cut.
// It never splits a UTF-8 sequence.
func Truncate(s string, max int) string {
	const suffix = "..."
	if len(s) <= max {
		return s
	}
	if max <= len(suffix) {
		return suffix[:max]
	}
	cut := max - len(suffix)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + suffix
}

// ErrorBody reads a failed response's body for display: trimmed and
// truncated to DisplayLimit. Read errors yield an empty string.
func ErrorBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, DisplayLimit*4))
	if err != nil {
		return ""
	}
	return Truncate(strings.TrimSpace(string(data)), DisplayLimit)
}
