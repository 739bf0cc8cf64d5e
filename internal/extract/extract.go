// Package extract locates a named field inside a line-oriented key/value
// text source, such as /etc/os-release or /proc/cpuinfo.
package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/girste/hostprobe/internal/errors"
)

// NoDelimiter marks a query whose matching line is a bare value with no
// key/value separator.
const NoDelimiter rune = 0

// FieldQuery describes where and how to find one fact.
type FieldQuery struct {
	Path      string
	Key       string
	Delimiter rune
}

// String renders the query for logs and error messages.
func (q FieldQuery) String() string {
	if q.Delimiter == NoDelimiter {
		return fmt.Sprintf("%s[%s]", q.Path, q.Key)
	}
	return fmt.Sprintf("%s[%s%c]", q.Path, q.Key, q.Delimiter)
}

// FieldError reports a failed extraction. It unwraps to one of
// errors.ErrIO, errors.ErrFieldNotFound or errors.ErrMalformedLine.
type FieldError struct {
	Path string
	Key  string
	Err  error
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("field %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("%s: field %q: %v", e.Path, e.Key, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Extract reads q.Path and returns the value bound to q.Key on the first
// matching line. The file is read fully on every call.
func Extract(q FieldQuery) (string, error) {
	data, err := os.ReadFile(q.Path)
	if err != nil {
		return "", &FieldError{Path: q.Path, Key: q.Key, Err: fmt.Errorf("%w: %v", errors.ErrIO, err)}
	}

	value, err := Parse(data, q.Key, q.Delimiter)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			fe.Path = q.Path
		}
		return "", err
	}
	return value, nil
}

// Parse scans content line by line and returns the value of the first line
// starting with key. The value is everything after the first delim following
// the key, with one pair of surrounding double quotes removed. Whitespace is
// left alone.
func Parse(content []byte, key string, delim rune) (string, error) {
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSuffix(line, "\r")
		rest, ok := strings.CutPrefix(line, key)
		if !ok {
			continue
		}

		if delim == NoDelimiter {
			return unquote(rest), nil
		}

		_, value, found := strings.Cut(rest, string(delim))
		if !found {
			return "", &FieldError{Key: key, Err: errors.ErrMalformedLine}
		}
		return unquote(value), nil
	}
	return "", &FieldError{Key: key, Err: errors.ErrFieldNotFound}
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
