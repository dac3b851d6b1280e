package model

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Message prefixes of the error log.
const (
	PrefixIO        = "I/O error - stopped processing: "
	PrefixCompile   = "Class compilation error - stopped processing: "
	PrefixStructure = "Class structure error - stopped processing: "
)

// ErrorLog accumulates the failures of one run.
type ErrorLog struct {
	err error
}

// Add appends err; nil is ignored.
func (l *ErrorLog) Add(err error) {
	l.err = multierr.Append(l.err, err)
}

// Addf appends a formatted error.
func (l *ErrorLog) Addf(format string, args ...any) {
	l.Add(fmt.Errorf(format, args...))
}

// Merge appends every entry of other.
func (l *ErrorLog) Merge(other *ErrorLog) {
	if other != nil {
		l.Add(other.err)
	}
}

// HasErrors reports whether anything was logged.
func (l *ErrorLog) HasErrors() bool {
	return l.err != nil
}

// Errors returns the individual entries.
func (l *ErrorLog) Errors() []error {
	return multierr.Errors(l.err)
}

// Err returns the combined error, or nil.
func (l *ErrorLog) Err() error {
	return l.err
}

// Message joins the entries with newlines.
func (l *ErrorLog) Message() string {
	errs := l.Errors()
	lines := make([]string, len(errs))

	for i, e := range errs {
		lines[i] = e.Error()
	}

	return strings.Join(lines, "\n")
}
