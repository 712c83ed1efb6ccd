package kali

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNoRows is returned by FetchOne and Reference.Load when the
	// statement yields no row. It is sql.ErrNoRows, so errors.Is works with
	// either name.
	ErrNoRows = sql.ErrNoRows

	ErrInvalidTarget = errors.New("kali: target must be a non-nil pointer")
)

// UsageError reports a misuse of the builder API: a clause that is illegal
// for the statement kind, an unsupported value type, an unknown column. It
// is a programming error and is raised with panic, never returned.
type UsageError struct {
	Op  string
	Msg string
}

func (e *UsageError) Error() string {
	return "kali: " + e.Op + ": " + e.Msg
}

func usageErrorf(op, format string, args ...interface{}) *UsageError {
	return &UsageError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// DecodeError is returned when a result row cannot be stored into the
// requested target.
type DecodeError struct {
	Column string // empty if the failure is not tied to one column
	Target string // Go type of the target
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "kali: decode " + e.Target
	if e.Column != "" {
		msg += ` column "` + e.Column + `"`
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsUsageError reports whether a recovered panic value is a *UsageError.
func IsUsageError(r interface{}) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}
	var ue *UsageError
	return errors.As(err, &ue)
}
