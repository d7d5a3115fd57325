package groups

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the kind of every contract violation reported by this package.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes a rejected argument of a Collector operation.
type ArgumentError struct {
	Op  string
	Msg string
}

func (e *ArgumentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidArgument.Error(), e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrInvalidArgument.Error(), e.Msg)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

func invalidf(op, format string, args ...any) error {
	return &ArgumentError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
