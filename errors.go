package fixtures

import (
	"errors"
	"fmt"
)

// ErrClockExhausted is returned by queue-seeded clocks once every queued
// value has been consumed.
var ErrClockExhausted = errors.New("fixtures: clock queue exhausted")

// MalformedTargetError reports a target path that cannot identify a nested
// member, typically because it contains no dot separator.
type MalformedTargetError struct {
	Path   string
	Reason string
}

func (e *MalformedTargetError) Error() string {
	if e == nil {
		return "<nil>"
	}
	reason := e.Reason
	if reason == "" {
		reason = "target must contain at least one dot"
	}
	return fmt.Sprintf("fixtures: malformed target %q: %s", e.Path, reason)
}

// TargetNotFoundError reports an intermediate path segment that did not
// resolve against its container.
type TargetNotFoundError struct {
	Path    string
	Segment string
	Err     error
}

func (e *TargetNotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("fixtures: target %q: segment %q: %v", e.Path, e.Segment, e.Err)
	}
	return fmt.Sprintf("fixtures: target %q: segment %q did not resolve", e.Path, e.Segment)
}

func (e *TargetNotFoundError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AttributeNotFoundError reports a strict install whose final selector was
// absent from the resolved container.
type AttributeNotFoundError struct {
	Path     string
	Selector string
}

func (e *AttributeNotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("fixtures: target %q: selector %q does not exist", e.Path, e.Selector)
}

// TeardownError reports a record that could not be restored. It is fatal for
// the owning session: a swallowed teardown failure would leak mutated state
// into subsequent tests.
type TeardownError struct {
	SessionID string
	Path      string
	Err       error
}

func (e *TeardownError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("fixtures: session %s: restore %q: %v", e.SessionID, e.Path, e.Err)
}

func (e *TeardownError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CheckError captures expression metadata alongside the originating failure.
type CheckError struct {
	Path   string
	Expr   string
	Result any
	Err    error
}

func (e *CheckError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("fixtures: check %s %q: %v", e.Path, e.Expr, e.Err)
	}
	return fmt.Sprintf("fixtures: check %s %q: got %v, want true", e.Path, e.Expr, e.Result)
}

func (e *CheckError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapCheckError(path, expression string, err error) error {
	if err == nil {
		return nil
	}

	var checkErr *CheckError
	if errors.As(err, &checkErr) {
		if checkErr.Path == "" {
			checkErr.Path = path
		}
		if checkErr.Expr == "" {
			checkErr.Expr = expression
		}
		return checkErr
	}

	return &CheckError{
		Path: path,
		Expr: expression,
		Err:  err,
	}
}
