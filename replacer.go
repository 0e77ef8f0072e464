package fixtures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-fixtures/pkg/lifecycle"
)

// Record is the captured prior state of one slot. Its previous-value and
// presence pair is immutable once captured and is exactly what restore
// writes back. Each record restores at most once.
type Record struct {
	path      string
	tgt       *target
	previous  any
	present   bool
	installed any
	restored  bool
}

// Path returns the dotted path the record was installed against.
func (r *Record) Path() string { return r.path }

// Present reports whether the selector existed before the install.
func (r *Record) Present() bool { return r.present }

// Previous returns the value captured before the install. It is only
// meaningful when Present is true.
func (r *Record) Previous() any { return r.previous }

// Installed returns the value the install wrote, or Remove for deletions.
func (r *Record) Installed() any { return r.installed }

// Kind returns how the record's selector addresses its container.
func (r *Record) Kind() SelectorKind { return r.tgt.kind() }

// Replacer owns an ordered set of replacement records scoped to one logical
// session. Records restore in reverse insertion order so overlapping
// replacements on the same slot unwind correctly. A Replacer is not safe for
// concurrent use, and callers must not share a target path across
// concurrently executing sessions.
type Replacer struct {
	id      string
	cfg     sessionConfig
	records []*Record
}

// New constructs an empty session.
func New(opts ...Option) *Replacer {
	return &Replacer{
		id:  uuid.NewString(),
		cfg: applyOptions(opts),
	}
}

// ID returns the session identifier surfaced in log events and teardown
// errors.
func (r *Replacer) ID() string { return r.id }

func (r *Replacer) logger() ReplaceLogger {
	if r.cfg.logger != nil {
		return r.cfg.logger
	}
	return noopReplaceLogger{}
}

// Replace resolves path, captures the prior state of its final selector,
// installs value, and retains the record for RestoreAll. It returns the
// value actually installed. Passing Remove deletes the selector instead.
//
// Strict mode is the default: an absent selector fails with
// AttributeNotFoundError before any mutation. Pass NonStrict() to permit
// fabricating map entries that are deleted again on restore.
func (r *Replacer) Replace(path string, value any, opts ...ReplaceOption) (any, error) {
	cfg := applyReplaceOptions(opts)
	start := time.Now()
	record, err := install(path, value, cfg.strict)

	event := ReplaceLogEvent{
		SessionID: r.id,
		Op:        "install",
		Path:      path,
		Duration:  time.Since(start),
		Err:       err,
	}
	if record != nil {
		event.Kind = record.Kind()
	}
	r.logger().LogReplacement(event)

	if err != nil {
		return nil, err
	}
	r.records = append(r.records, record)
	r.emit(lifecycle.VerbInstall, path)
	return record.installed, nil
}

// MustReplace is Replace for test setup code that treats failures as fatal.
func (r *Replacer) MustReplace(path string, value any, opts ...ReplaceOption) any {
	installed, err := r.Replace(path, value, opts...)
	if err != nil {
		panic(err)
	}
	return installed
}

// Records returns the session's replacement records in insertion order.
func (r *Replacer) Records() []*Record {
	out := make([]*Record, len(r.records))
	copy(out, r.records)
	return out
}

// RestoreAll restores every record in reverse insertion order, then clears
// the set. Every record is attempted even when one fails; failures are
// aggregated and returned so the caller's test framework reports the leak
// instead of silently continuing with corrupted state.
func (r *Replacer) RestoreAll() error {
	var errs []error
	for i := len(r.records) - 1; i >= 0; i-- {
		record := r.records[i]
		start := time.Now()
		err := r.restoreRecord(record)
		r.logger().LogReplacement(ReplaceLogEvent{
			SessionID: r.id,
			Op:        "restore",
			Path:      record.path,
			Kind:      record.Kind(),
			Duration:  time.Since(start),
			Err:       err,
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.emit(lifecycle.VerbRestore, record.path)
	}
	r.records = nil
	r.emit(lifecycle.VerbTeardown, "")
	return errors.Join(errs...)
}

func (r *Replacer) restoreRecord(record *Record) (err error) {
	if record.restored {
		return nil
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &TeardownError{
				SessionID: r.id,
				Path:      record.path,
				Err:       fmt.Errorf("container no longer addressable: %v", recovered),
			}
		}
	}()

	var restoreErr error
	if record.present {
		restoreErr = record.tgt.set(record.previous)
	} else {
		restoreErr = record.tgt.clear()
	}
	if restoreErr != nil {
		return &TeardownError{SessionID: r.id, Path: record.path, Err: restoreErr}
	}
	record.restored = true
	return nil
}

func (r *Replacer) emit(verb, path string) {
	if !r.cfg.hooks.Enabled() {
		return
	}
	err := r.cfg.hooks.Notify(context.Background(), lifecycle.Event{
		Verb:      verb,
		SessionID: r.id,
		Path:      path,
	})
	if err != nil {
		r.logger().LogReplacement(ReplaceLogEvent{
			SessionID: r.id,
			Op:        "hook",
			Path:      path,
			Err:       err,
		})
	}
}

// With runs fn inside a fresh session and guarantees RestoreAll on every
// exit path, including panics. Restore failures are joined onto fn's error.
func With(fn func(*Replacer) error, opts ...Option) (err error) {
	r := New(opts...)
	defer func() {
		restoreErr := r.RestoreAll()
		switch {
		case err == nil:
			err = restoreErr
		case restoreErr != nil:
			err = errors.Join(err, restoreErr)
		}
	}()
	return fn(r)
}

// install resolves path and mutates its final selector synchronously,
// capturing presence and the previous value first. Strict failures happen
// before any mutation.
func install(path string, value any, strict bool) (*Record, error) {
	tgt, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if tgt.acc == nil {
		return nil, &AttributeNotFoundError{Path: path, Selector: tgt.selector}
	}

	current, present := tgt.lookup()
	if strict && !present {
		return nil, &AttributeNotFoundError{Path: path, Selector: tgt.selector}
	}

	var previous any
	if present {
		previous = current.Interface()
	}

	if value == Remove {
		if present {
			if err := tgt.clear(); err != nil {
				return nil, fmt.Errorf("fixtures: install %q: %w", path, err)
			}
		}
	} else {
		if err := tgt.set(value); err != nil {
			return nil, fmt.Errorf("fixtures: install %q: %w", path, err)
		}
	}

	return &Record{
		path:      path,
		tgt:       tgt,
		previous:  previous,
		present:   present,
		installed: value,
	}, nil
}

// Inspect returns the current value at path without mutating anything.
func Inspect(path string) (any, error) {
	tgt, err := resolve(path)
	if err != nil {
		return nil, err
	}
	current, present := tgt.lookup()
	if !present {
		return nil, &AttributeNotFoundError{Path: path, Selector: tgt.selector}
	}
	return current.Interface(), nil
}
