package fixtures

import "errors"

// Wrap composes fn with a list of replacements. The returned function runs a
// fresh session per invocation: every replacement is installed in
// declaration order, the installed values are passed to fn as an explicit
// slice in the same order, and the session is restored on success, error,
// and panic. A failed install aborts the call after unwinding the installs
// that already happened.
func Wrap(fn func(installed ...any) error, replacements ...Replacement) func() error {
	return func() error {
		return WrapWith(nil, fn, replacements...)
	}
}

// WrapWith is Wrap with session options applied to the per-invocation
// session.
func WrapWith(opts []Option, fn func(installed ...any) error, replacements ...Replacement) error {
	return With(func(r *Replacer) error {
		installed := make([]any, 0, len(replacements))
		for _, replacement := range replacements {
			var replaceOpts []ReplaceOption
			if replacement.NonStrict {
				replaceOpts = append(replaceOpts, NonStrict())
			}
			value, err := r.Replace(replacement.Path, replacement.Value, replaceOpts...)
			if err != nil {
				return err
			}
			installed = append(installed, value)
		}
		if fn == nil {
			return errors.New("fixtures: wrapped function is nil")
		}
		return fn(installed...)
	}, opts...)
}
