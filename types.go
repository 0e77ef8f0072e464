// Package fixtures lets test authors temporarily substitute struct fields,
// map entries, or slice elements addressed by dotted paths, then restore the
// original values afterward. Containers are reached through a process-wide
// namespace registry populated during test setup; every replacement is
// recorded and unwound last-installed-first when its session ends.
package fixtures

import (
	"github.com/goliatone/go-fixtures/pkg/lifecycle"
)

// removeMarker backs the Remove sentinel. The struct is non-empty so every
// allocation has a distinct address and identity comparison stays reliable.
type removeMarker struct{ _ byte }

// Remove is the removal sentinel. Passing it as the replacement value
// requests deletion of the selector instead of substitution: map keys are
// deleted, struct fields and slice elements reset to their zero value. It is
// distinguishable from any legitimate value, including nil, by identity.
var Remove any = &removeMarker{}

// Replacement configures one install for the Wrap adapter. The zero value of
// NonStrict keeps the default strict behaviour.
type Replacement struct {
	Path      string
	Value     any
	NonStrict bool
}

// Option configures a Replacer session.
type Option func(*sessionConfig)

type sessionConfig struct {
	logger    ReplaceLogger
	hooks     lifecycle.Hooks
	cache     ProgramCache
	functions *FunctionRegistry
}

func applyOptions(opts []Option) sessionConfig {
	cfg := sessionConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithHooks attaches lifecycle hooks notified on install, restore, and
// teardown. Hooks are cloned and nil entries dropped.
func WithHooks(hooks lifecycle.Hooks) Option {
	normalized := cloneHooks(hooks)
	return func(cfg *sessionConfig) {
		cfg.hooks = normalized
	}
}

// WithProgramCache registers a compiled-expression cache used by Check.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *sessionConfig) {
		cfg.cache = cache
	}
}

// WithFunctionRegistry exposes registry's functions to Check expressions.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *sessionConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for Check expressions.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *sessionConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

func cloneHooks(hooks lifecycle.Hooks) lifecycle.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]lifecycle.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return lifecycle.Hooks(normalized)
}

// ReplaceOption configures a single Replace call.
type ReplaceOption func(*replaceConfig)

type replaceConfig struct {
	strict bool
}

func applyReplaceOptions(opts []ReplaceOption) replaceConfig {
	cfg := replaceConfig{strict: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// NonStrict permits installing over an absent selector. The fabricated entry
// is deleted again on restore rather than overwritten with a prior value.
func NonStrict() ReplaceOption {
	return func(cfg *replaceConfig) {
		cfg.strict = false
	}
}
