package fixtures

import (
	"fmt"
	"time"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Check evaluates expression against the current value at path and fails
// unless the result is exactly true. The expression environment binds
// "value" to the current value, "path", and "now", plus any registered
// custom functions. Useful for asserting observable state mid-session.
func (r *Replacer) Check(path, expression string) error {
	result, err := r.Eval(path, expression)
	if err != nil {
		return err
	}
	if ok, isBool := result.(bool); !isBool || !ok {
		return &CheckError{Path: path, Expr: expression, Result: result}
	}
	return nil
}

// Eval evaluates expression against the current value at path and returns
// the raw result.
func (r *Replacer) Eval(path, expression string) (any, error) {
	if expression == "" {
		return nil, wrapCheckError(path, expression, fmt.Errorf("expression must not be empty"))
	}
	value, err := Inspect(path)
	if err != nil {
		return nil, err
	}
	env := r.environment(path, value)
	if r.cfg.cache == nil {
		result, evalErr := exprlang.Eval(expression, env)
		if evalErr != nil {
			return nil, wrapCheckError(path, expression, evalErr)
		}
		return result, nil
	}
	program, err := r.loadOrCompile(path, expression)
	if err != nil {
		return nil, err
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return nil, wrapCheckError(path, expression, err)
	}
	return result, nil
}

func (r *Replacer) loadOrCompile(path, expression string) (*exprvm.Program, error) {
	if r.cfg.cache != nil {
		if cached, ok := r.cfg.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range r.registryNames() {
		fn := r.registryFunction(name)
		options = append(options, exprlang.Function(name, fn))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapCheckError(path, expression, err)
	}
	if r.cfg.cache != nil {
		r.cfg.cache.Set(expression, program)
	}
	return program, nil
}

func (r *Replacer) environment(path string, value any) map[string]any {
	env := map[string]any{
		"value": value,
		"path":  path,
		"now":   time.Now(),
	}
	if registry := r.cfg.functions; registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return registry.Call(name, arguments...)
		}
		for _, name := range registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return registry.Call(fn, arguments...)
			}
		}
	}
	return env
}

func (r *Replacer) registryNames() []string {
	if r == nil || r.cfg.functions == nil {
		return nil
	}
	return r.cfg.functions.Names()
}

func (r *Replacer) registryFunction(name string) func(...any) (any, error) {
	if r == nil || r.cfg.functions == nil {
		return nil
	}
	return func(arguments ...any) (any, error) {
		return r.cfg.functions.Call(name, arguments...)
	}
}
