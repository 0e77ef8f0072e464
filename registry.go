package fixtures

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// The registry maps fully-qualified dotted names to live container
// references. It stands in for the import machinery the dotted addressing
// scheme assumes: populate it during program or test setup, then treat it as
// read-only while sessions run.
type namespaceRegistry struct {
	mu    sync.RWMutex
	roots map[string]any
}

var defaultRegistry = &namespaceRegistry{roots: map[string]any{}}

// Register associates name with a live container. The container must be a
// pointer, map, or slice so replacements installed through it are visible to
// the code under test. Registering an existing name replaces the previous
// entry; tests commonly re-seed between runs.
func Register(name string, container any) error {
	return defaultRegistry.register(name, container)
}

// Unregister removes a registered root. Unknown names are ignored.
func Unregister(name string) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	delete(defaultRegistry.roots, name)
}

// ResetRegistry drops every registered root. Intended for test isolation.
func ResetRegistry() {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.roots = map[string]any{}
}

func (r *namespaceRegistry) register(name string, container any) error {
	if name == "" {
		return fmt.Errorf("fixtures: root name must not be empty")
	}
	for _, segment := range strings.Split(name, ".") {
		if segment == "" {
			return fmt.Errorf("fixtures: root name %q has an empty segment", name)
		}
	}
	if container == nil {
		return fmt.Errorf("fixtures: root %q: container must not be nil", name)
	}
	switch reflect.ValueOf(container).Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
	default:
		return fmt.Errorf(
			"fixtures: root %q: container must be a pointer, map, or slice, got %T",
			name, container,
		)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roots[name] = container
	return nil
}

// lookupRoot finds the registered root matching the longest dotted prefix of
// path that still leaves at least one trailing segment to act as selector.
func (r *namespaceRegistry) lookupRoot(path string) (any, []string, error) {
	segments := strings.Split(path, ".")
	if len(segments) < 2 {
		return nil, nil, &MalformedTargetError{Path: path}
	}
	for _, segment := range segments {
		if segment == "" {
			return nil, nil, &MalformedTargetError{Path: path, Reason: "empty path segment"}
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(segments) - 1; i >= 1; i-- {
		prefix := strings.Join(segments[:i], ".")
		if root, ok := r.roots[prefix]; ok {
			return root, segments[i:], nil
		}
	}
	return nil, nil, &TargetNotFoundError{
		Path:    path,
		Segment: segments[0],
		Err:     fmt.Errorf("no registered root matches any prefix"),
	}
}
