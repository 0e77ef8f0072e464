package fixtures

import (
	"fmt"
	"reflect"
	"strconv"
)

// SelectorKind identifies how a final path segment addresses its container.
type SelectorKind int

const (
	// KindNone means no accessor could interpret the selector.
	KindNone SelectorKind = iota
	// KindField addresses an exported struct field.
	KindField
	// KindKey addresses a map entry.
	KindKey
	// KindIndex addresses a slice or array element.
	KindIndex
)

func (k SelectorKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindKey:
		return "key"
	case KindIndex:
		return "index"
	default:
		return "none"
	}
}

// accessor interprets one path segment against one container shape. The
// three implementations are tried in a fixed priority order per segment:
// struct field, map key, then slice index.
type accessor interface {
	kind() SelectorKind
	// applies reports whether segment is meaningful for container at all,
	// regardless of whether the selector currently holds a value.
	applies(container reflect.Value, segment string) bool
	// lookup returns the value at segment and whether it is present.
	lookup(container reflect.Value, segment string) (reflect.Value, bool)
	set(container reflect.Value, segment string, value any) error
	// clear removes the selector: map keys are deleted, struct fields and
	// slice elements are reset to their zero value.
	clear(container reflect.Value, segment string) error
}

var accessors = []accessor{fieldAccessor{}, mapAccessor{}, sliceAccessor{}}

type fieldAccessor struct{}

func (fieldAccessor) kind() SelectorKind { return KindField }

func (fieldAccessor) applies(container reflect.Value, segment string) bool {
	if container.Kind() != reflect.Struct {
		return false
	}
	field, ok := container.Type().FieldByName(segment)
	return ok && field.IsExported()
}

func (fieldAccessor) lookup(container reflect.Value, segment string) (reflect.Value, bool) {
	field := container.FieldByName(segment)
	if !field.IsValid() {
		return reflect.Value{}, false
	}
	return field, true
}

func (fieldAccessor) set(container reflect.Value, segment string, value any) error {
	field := container.FieldByName(segment)
	if !field.IsValid() {
		return fmt.Errorf("no field %q on %s", segment, container.Type())
	}
	if !field.CanSet() {
		return fmt.Errorf("field %q on %s is not addressable", segment, container.Type())
	}
	assignable, err := valueFor(value, field.Type())
	if err != nil {
		return err
	}
	field.Set(assignable)
	return nil
}

func (fieldAccessor) clear(container reflect.Value, segment string) error {
	field := container.FieldByName(segment)
	if !field.IsValid() {
		return fmt.Errorf("no field %q on %s", segment, container.Type())
	}
	if !field.CanSet() {
		return fmt.Errorf("field %q on %s is not addressable", segment, container.Type())
	}
	field.Set(reflect.Zero(field.Type()))
	return nil
}

type mapAccessor struct{}

func (mapAccessor) kind() SelectorKind { return KindKey }

func (mapAccessor) applies(container reflect.Value, segment string) bool {
	if container.Kind() != reflect.Map {
		return false
	}
	_, ok := mapKey(container.Type().Key(), segment)
	return ok
}

func (mapAccessor) lookup(container reflect.Value, segment string) (reflect.Value, bool) {
	key, ok := mapKey(container.Type().Key(), segment)
	if !ok {
		return reflect.Value{}, false
	}
	entry := container.MapIndex(key)
	if !entry.IsValid() {
		return reflect.Value{}, false
	}
	return entry, true
}

func (mapAccessor) set(container reflect.Value, segment string, value any) error {
	if container.IsNil() {
		return fmt.Errorf("map %s is nil", container.Type())
	}
	key, ok := mapKey(container.Type().Key(), segment)
	if !ok {
		return fmt.Errorf("segment %q is not a valid %s key", segment, container.Type().Key())
	}
	assignable, err := valueFor(value, container.Type().Elem())
	if err != nil {
		return err
	}
	container.SetMapIndex(key, assignable)
	return nil
}

func (mapAccessor) clear(container reflect.Value, segment string) error {
	if container.IsNil() {
		return nil
	}
	key, ok := mapKey(container.Type().Key(), segment)
	if !ok {
		return fmt.Errorf("segment %q is not a valid %s key", segment, container.Type().Key())
	}
	container.SetMapIndex(key, reflect.Value{})
	return nil
}

type sliceAccessor struct{}

func (sliceAccessor) kind() SelectorKind { return KindIndex }

func (sliceAccessor) applies(container reflect.Value, segment string) bool {
	if container.Kind() != reflect.Slice && container.Kind() != reflect.Array {
		return false
	}
	_, err := strconv.Atoi(segment)
	return err == nil
}

func (sliceAccessor) lookup(container reflect.Value, segment string) (reflect.Value, bool) {
	index, err := strconv.Atoi(segment)
	if err != nil || index < 0 || index >= container.Len() {
		return reflect.Value{}, false
	}
	return container.Index(index), true
}

func (sliceAccessor) set(container reflect.Value, segment string, value any) error {
	index, err := strconv.Atoi(segment)
	if err != nil {
		return fmt.Errorf("segment %q is not an index", segment)
	}
	if index < 0 || index >= container.Len() {
		return fmt.Errorf("index %d out of range (len %d)", index, container.Len())
	}
	element := container.Index(index)
	if !element.CanSet() {
		return fmt.Errorf("element %d of %s is not addressable", index, container.Type())
	}
	assignable, err := valueFor(value, element.Type())
	if err != nil {
		return err
	}
	element.Set(assignable)
	return nil
}

func (sliceAccessor) clear(container reflect.Value, segment string) error {
	index, err := strconv.Atoi(segment)
	if err != nil {
		return fmt.Errorf("segment %q is not an index", segment)
	}
	if index < 0 || index >= container.Len() {
		return fmt.Errorf("index %d out of range (len %d)", index, container.Len())
	}
	element := container.Index(index)
	if !element.CanSet() {
		return fmt.Errorf("element %d of %s is not addressable", index, container.Type())
	}
	element.Set(reflect.Zero(element.Type()))
	return nil
}

// mapKey converts segment into a key of type keyType. String and integer
// keyed maps are supported, as is map[any]T where segment is used verbatim.
func mapKey(keyType reflect.Type, segment string) (reflect.Value, bool) {
	switch keyType.Kind() {
	case reflect.String:
		return reflect.ValueOf(segment).Convert(keyType), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(segment, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(keyType), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(segment, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(keyType), true
	case reflect.Interface:
		if keyType.NumMethod() == 0 {
			return reflect.ValueOf(segment), true
		}
	}
	return reflect.Value{}, false
}

// valueFor adapts value to the assignment type, producing a zero value for
// nil and rejecting incompatible types before any mutation happens.
func valueFor(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(target) {
		return reflect.Value{}, fmt.Errorf("cannot assign %T to %s", value, target)
	}
	return rv, nil
}

// unwrap follows interfaces and pointers down to the container they carry.
func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

// target is a resolved (container, selector) pair identifying one mutable
// slot. The final segment is deliberately left unresolved so install can
// decide presence and mutate atomically.
type target struct {
	path      string
	container reflect.Value
	selector  string
	acc       accessor
}

func (t *target) kind() SelectorKind {
	if t.acc == nil {
		return KindNone
	}
	return t.acc.kind()
}

func (t *target) lookup() (reflect.Value, bool) {
	if t.acc == nil {
		return reflect.Value{}, false
	}
	return t.acc.lookup(t.container, t.selector)
}

func (t *target) set(value any) error {
	if t.acc == nil {
		return fmt.Errorf("selector %q has no accessor", t.selector)
	}
	return t.acc.set(t.container, t.selector, value)
}

func (t *target) clear() error {
	if t.acc == nil {
		return fmt.Errorf("selector %q has no accessor", t.selector)
	}
	return t.acc.clear(t.container, t.selector)
}

// resolve walks path from its registered root down to the container the
// final segment applies to. Every segment but the last must resolve.
func resolve(path string) (*target, error) {
	root, rest, err := defaultRegistry.lookupRoot(path)
	if err != nil {
		return nil, err
	}

	current := reflect.ValueOf(root)
	for _, segment := range rest[:len(rest)-1] {
		container := unwrap(current)
		next, ok := resolveSegment(container, segment)
		if !ok {
			return nil, &TargetNotFoundError{Path: path, Segment: segment}
		}
		current = next
	}

	container := unwrap(current)
	selector := rest[len(rest)-1]
	for _, acc := range accessors {
		if acc.applies(container, selector) {
			return &target{
				path:      path,
				container: container,
				selector:  selector,
				acc:       acc,
			}, nil
		}
	}
	return &target{path: path, container: container, selector: selector}, nil
}

func resolveSegment(container reflect.Value, segment string) (reflect.Value, bool) {
	if !container.IsValid() {
		return reflect.Value{}, false
	}
	for _, acc := range accessors {
		if !acc.applies(container, segment) {
			continue
		}
		if value, ok := acc.lookup(container, segment); ok {
			return value, true
		}
	}
	return reflect.Value{}, false
}
