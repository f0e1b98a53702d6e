// Package convert maps type-constraint names to converters that turn
// raw string values into typed values.
//
// A Registry is built once — built-ins plus any user registrations —
// and is read-only while routes are being matched. Lookups are purely
// by name, so re-registering a name shadows the built-in converter.
package convert

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Converter turns a raw string into a typed value.
type Converter func(raw string) (any, error)

// ConversionError reports a failed conversion. It rejects only the
// candidate route that bound the value; resolution continues across
// the remaining candidates.
type ConversionError struct {
	TypeName string
	Value    string
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Value, e.TypeName, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Registry maps type-constraint names to converters.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
}

// NewRegistry returns a registry preloaded with the built-in
// converters.
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[string]Converter)}
	registerBuiltins(r)
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared default registry. Callers extending it
// must do so before the first match is attempted.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register binds a converter to a type-constraint name, shadowing any
// existing converter of the same name.
func (r *Registry) Register(name string, fn Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[name] = fn
}

// RegisterEnum registers a converter that accepts the given values by
// name, case-insensitively, and yields the canonical value string.
func (r *Registry) RegisterEnum(name string, values ...string) {
	canonical := make([]string, len(values))
	copy(canonical, values)
	r.Register(name, func(raw string) (any, error) {
		for _, v := range canonical {
			if strings.EqualFold(raw, v) {
				return v, nil
			}
		}
		return nil, fmt.Errorf("must be one of %s", strings.Join(canonical, ", "))
	})
}

// Known reports whether a converter is registered for the name.
func (r *Registry) Known(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.converters[name]
	return ok
}

// Names returns all registered type-constraint names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Convert turns a raw value into a typed value using the converter
// registered for the type-constraint name. Failures are returned as a
// *ConversionError, never panicked or thrown.
func (r *Registry) Convert(raw, typeName string) (any, error) {
	r.mu.RLock()
	fn, ok := r.converters[typeName]
	r.mu.RUnlock()
	if !ok {
		return nil, &ConversionError{
			TypeName: typeName,
			Value:    raw,
			Err:      fmt.Errorf("no converter registered"),
		}
	}
	v, err := fn(raw)
	if err != nil {
		if ce, isConv := err.(*ConversionError); isConv {
			return nil, ce
		}
		return nil, &ConversionError{TypeName: typeName, Value: raw, Err: err}
	}
	return v, nil
}
