package registry

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// FetchSpec describes how the orchestrator obtains a widget's raw payload.
// Local types skip network I/O entirely; the parser is invoked with a nil
// payload and computes the display model from ambient state.
type FetchSpec struct {
	Local  bool
	Group  string
	Route  string
	Params func(config map[string]any) map[string]any
	Query  func(config map[string]any) map[string]string
}

// Descriptor captures a widget type, its default configuration, and the
// strategies used to fetch, parse, and title instances of that type.
type Descriptor struct {
	Type        string
	Icon        string
	Title       string
	Description string
	Defaults    map[string]any
	Fetch       FetchSpec
	Parse       func(payload []byte) (any, error)
	TitleOf     func(config map[string]any) string

	// TickEvery schedules recurring local re-renders after the first
	// successful load. Zero disables the timer; only the clock uses it.
	TickEvery time.Duration
}

// NotFoundError is returned when a widget type is not registered.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("widget type %q not found", e.Key)
}

// Registry stores widget type descriptors in declaration order. Lookup keys
// are canonicalised to lowercase; List is stable across runs.
type Registry struct {
	mu          sync.RWMutex
	order       []string
	descriptors map[string]Descriptor
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
	}
}

// Register adds a descriptor to the registry. Descriptors without a type key
// or parser are ignored; re-registering a type replaces the descriptor but
// keeps its original declaration position.
func (r *Registry) Register(descriptor Descriptor) {
	key := canonicalKey(descriptor.Type)
	if key == "" || descriptor.Parse == nil {
		return
	}
	descriptor.Type = key

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.descriptors == nil {
		r.descriptors = make(map[string]Descriptor)
	}
	if _, exists := r.descriptors[key]; !exists {
		r.order = append(r.order, key)
	}
	r.descriptors[key] = descriptor
}

// Lookup resolves a descriptor by widget type.
func (r *Registry) Lookup(widgetType string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptor, ok := r.descriptors[canonicalKey(widgetType)]
	if !ok {
		return Descriptor{}, &NotFoundError{Key: widgetType}
	}
	return descriptor, nil
}

// Has reports whether the widget type is registered.
func (r *Registry) Has(widgetType string) bool {
	_, err := r.Lookup(widgetType)
	return err == nil
}

// List returns every registered descriptor in declaration order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.descriptors[key])
	}
	return out
}

// Types returns the registered type keys in declaration order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func canonicalKey(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
