// Package output writes resolved schemas in a selectable format.
package output

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/specialistvlad/typecollect/internal/schema"
)

// Formatter writes an ordered list of top-level schemas.
type Formatter interface {
	// Name returns the formatter name used on the command line.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Format writes schemas to w.
	Format(w io.Writer, schemas []schema.Type, opts Options) error
}

// Options configures formatting behavior.
type Options struct {
	// Compact minimizes whitespace.
	Compact bool
}

// Registry manages registered formatters.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// NewRegistry creates an empty formatter registry.
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[string]Formatter)}
}

// Default returns a registry with the JSON and YAML formatters.
func Default() *Registry {
	r := NewRegistry()
	r.Register(NewJSONFormatter())
	r.Register(NewYAMLFormatter())
	return r
}

// Register adds a formatter. Registering a name twice is a programming error.
func (r *Registry) Register(f Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Name()]; exists {
		panic(fmt.Sprintf("formatter %q already registered", f.Name()))
	}
	r.formatters[f.Name()] = f
}

// Get returns a formatter by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %v)", name, r.namesLocked())
	}
	return f, nil
}

// List returns the registered formatter names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func documents(schemas []schema.Type) []any {
	docs := make([]any, len(schemas))
	for i, s := range schemas {
		docs[i] = schema.Document(s)
	}
	return docs
}
