package export

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores exporters by name.
type Registry struct {
	mu        sync.RWMutex
	exporters map[string]Exporter
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		exporters: make(map[string]Exporter),
	}
}

// NewDefaultRegistry registers every built-in exporter. Options configure the
// document exporter.
func NewDefaultRegistry(docxOptions ...DocxOption) (*Registry, error) {
	docx, err := NewDocx(docxOptions...)
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	for _, exp := range []Exporter{NewCSV(), NewXLSX(), docx, NewMarkdown(), NewRIPD()} {
		if err := registry.Register(exp); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register adds an exporter by its Name(). Duplicate names return an error.
func (r *Registry) Register(exporter Exporter) error {
	if exporter == nil {
		return fmt.Errorf("export: exporter is required")
	}
	name := exporter.Name()
	if name == "" {
		return fmt.Errorf("export: exporter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exporters[name]; exists {
		return fmt.Errorf("export: exporter %q already registered", name)
	}
	r.exporters[name] = exporter
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(exporter Exporter) {
	if err := r.Register(exporter); err != nil {
		panic(err)
	}
}

// Get retrieves an exporter by name.
func (r *Registry) Get(name string) (Exporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exporter, ok := r.exporters[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
	return exporter, nil
}

// MustGet panics if the exporter is missing.
func (r *Registry) MustGet(name string) Exporter {
	exporter, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return exporter
}

// List returns the sorted exporter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an exporter is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.exporters[name]
	return ok
}
