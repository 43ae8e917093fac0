// Package registry holds the catalog of task executors available to the
// execution engine. Registration is explicit: the process bootstrap calls
// RegisterBuiltins (and optionally LoadFile) once, so catalog order is
// deterministic and never depends on package init side effects.
package registry

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateExecutor indicates an executor ID was registered twice.
var ErrDuplicateExecutor = errors.New("executor already registered")

// SchemaProperty describes one input parameter of an executor.
type SchemaProperty struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

// InputSchema describes the input parameters of an executor. Properties
// keep their declaration order so formatted catalogs are reproducible.
type InputSchema struct {
	Properties []SchemaProperty `yaml:"properties"`
}

// ExecutorInfo describes one registered task type: the name tasks use to
// select it, a short description, and its input schema.
type ExecutorInfo struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Schema      InputSchema `yaml:"schema"`
}

// Registry is a thread-safe, order-preserving catalog of executors.
type Registry struct {
	mu   sync.RWMutex
	ids  []string
	byID map[string]ExecutorInfo
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byID: make(map[string]ExecutorInfo)}
}

// Register adds an executor to the catalog. Registration order is
// preserved and duplicate IDs are rejected.
func (r *Registry) Register(info ExecutorInfo) error {
	if info.ID == "" {
		return errors.New("executor ID must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[info.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateExecutor, info.ID)
	}
	r.ids = append(r.ids, info.ID)
	r.byID[info.ID] = info
	return nil
}

// Get returns the executor with the given ID.
func (r *Registry) Get(id string) (ExecutorInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.byID[id]
	return info, ok
}

// All returns every registered executor in registration order.
func (r *Registry) All() []ExecutorInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ExecutorInfo, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered executors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids)
}
