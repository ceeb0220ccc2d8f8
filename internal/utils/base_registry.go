package utils

import (
	"fmt"
	"sync"
)

// KeyValidator checks a key before it is registered
type KeyValidator[K comparable] func(key K) error

// Registry is a map guarded for concurrent reads whose keys are validated on
// insertion. A later registration of the same key replaces the value.
type Registry[K comparable, V any] struct {
	mu       sync.RWMutex
	name     string
	items    map[K]V
	validate KeyValidator[K]
}

// NewRegistry creates an empty registry; validate may be nil
func NewRegistry[K comparable, V any](name string, validate KeyValidator[K]) *Registry[K, V] {
	return &Registry[K, V]{
		name:     name,
		items:    make(map[K]V),
		validate: validate,
	}
}

// Register stores value under key
func (r *Registry[K, V]) Register(key K, value V) error {
	if r.validate != nil {
		if err := r.validate(key); err != nil {
			return fmt.Errorf("%s registry: %w", r.name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = value
	return nil
}

// Get returns the value stored under key
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.items[key]
	return value, ok
}

// Size returns the number of keys
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// NotEmptyKey rejects empty string keys
func NotEmptyKey(desc string) KeyValidator[string] {
	return func(key string) error {
		if key == "" {
			return fmt.Errorf("%s cannot be empty", desc)
		}
		return nil
	}
}
