// FILE: lixenwraith/dotenv/memory.go
package dotenv

import (
	"maps"
	"os"
	"strings"
)

// EnvironFunc returns the process environment as KEY=VALUE pairs.
type EnvironFunc func() []string

// MemoryStore holds the current configuration of a session. It is seeded from
// the process environment and then updated with every accepted pair.
type MemoryStore struct {
	values map[string]any
}

// NewMemoryStore creates a store seeded from environ. A nil environ seeds
// from os.Environ.
func NewMemoryStore(environ EnvironFunc) *MemoryStore {
	if environ == nil {
		environ = os.Environ
	}
	m := &MemoryStore{values: make(map[string]any)}
	for _, pair := range environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			continue
		}
		m.values[k] = v
	}
	return m
}

// Get returns the value for key, or nil when absent.
func (m *MemoryStore) Get(key string) any {
	return m.values[key]
}

// Lookup returns the value for key and whether it is present.
func (m *MemoryStore) Lookup(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present, including keys holding nil.
func (m *MemoryStore) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// All returns a copy of the store contents.
func (m *MemoryStore) All() map[string]any {
	return maps.Clone(m.values)
}

// Len returns the number of stored keys.
func (m *MemoryStore) Len() int {
	return len(m.values)
}

// Clear removes every key, including the seeded environment.
func (m *MemoryStore) Clear() {
	clear(m.values)
}

func (m *MemoryStore) put(key string, value any) {
	m.values[key] = value
}
