// FILE: lixenwraith/dotenv/adaptor.go
package dotenv

import (
	"fmt"
	"maps"
	"os"
	"sync"
)

// Adaptor mirrors accepted pairs into an external store.
type Adaptor interface {
	Put(key string, value any) error
}

// AdaptorFunc adapts a plain function to the Adaptor interface.
type AdaptorFunc func(key string, value any) error

func (f AdaptorFunc) Put(key string, value any) error { return f(key, value) }

// AdaptorPolicy decides what a failing adaptor does to a parse.
type AdaptorPolicy int

const (
	// AdaptorPolicyFollowMode fails in strict mode and logs in permissive mode.
	AdaptorPolicyFollowMode AdaptorPolicy = iota
	// AdaptorPolicyIgnore logs the failure and continues.
	AdaptorPolicyIgnore
	// AdaptorPolicyFail aborts the parse in every mode.
	AdaptorPolicyFail
)

// EnvAdaptor writes pairs into the process environment.
type EnvAdaptor struct{}

func (EnvAdaptor) Put(key string, value any) error {
	if err := os.Setenv(key, FormatValue(value)); err != nil {
		return fmt.Errorf("setenv %s: %w", key, err)
	}
	return nil
}

// ConstantAdaptor is a write-once symbol table. Redefining a key fails.
type ConstantAdaptor struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConstantAdaptor creates an empty symbol table.
func NewConstantAdaptor() *ConstantAdaptor {
	return &ConstantAdaptor{values: make(map[string]any)}
}

func (c *ConstantAdaptor) Put(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.values[key]; exists {
		return fmt.Errorf("%w: %s", ErrConstantDefined, key)
	}
	c.values[key] = value
	return nil
}

// Lookup returns a defined constant.
func (c *ConstantAdaptor) Lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Defined reports whether key has been defined.
func (c *ConstantAdaptor) Defined(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// MapAdaptor mirrors pairs into a plain map, last write wins.
type MapAdaptor struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMapAdaptor creates an empty mirror.
func NewMapAdaptor() *MapAdaptor {
	return &MapAdaptor{values: make(map[string]any)}
}

func (m *MapAdaptor) Put(key string, value any) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

// Values returns a copy of the mirrored pairs.
func (m *MapAdaptor) Values() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values)
}

// namedAdaptor keeps registration order for fan-out.
type namedAdaptor struct {
	name    string
	adaptor Adaptor
}

// AddAdaptor registers a under name. Re-adding a name replaces the adaptor in
// place, keeping its position.
func (d *DotEnv) AddAdaptor(name string, a Adaptor) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addAdaptor(name, a)
}

func (d *DotEnv) addAdaptor(name string, a Adaptor) error {
	if name == "" || a == nil {
		return runtimeErrorf(ErrUnknownAdaptor, "adaptor requires a name and an implementation")
	}
	for i := range d.adaptors {
		if d.adaptors[i].name == name {
			d.adaptors[i].adaptor = a
			return nil
		}
	}
	d.adaptors = append(d.adaptors, namedAdaptor{name: name, adaptor: a})
	return nil
}

// RemoveAdaptor unregisters name.
func (d *DotEnv) RemoveAdaptor(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.adaptors {
		if d.adaptors[i].name == name {
			d.adaptors = append(d.adaptors[:i], d.adaptors[i+1:]...)
			return nil
		}
	}
	return runtimeErrorf(ErrUnknownAdaptor, "adaptor %q not registered", name)
}

// Adaptors returns registered adaptor names in fan-out order.
func (d *DotEnv) Adaptors() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, len(d.adaptors))
	for i, a := range d.adaptors {
		names[i] = a.name
	}
	return names
}

// fanOut forwards one pair to every adaptor. A non-nil error aborts the parse.
func (d *DotEnv) fanOut(source, key string, value any) error {
	for _, a := range d.adaptors {
		err := a.adaptor.Put(key, value)
		if err == nil {
			continue
		}
		rerr := &RuntimeError{
			Msg: fmt.Sprintf("adaptor %q put %q: %v", a.name, key, err),
			Err: fmt.Errorf("%w: %w", ErrAdaptor, err),
		}
		fatal := d.adaptorPolicy == AdaptorPolicyFail ||
			(d.adaptorPolicy == AdaptorPolicyFollowMode && d.strict)
		if fatal {
			return rerr
		}
		d.logger.Warn("adaptor put failed",
			"source", source,
			"key", key,
			"adaptor", a.name,
			"error", err,
		)
	}
	return nil
}
