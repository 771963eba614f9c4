// FILE: lixenwraith/dotenv/dotenv.go
package dotenv

import (
	"io"
	"log/slog"
	"maps"
	"sync"
)

// DefaultPath is loaded when Load is called without paths.
const DefaultPath = "./.env"

// MaxFileSize bounds a single source file read by Load.
const MaxFileSize = 10 << 20

// Mode selects how recoverable problems are reported.
type Mode int

const (
	// ModePermissive skips offending lines and reports only structural errors.
	ModePermissive Mode = iota
	// ModeStrict aborts on the first problem.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "permissive"
}

// DotEnv is one loader session: its rules, converters, adaptors and the
// memory store every accepted pair is written to.
type DotEnv struct {
	mu sync.Mutex

	strict        bool
	logger        *slog.Logger
	environ       EnvironFunc
	adaptorPolicy AdaptorPolicy

	memory   *MemoryStore
	loaded   map[string]any // pairs accepted by this session
	adaptors []namedAdaptor

	rules         map[string]*Rule
	ruleKeys      []string
	converters    map[string]*Converter
	converterKeys []string

	err error // first setter error, reported by the next Parse or Load
}

// Option configures a DotEnv.
type Option func(*DotEnv)

// WithStrict switches strict mode on or off.
func WithStrict(strict bool) Option {
	return func(d *DotEnv) { d.strict = strict }
}

// WithMode sets the error mode.
func WithMode(m Mode) Option {
	return WithStrict(m == ModeStrict)
}

// WithLogger sets the structured logger. Output is discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(d *DotEnv) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithEnviron replaces os.Environ as the memory store seed.
func WithEnviron(fn EnvironFunc) Option {
	return func(d *DotEnv) { d.environ = fn }
}

// WithAdaptor registers an adaptor at construction.
func WithAdaptor(name string, a Adaptor) Option {
	return func(d *DotEnv) {
		if err := d.addAdaptor(name, a); err != nil {
			d.fail(err)
		}
	}
}

// WithAdaptorPolicy sets how adaptor failures are handled.
func WithAdaptorPolicy(p AdaptorPolicy) Option {
	return func(d *DotEnv) { d.adaptorPolicy = p }
}

// New creates a permissive session seeded from the process environment.
func New(opts ...Option) *DotEnv {
	d := &DotEnv{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		loaded:     make(map[string]any),
		rules:      make(map[string]*Rule),
		converters: make(map[string]*Converter),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.memory = NewMemoryStore(d.environ)
	return d
}

// SetStrict switches strict mode on or off.
func (d *DotEnv) SetStrict(strict bool) {
	d.mu.Lock()
	d.strict = strict
	d.mu.Unlock()
}

// Mode returns the current error mode.
func (d *DotEnv) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.strict {
		return ModeStrict
	}
	return ModePermissive
}

// Memory exposes the session store.
func (d *DotEnv) Memory() *MemoryStore {
	return d.memory
}

// Err returns the first configuration error recorded by a setter.
func (d *DotEnv) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.configErr()
}

func (d *DotEnv) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *DotEnv) configErr() error {
	if d.err != nil {
		return d.err
	}
	for _, k := range d.ruleKeys {
		if err := d.rules[k].Err(); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value for key from the memory store. A missing key is a
// runtime error in strict mode and nil otherwise.
func (d *DotEnv) Get(key string) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, ok := d.memory.Lookup(key)
	if ok {
		return v, nil
	}
	if d.strict {
		return nil, runtimeErrorf(ErrKeyNotFound, "key %q not defined", key)
	}
	return nil, nil
}

// Lookup returns the value for key and whether it is present.
func (d *DotEnv) Lookup(key string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memory.Lookup(key)
}

// Has reports whether key is present in the memory store.
func (d *DotEnv) Has(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memory.Has(key)
}

// All returns a copy of the memory store, seeded environment included.
func (d *DotEnv) All() map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memory.All()
}

// Loaded returns a copy of the pairs accepted by this session.
func (d *DotEnv) Loaded() map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return maps.Clone(d.loaded)
}

// Put writes a pair without conversion or validation and forwards it to the
// adaptors. The key must be valid.
func (d *DotEnv) Put(key string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !IsValidKey(key) {
		return runtimeErrorf(ErrInvalidKey, "invalid key %q", key)
	}
	return d.accept("", key, value)
}

// accept stores a pair and fans it out.
func (d *DotEnv) accept(source, key string, value any) error {
	d.memory.put(key, value)
	d.loaded[key] = value
	return d.fanOut(source, key, value)
}
