// FILE: lixenwraith/dotenv/builder.go
package dotenv

import (
	"fmt"
	"log/slog"
	"maps"
)

// ValidatorFunc defines the signature for a function that can validate a
// DotEnv instance once all sources are loaded.
type ValidatorFunc func(d *DotEnv) error

// Builder provides a fluent interface for building a session
type Builder struct {
	setting     Setting
	settingFile string
	opts        []Option
	validators  []ValidatorFunc
}

// NewBuilder creates a new session builder
func NewBuilder() *Builder {
	return &Builder{
		validators: make([]ValidatorFunc, 0),
	}
}

// WithStrict sets strict mode, overriding any setting file
func (b *Builder) WithStrict(strict bool) *Builder {
	b.setting.Strict = &strict
	return b
}

// WithLogger sets the structured logger
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.opts = append(b.opts, WithLogger(l))
	return b
}

// WithEnviron sets the memory store seed
func (b *Builder) WithEnviron(fn EnvironFunc) *Builder {
	b.opts = append(b.opts, WithEnviron(fn))
	return b
}

// WithAdaptor registers a named adaptor
func (b *Builder) WithAdaptor(name string, a Adaptor) *Builder {
	b.opts = append(b.opts, WithAdaptor(name, a))
	return b
}

// WithBuiltinAdaptors registers built-in adaptors by name: env, constant, map
func (b *Builder) WithBuiltinAdaptors(names ...string) *Builder {
	b.setting.Adaptors = append(b.setting.Adaptors, names...)
	return b
}

// WithAdaptorPolicy sets how adaptor failures are handled
func (b *Builder) WithAdaptorPolicy(p AdaptorPolicy) *Builder {
	b.opts = append(b.opts, WithAdaptorPolicy(p))
	return b
}

// WithSettingFile reads mode, adaptors, scheme and sources from a file.
// Values set directly on the builder take precedence.
func (b *Builder) WithSettingFile(path string) *Builder {
	b.settingFile = path
	return b
}

// WithScheme merges per-key schemes; later calls win per key
func (b *Builder) WithScheme(scheme map[string]KeyScheme) *Builder {
	if b.setting.Scheme == nil {
		b.setting.Scheme = make(map[string]KeyScheme, len(scheme))
	}
	maps.Copy(b.setting.Scheme, scheme)
	return b
}

// WithFiles appends files to load
func (b *Builder) WithFiles(paths ...string) *Builder {
	b.setting.Load = append(b.setting.Load, paths...)
	return b
}

// WithContent appends literal contents to parse after the files
func (b *Builder) WithContent(content ...string) *Builder {
	b.setting.Parse = append(b.setting.Parse, content...)
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the DotEnv instance with all specified options
func (b *Builder) Build() (*DotEnv, error) {
	s, err := b.resolveSetting()
	if err != nil {
		return nil, err
	}

	d, err := Bootstrap(s, b.opts...)
	if err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(d); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return d, nil
}

// resolveSetting layers the builder values over the setting file
func (b *Builder) resolveSetting() (Setting, error) {
	if b.settingFile == "" {
		return b.setting, nil
	}

	s, err := LoadSettingFile(b.settingFile)
	if err != nil {
		return Setting{}, err
	}
	if b.setting.Strict != nil {
		s.Strict = b.setting.Strict
	}
	s.Adaptors = append(s.Adaptors, b.setting.Adaptors...)
	if len(b.setting.Scheme) > 0 {
		if s.Scheme == nil {
			s.Scheme = make(map[string]KeyScheme, len(b.setting.Scheme))
		}
		maps.Copy(s.Scheme, b.setting.Scheme)
	}
	s.Load = append(s.Load, b.setting.Load...)
	s.Parse = append(s.Parse, b.setting.Parse...)
	return s, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *DotEnv {
	d, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("dotenv build failed: %v", err))
	}
	return d
}

// BuildAndScan builds the session and decodes its memory store into target
func (b *Builder) BuildAndScan(target any) error {
	d, err := b.Build()
	if err != nil {
		return err
	}
	if err := d.Scan(target); err != nil {
		return fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return nil
}
