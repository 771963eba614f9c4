// FILE: lixenwraith/dotenv/setting.go
package dotenv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// KeyScheme is the declarative configuration of one key.
type KeyScheme struct {
	Convert   string   `toml:"convert"`
	Rules     []string `toml:"rules"`
	Regex     []string `toml:"regex"`
	MinValue  *float64 `toml:"min_value"`
	MaxValue  *float64 `toml:"max_value"`
	MinLength *int     `toml:"min_length"`
	MaxLength *int     `toml:"max_length"`
}

// Setting is the bootstrap surface: mode, adaptors, per-key scheme and the
// sources to load right away.
type Setting struct {
	Strict   *bool                `toml:"strict"`
	Adaptors []string             `toml:"adaptors"`
	Scheme   map[string]KeyScheme `toml:"scheme"`
	Load     []string             `toml:"load"`
	Parse    []string             `toml:"parse"`
}

// hclSetting mirrors Setting with one labeled block per key:
//
//	strict = true
//	key "PORT" {
//	  convert = "toInt"
//	  rules   = ["isRequired"]
//	}
type hclSetting struct {
	Strict   *bool          `hcl:"strict,optional"`
	Adaptors []string       `hcl:"adaptors,optional"`
	Load     []string       `hcl:"load,optional"`
	Parse    []string       `hcl:"parse,optional"`
	Keys     []hclKeyScheme `hcl:"key,block"`
}

type hclKeyScheme struct {
	Name      string   `hcl:"name,label"`
	Convert   string   `hcl:"convert,optional"`
	Rules     []string `hcl:"rules,optional"`
	Regex     []string `hcl:"regex,optional"`
	MinValue  *float64 `hcl:"min_value,optional"`
	MaxValue  *float64 `hcl:"max_value,optional"`
	MinLength *int     `hcl:"min_length,optional"`
	MaxLength *int     `hcl:"max_length,optional"`
}

func (h *hclSetting) setting() Setting {
	s := Setting{
		Strict:   h.Strict,
		Adaptors: h.Adaptors,
		Load:     h.Load,
		Parse:    h.Parse,
	}
	if len(h.Keys) > 0 {
		s.Scheme = make(map[string]KeyScheme, len(h.Keys))
		for _, k := range h.Keys {
			s.Scheme[k.Name] = KeyScheme{
				Convert:   k.Convert,
				Rules:     k.Rules,
				Regex:     k.Regex,
				MinValue:  k.MinValue,
				MaxValue:  k.MaxValue,
				MinLength: k.MinLength,
				MaxLength: k.MaxLength,
			}
		}
	}
	return s
}

// LoadSettingFile reads a Setting from a TOML, YAML, JSON or HCL file. The
// format is taken from the extension, or detected from content.
func LoadSettingFile(path string) (Setting, error) {
	f, err := os.Open(path)
	if err != nil {
		return Setting{}, fmt.Errorf("failed to open setting file '%s': %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return Setting{}, fmt.Errorf("failed to read setting file '%s': %w", path, err)
	}
	if len(data) > MaxFileSize {
		return Setting{}, fmt.Errorf("setting file '%s': %w", path, ErrFileSize)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return Setting{}, fmt.Errorf("unable to detect format of setting file '%s'", path)
		}
	}
	return ParseSetting(data, format, path)
}

// ParseSetting decodes a Setting in the given format: toml, yaml, json or hcl.
// name is used in HCL diagnostics.
func ParseSetting(data []byte, format, name string) (Setting, error) {
	var s Setting

	if format == "hcl" {
		if filepath.Ext(name) != ".hcl" {
			name = "setting.hcl"
		}
		var h hclSetting
		if err := hclsimple.Decode(name, data, nil, &h); err != nil {
			return s, fmt.Errorf("failed to parse HCL setting: %w", err)
		}
		return h.setting(), nil
	}

	raw := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return s, fmt.Errorf("failed to parse TOML setting: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return s, fmt.Errorf("failed to parse YAML setting: %w", err)
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return s, fmt.Errorf("failed to parse JSON setting: %w", err)
		}
	default:
		return s, fmt.Errorf("unsupported setting format %q", format)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		TagName:          "toml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return s, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return s, fmt.Errorf("invalid %s setting: %w", format, err)
	}
	return s, nil
}

// detectFileFormat maps a file extension to a setting format.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".hcl":
		return "hcl"
	default:
		return ""
	}
}

// detectFormatFromContent tries each decoder in turn, strictest first.
func detectFormatFromContent(data []byte) string {
	var probe map[string]any
	if err := json.Unmarshal(data, &probe); err == nil {
		return "json"
	}

	probe = nil
	if err := yaml.Unmarshal(data, &probe); err == nil && probe != nil {
		return "yaml"
	}

	probe = nil
	if err := toml.Unmarshal(data, &probe); err == nil {
		return "toml"
	}

	var h hclSetting
	if err := hclsimple.Decode("setting.hcl", data, nil, &h); err == nil {
		return "hcl"
	}
	return ""
}

// Scheme applies a per-key scheme. Keys are processed in lexical order so
// rule order, and with it the required sweep, is deterministic.
func (d *DotEnv) Scheme(scheme map[string]KeyScheme) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, key := range slices.Sorted(maps.Keys(scheme)) {
		if err := d.applyScheme(key, scheme[key]); err != nil {
			return err
		}
	}
	return nil
}

func (d *DotEnv) applyScheme(key string, ks KeyScheme) error {
	if !IsValidKey(key) {
		return runtimeErrorf(ErrInvalidKey, "invalid scheme key %q", key)
	}

	if ks.Convert != "" {
		kind, err := ParseConverterKind(ks.Convert)
		if err != nil {
			return err
		}
		if kind == ConvertToCustom {
			return runtimeErrorf(ErrUnknownConverter, "key %q: custom converters cannot be declared in a scheme", key)
		}
		d.converter(key).set(kind)
	}

	if len(ks.Rules) == 0 && len(ks.Regex) == 0 &&
		ks.MinValue == nil && ks.MaxValue == nil && ks.MinLength == nil && ks.MaxLength == nil {
		return nil
	}

	r := d.rule(key)
	for _, name := range ks.Rules {
		kind, err := ParseRuleKind(name)
		if err != nil {
			return err
		}
		if !kind.isFlag() {
			return runtimeErrorf(ErrUnknownRule, "key %q: rule %s needs a value", key, kind)
		}
		if err := r.Set(kind, true); err != nil {
			return err
		}
	}
	for _, p := range ks.Regex {
		if err := r.Set(RuleRegex, p); err != nil {
			return err
		}
	}
	if ks.MinValue != nil {
		r.IsMinValue(ks.MinValue)
	}
	if ks.MaxValue != nil {
		r.IsMaxValue(ks.MaxValue)
	}
	if ks.MinLength != nil {
		r.IsMinLength(ks.MinLength)
	}
	if ks.MaxLength != nil {
		r.IsMaxLength(ks.MaxLength)
	}
	return nil
}

// builtinAdaptor resolves adaptor names usable from a setting file.
func builtinAdaptor(name string) (Adaptor, bool) {
	switch name {
	case "env":
		return EnvAdaptor{}, true
	case "constant":
		return NewConstantAdaptor(), true
	case "map":
		return NewMapAdaptor(), true
	}
	return nil, false
}

// Bootstrap creates a session from s. Adaptor names resolve against adaptors
// registered through opts first, then the built-in env, constant and map
// adaptors. Load sources run before literal Parse contents.
func Bootstrap(s Setting, opts ...Option) (*DotEnv, error) {
	if s.Strict != nil {
		opts = append(opts, WithStrict(*s.Strict))
	}
	d := New(opts...)
	if err := d.Err(); err != nil {
		return nil, err
	}

	registered := d.Adaptors()
	for _, name := range s.Adaptors {
		if slices.Contains(registered, name) {
			continue
		}
		a, ok := builtinAdaptor(name)
		if !ok {
			return nil, runtimeErrorf(ErrUnknownAdaptor, "unknown adaptor %q", name)
		}
		if err := d.AddAdaptor(name, a); err != nil {
			return nil, err
		}
	}

	if err := d.Scheme(s.Scheme); err != nil {
		return nil, err
	}

	if len(s.Load) > 0 {
		if _, err := d.Load(s.Load...); err != nil {
			return nil, err
		}
	}
	for i, content := range s.Parse {
		if _, err := d.Parse(content, fmt.Sprintf("parse[%d]", i)); err != nil {
			return nil, err
		}
	}
	return d, nil
}
