// FILE: lixenwraith/dotenv/converter.go
package dotenv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ConverterKind identifies how a raw value is coerced before validation.
type ConverterKind int

const (
	ConvertNone ConverterKind = iota
	ConvertToString
	ConvertToStringOrNull
	ConvertToBool
	ConvertToBoolOrNull
	ConvertToInt
	ConvertToIntOrNull
	ConvertToFloat
	ConvertToFloatOrNull
	ConvertToCustom
)

var converterNames = [...]string{
	ConvertNone:           "none",
	ConvertToString:       "toString",
	ConvertToStringOrNull: "toStringOrNull",
	ConvertToBool:         "toBool",
	ConvertToBoolOrNull:   "toBoolOrNull",
	ConvertToInt:          "toInt",
	ConvertToIntOrNull:    "toIntOrNull",
	ConvertToFloat:        "toFloat",
	ConvertToFloatOrNull:  "toFloatOrNull",
	ConvertToCustom:       "toCustom",
}

func (k ConverterKind) String() string {
	if k < 0 || int(k) >= len(converterNames) {
		return fmt.Sprintf("ConverterKind(%d)", int(k))
	}
	return converterNames[k]
}

// orNull reports whether unrecognized input becomes nil instead of failing.
func (k ConverterKind) orNull() bool {
	switch k {
	case ConvertToStringOrNull, ConvertToBoolOrNull, ConvertToIntOrNull, ConvertToFloatOrNull:
		return true
	}
	return false
}

// ParseConverterKind resolves a converter identifier. Accepted spellings for
// each kind: "toInt", "Convert:toInt", "int" (case-insensitive).
func ParseConverterKind(name string) (ConverterKind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "convert:")
	for k, kn := range converterNames {
		kn = strings.ToLower(kn)
		if n == kn || "to"+n == kn {
			return ConverterKind(k), nil
		}
	}
	return ConvertNone, runtimeErrorf(ErrUnknownConverter, "unknown converter %q", name)
}

// CustomConverter maps a raw value to any typed value.
type CustomConverter func(raw string) any

// Converter holds the conversion of a single key. Setting a kind replaces the
// previous one.
type Converter struct {
	kind   ConverterKind
	custom CustomConverter
}

// Kind returns the active converter kind.
func (c *Converter) Kind() ConverterKind { return c.kind }

func (c *Converter) set(kind ConverterKind) *Converter {
	c.kind = kind
	c.custom = nil
	return c
}

func (c *Converter) ToString() *Converter       { return c.set(ConvertToString) }
func (c *Converter) ToStringOrNull() *Converter { return c.set(ConvertToStringOrNull) }
func (c *Converter) ToBool() *Converter         { return c.set(ConvertToBool) }
func (c *Converter) ToBoolOrNull() *Converter   { return c.set(ConvertToBoolOrNull) }
func (c *Converter) ToInt() *Converter          { return c.set(ConvertToInt) }
func (c *Converter) ToIntOrNull() *Converter    { return c.set(ConvertToIntOrNull) }
func (c *Converter) ToFloat() *Converter        { return c.set(ConvertToFloat) }
func (c *Converter) ToFloatOrNull() *Converter  { return c.set(ConvertToFloatOrNull) }

// ToCustom converts with fn. A nil fn converts every value to nil.
func (c *Converter) ToCustom(fn CustomConverter) *Converter {
	c.kind = ConvertToCustom
	c.custom = fn
	return c
}

// Clear disables conversion.
func (c *Converter) Clear() *Converter { return c.set(ConvertNone) }

// Convert applies the converter to a raw scanned value.
func (c *Converter) Convert(raw string) (any, error) {
	if c == nil {
		return raw, nil
	}

	switch c.kind {
	case ConvertNone:
		return raw, nil
	case ConvertToString, ConvertToStringOrNull:
		return raw, nil
	case ConvertToCustom:
		if c.custom == nil {
			return nil, nil
		}
		return c.custom(raw), nil
	}

	var (
		v        any
		ok       bool
		typeName string
	)
	switch c.kind {
	case ConvertToBool, ConvertToBoolOrNull:
		v, ok = parseBool(raw)
		typeName = "Boolean"
	case ConvertToInt, ConvertToIntOrNull:
		v, ok = parseInt(raw)
		typeName = "Integer"
	case ConvertToFloat, ConvertToFloatOrNull:
		v, ok = parseFloat(raw)
		typeName = "Float"
	default:
		return nil, runtimeErrorf(ErrUnknownConverter, "unknown converter %s", c.kind)
	}

	if ok {
		return v, nil
	}
	if c.kind.orNull() {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: not type %q", ErrConversion, typeName)
}

// parseBool recognizes 1/true/on/yes and 0/false/off/no/"" case-insensitively.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.Trim(s, trimSet)) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no", "":
		return false, true
	}
	return false, false
}

var (
	intPattern   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)
	floatPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// parseInt accepts an optionally signed base-10 integer without leading zeros.
func parseInt(s string) (int64, bool) {
	s = strings.Trim(s, trimSet)
	if !intPattern.MatchString(s) {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// parseFloat accepts decimal and scientific notation.
func parseFloat(s string) (float64, bool) {
	s = strings.Trim(s, trimSet)
	if !floatPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
