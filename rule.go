// FILE: lixenwraith/dotenv/rule.go
package dotenv

import (
	"fmt"
	"regexp"
	"strings"
)

// RuleKind identifies one acceptance predicate. Kinds are evaluated in
// declaration order of the constants below, regardless of the order rules
// were configured in.
type RuleKind int

const (
	RuleCustom RuleKind = iota
	RuleRegex
	RuleRequired
	RuleNotAllow
	RuleBool
	RuleInt
	RuleFloat
	RuleMinValue
	RuleMaxValue
	RuleString
	RuleMinLength
	RuleMaxLength
	RuleEmpty
	RuleNotEmpty
	RuleNull
	RuleNotNull
	RuleEmail
	RuleIP
	RuleIPv4
	RuleIPv6
	RuleMAC
	RuleURL

	ruleKindCount
)

var ruleNames = [ruleKindCount]string{
	RuleCustom:    "isCustom",
	RuleRegex:     "isRegex",
	RuleRequired:  "isRequired",
	RuleNotAllow:  "isNotAllow",
	RuleBool:      "isBool",
	RuleInt:       "isInt",
	RuleFloat:     "isFloat",
	RuleMinValue:  "isMinValue",
	RuleMaxValue:  "isMaxValue",
	RuleString:    "isString",
	RuleMinLength: "isMinLength",
	RuleMaxLength: "isMaxLength",
	RuleEmpty:     "isEmpty",
	RuleNotEmpty:  "isNotEmpty",
	RuleNull:      "isNull",
	RuleNotNull:   "isNotNull",
	RuleEmail:     "isEmail",
	RuleIP:        "isIp",
	RuleIPv4:      "isIpv4",
	RuleIPv6:      "isIpv6",
	RuleMAC:       "isMac",
	RuleURL:       "isUrl",
}

func (k RuleKind) String() string {
	if k < 0 || k >= ruleKindCount {
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
	return ruleNames[k]
}

// isFlag reports whether the kind is a plain on/off switch.
func (k RuleKind) isFlag() bool {
	switch k {
	case RuleCustom, RuleRegex, RuleMinValue, RuleMaxValue, RuleMinLength, RuleMaxLength:
		return false
	}
	return k >= 0 && k < ruleKindCount
}

// ParseRuleKind resolves a rule identifier. "isInt", "Rule:isInt" and "int"
// all name RuleInt; matching is case-insensitive.
func ParseRuleKind(name string) (RuleKind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "rule:")
	for k, kn := range ruleNames {
		kn = strings.ToLower(kn)
		if n == kn || "is"+n == kn {
			return RuleKind(k), nil
		}
	}
	return 0, runtimeErrorf(ErrUnknownRule, "unknown rule %q", name)
}

// CustomRule is a caller supplied predicate over a converted value.
type CustomRule func(value any) bool

// Rule is the set of predicates configured for one key.
type Rule struct {
	custom []CustomRule
	regex  []*regexp.Regexp
	flags  [ruleKindCount]bool

	minValue, maxValue   *float64
	minLength, maxLength *int

	err error // first configuration error, reported on the next parse
}

func status(s []bool) bool {
	return len(s) == 0 || s[0]
}

func (r *Rule) flag(k RuleKind, s []bool) *Rule {
	r.flags[k] = status(s)
	return r
}

func (r *Rule) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Err returns the first configuration error recorded on the rule.
func (r *Rule) Err() error { return r.err }

// IsCustom appends a predicate. Every predicate must hold.
func (r *Rule) IsCustom(fn CustomRule) *Rule {
	if fn != nil {
		r.custom = append(r.custom, fn)
	}
	return r
}

// IsRegex appends a pattern. Both bare RE2 patterns and delimited patterns
// like /^a+$/i are accepted. Every pattern must match.
func (r *Rule) IsRegex(pattern string) *Rule {
	re, err := compilePattern(pattern)
	if err != nil {
		r.fail(runtimeErrorf(ErrUnknownRule, "invalid regex %q: %v", pattern, err))
		return r
	}
	r.regex = append(r.regex, re)
	return r
}

func (r *Rule) IsRequired(s ...bool) *Rule { return r.flag(RuleRequired, s) }
func (r *Rule) IsNotAllow(s ...bool) *Rule { return r.flag(RuleNotAllow, s) }
func (r *Rule) IsBool(s ...bool) *Rule     { return r.flag(RuleBool, s) }
func (r *Rule) IsInt(s ...bool) *Rule      { return r.flag(RuleInt, s) }
func (r *Rule) IsFloat(s ...bool) *Rule    { return r.flag(RuleFloat, s) }
func (r *Rule) IsString(s ...bool) *Rule   { return r.flag(RuleString, s) }
func (r *Rule) IsEmpty(s ...bool) *Rule    { return r.flag(RuleEmpty, s) }
func (r *Rule) IsNotEmpty(s ...bool) *Rule { return r.flag(RuleNotEmpty, s) }
func (r *Rule) IsNull(s ...bool) *Rule     { return r.flag(RuleNull, s) }
func (r *Rule) IsNotNull(s ...bool) *Rule  { return r.flag(RuleNotNull, s) }
func (r *Rule) IsEmail(s ...bool) *Rule    { return r.flag(RuleEmail, s) }
func (r *Rule) IsIP(s ...bool) *Rule       { return r.flag(RuleIP, s) }
func (r *Rule) IsIPv4(s ...bool) *Rule     { return r.flag(RuleIPv4, s) }
func (r *Rule) IsIPv6(s ...bool) *Rule     { return r.flag(RuleIPv6, s) }
func (r *Rule) IsMAC(s ...bool) *Rule      { return r.flag(RuleMAC, s) }
func (r *Rule) IsURL(s ...bool) *Rule      { return r.flag(RuleURL, s) }

// IsMinValue sets the lower numeric bound; nil disables it.
func (r *Rule) IsMinValue(min *float64) *Rule {
	r.minValue = min
	return r
}

// IsMaxValue sets the upper numeric bound; nil disables it.
func (r *Rule) IsMaxValue(max *float64) *Rule {
	r.maxValue = max
	return r
}

// IsRangeValue sets both numeric bounds, inclusive.
func (r *Rule) IsRangeValue(min, max *float64) *Rule {
	return r.IsMinValue(min).IsMaxValue(max)
}

// IsMinLength sets the minimum string length; nil disables it.
func (r *Rule) IsMinLength(min *int) *Rule {
	r.minLength = min
	return r
}

// IsMaxLength sets the maximum string length; nil disables it.
func (r *Rule) IsMaxLength(max *int) *Rule {
	r.maxLength = max
	return r
}

// IsRangeLength sets both length bounds, inclusive.
func (r *Rule) IsRangeLength(min, max *int) *Rule {
	return r.IsMinLength(min).IsMaxLength(max)
}

// Clear drops every predicate, including recorded configuration errors.
func (r *Rule) Clear() *Rule {
	*r = Rule{}
	return r
}

// Has reports whether kind is active.
func (r *Rule) Has(kind RuleKind) bool {
	switch kind {
	case RuleCustom:
		return len(r.custom) > 0
	case RuleRegex:
		return len(r.regex) > 0
	case RuleMinValue:
		return r.minValue != nil
	case RuleMaxValue:
		return r.maxValue != nil
	case RuleMinLength:
		return r.minLength != nil
	case RuleMaxLength:
		return r.maxLength != nil
	}
	return kind.isFlag() && r.flags[kind]
}

// Kinds lists the active kinds in evaluation order.
func (r *Rule) Kinds() []RuleKind {
	var kinds []RuleKind
	for k := RuleKind(0); k < ruleKindCount; k++ {
		if r.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Set configures a kind from a dynamically typed value, as read from a
// settings file. Flag kinds take a bool (nil means true), regex a pattern
// string, custom a CustomRule, bounds a number or nil.
func (r *Rule) Set(kind RuleKind, value any) error {
	switch {
	case kind.isFlag():
		on := true
		if value != nil {
			b, ok := value.(bool)
			if !ok {
				return runtimeErrorf(ErrUnknownRule, "rule %s expects a bool, got %T", kind, value)
			}
			on = b
		}
		r.flags[kind] = on
		return nil
	case kind == RuleRegex:
		p, ok := value.(string)
		if !ok {
			return runtimeErrorf(ErrUnknownRule, "rule %s expects a pattern, got %T", kind, value)
		}
		re, err := compilePattern(p)
		if err != nil {
			return runtimeErrorf(ErrUnknownRule, "invalid regex %q: %v", p, err)
		}
		r.regex = append(r.regex, re)
		return nil
	case kind == RuleCustom:
		fn, ok := value.(CustomRule)
		if !ok {
			if f, isFunc := value.(func(any) bool); isFunc {
				fn, ok = f, true
			}
		}
		if !ok {
			return runtimeErrorf(ErrUnknownRule, "rule %s expects a predicate, got %T", kind, value)
		}
		r.IsCustom(fn)
		return nil
	case kind == RuleMinValue || kind == RuleMaxValue:
		var bound *float64
		if value != nil {
			f, ok := toNumber(value)
			if !ok {
				return runtimeErrorf(ErrUnknownRule, "rule %s expects a number, got %T", kind, value)
			}
			bound = &f
		}
		if kind == RuleMinValue {
			r.minValue = bound
		} else {
			r.maxValue = bound
		}
		return nil
	case kind == RuleMinLength || kind == RuleMaxLength:
		var bound *int
		if value != nil {
			f, ok := toNumber(value)
			if !ok || f != float64(int(f)) {
				return runtimeErrorf(ErrUnknownRule, "rule %s expects an integer, got %v", kind, value)
			}
			n := int(f)
			bound = &n
		}
		if kind == RuleMinLength {
			r.minLength = bound
		} else {
			r.maxLength = bound
		}
		return nil
	}
	return runtimeErrorf(ErrUnknownRule, "unknown rule %s", kind)
}

const patternDelimiters = "/#~!@%|"

// compilePattern compiles RE2 syntax. A pattern wrapped in matching
// delimiters, such as /abc/i or #abc#, has its i, m and s flags mapped to
// inline flags.
func compilePattern(p string) (*regexp.Regexp, error) {
	if len(p) >= 2 {
		d := p[0]
		if strings.IndexByte(patternDelimiters, d) >= 0 {
			if end := strings.LastIndexByte(p, d); end > 0 {
				mods := p[end+1:]
				if strings.Trim(mods, "ims") == "" {
					body := p[1:end]
					if mods != "" {
						body = "(?" + mods + ")" + body
					}
					return regexp.Compile(body)
				}
			}
		}
	}
	return regexp.Compile(p)
}

// Float returns a pointer to f, for bound setters.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n, for bound setters.
func Int(n int) *int { return &n }
