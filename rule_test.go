// FILE: lixenwraith/dotenv/rule_test.go
package dotenv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleKindOrder(t *testing.T) {
	r := &Rule{}
	// Configured out of order on purpose
	r.IsURL().IsInt().IsRequired().IsRegex(`^\d+$`).IsMaxLength(Int(3)).IsCustom(func(any) bool { return true })

	assert.Equal(t, []RuleKind{RuleCustom, RuleRegex, RuleRequired, RuleInt, RuleMaxLength, RuleURL}, r.Kinds())
}

func TestRuleStatusFlag(t *testing.T) {
	r := (&Rule{}).IsBool()
	assert.True(t, r.Has(RuleBool))

	r.IsBool(false)
	assert.False(t, r.Has(RuleBool))
	assert.Empty(t, r.Kinds())
}

func TestRuleClear(t *testing.T) {
	r := (&Rule{}).IsInt().IsRegex("(").IsMinValue(Float(1))
	require.Error(t, r.Err())

	r.Clear()
	assert.Empty(t, r.Kinds())
	assert.NoError(t, r.Err())
}

func TestParseRuleKind(t *testing.T) {
	for _, name := range []string{"isInt", "Rule:isInt", "int", "ISINT"} {
		k, err := ParseRuleKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, RuleInt, k)
	}

	k, err := ParseRuleKind("ipv6")
	require.NoError(t, err)
	assert.Equal(t, RuleIPv6, k)

	_, err = ParseRuleKind("isDate")
	assert.True(t, errors.Is(err, ErrUnknownRule))
	assert.True(t, errors.Is(err, ErrRuntime))
}

func TestRuleSet(t *testing.T) {
	r := &Rule{}
	require.NoError(t, r.Set(RuleRequired, nil))
	require.NoError(t, r.Set(RuleBool, true))
	require.NoError(t, r.Set(RuleRegex, "/^a/i"))
	require.NoError(t, r.Set(RuleMinValue, int64(2)))
	require.NoError(t, r.Set(RuleMaxLength, 5))
	require.NoError(t, r.Set(RuleCustom, func(v any) bool { return v != nil }))

	assert.Equal(t, []RuleKind{RuleCustom, RuleRegex, RuleRequired, RuleBool, RuleMinValue, RuleMaxLength}, r.Kinds())

	assert.Error(t, r.Set(RuleBool, "yes"))
	assert.Error(t, r.Set(RuleRegex, 3))
	assert.Error(t, r.Set(RuleMinLength, 1.5))
	assert.Error(t, r.Set(RuleKind(99), true))

	require.NoError(t, r.Set(RuleMinValue, nil))
	assert.False(t, r.Has(RuleMinValue))
}

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		match   bool
	}{
		{`^[a-z]+$`, "abc", true},
		{`/^[a-z]+$/`, "abc", true},
		{`/^[a-z]+$/i`, "ABC", true},
		{`/^[a-z]+$/`, "ABC", false},
		{`#^\d{3}$#`, "123", true},
		{`.+\..+`, "a.b", true},
	}
	for _, tt := range tests {
		re, err := compilePattern(tt.pattern)
		require.NoError(t, err, tt.pattern)
		assert.Equal(t, tt.match, re.MatchString(tt.input), "%s on %s", tt.pattern, tt.input)
	}

	_, err := compilePattern("/(/")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		rule   *Rule
		value  any
		failed string
	}{
		{"NoRules", nil, "x", ""},
		{"CustomPass", (&Rule{}).IsCustom(func(v any) bool { return v == "ok" }), "ok", ""},
		{"CustomSecondFails", (&Rule{}).IsCustom(func(any) bool { return true }).IsCustom(func(any) bool { return false }), "x", "isCustom[1]"},
		{"RegexFails", (&Rule{}).IsRegex(`^a`).IsRegex(`b$`), "ac", "isRegex[1]"},
		{"RegexOnInt", (&Rule{}).IsRegex(`^\d+$`), int64(12), ""},
		{"RequiredIgnoredPerValue", (&Rule{}).IsRequired(), "", ""},
		{"NotAllow", (&Rule{}).IsNotAllow(), "x", "isNotAllow"},
		{"BoolString", (&Rule{}).IsBool(), "yes", ""},
		{"BoolTyped", (&Rule{}).IsBool(), false, ""},
		{"BoolFails", (&Rule{}).IsBool(), "maybe", "isBool"},
		{"IntString", (&Rule{}).IsInt(), "12", ""},
		{"IntTyped", (&Rule{}).IsInt(), int64(12), ""},
		{"IntFails", (&Rule{}).IsInt(), "1.5", "isInt"},
		{"FloatString", (&Rule{}).IsFloat(), "1.5", ""},
		{"FloatFromInt", (&Rule{}).IsFloat(), int64(2), ""},
		{"FloatFails", (&Rule{}).IsFloat(), "x", "isFloat"},
		{"RangeValueAbove", (&Rule{}).IsRangeValue(Float(10), Float(12)), "15", "isMaxValue"},
		{"RangeValueBelow", (&Rule{}).IsRangeValue(Float(10), Float(12)), int64(9), "isMinValue"},
		{"RangeValueInside", (&Rule{}).IsRangeValue(Float(10), Float(12)), "11", ""},
		{"MinValueNonNumeric", (&Rule{}).IsMinValue(Float(0)), "abc", "isMinValue"},
		{"NullBoundDisabled", (&Rule{}).IsRangeValue(nil, Float(5)), "3", ""},
		{"StringPass", (&Rule{}).IsString(), "x", ""},
		{"StringFails", (&Rule{}).IsString(), int64(1), "isString"},
		{"RangeLengthShort", (&Rule{}).IsRangeLength(Int(2), Int(4)), "A", "isMinLength"},
		{"RangeLengthInside", (&Rule{}).IsRangeLength(Int(2), Int(4)), "AAA", ""},
		{"RangeLengthLong", (&Rule{}).IsRangeLength(Int(2), Int(4)), "AAAAA", "isMaxLength"},
		{"EmptyPass", (&Rule{}).IsEmpty(), "", ""},
		{"EmptyZero", (&Rule{}).IsEmpty(), int64(0), ""},
		{"EmptyFails", (&Rule{}).IsEmpty(), "x", "isEmpty"},
		{"NotEmptyFails", (&Rule{}).IsNotEmpty(), "", "isNotEmpty"},
		{"NullPass", (&Rule{}).IsNull(), nil, ""},
		{"NullFails", (&Rule{}).IsNull(), "", "isNull"},
		{"NotNullFails", (&Rule{}).IsNotNull(), nil, "isNotNull"},
		{"EmailPass", (&Rule{}).IsEmail(), "user@example.com", ""},
		{"EmailFails", (&Rule{}).IsEmail(), "user@", "isEmail"},
		{"EmailNil", (&Rule{}).IsEmail(), nil, "isEmail"},
		{"IPAcceptsV4", (&Rule{}).IsIP(), "10.0.0.1", ""},
		{"IPAcceptsV6", (&Rule{}).IsIP(), "::1", ""},
		{"IPv4RejectsV6", (&Rule{}).IsIPv4(), "::1", "isIpv4"},
		{"IPv6RejectsV4", (&Rule{}).IsIPv6(), "10.0.0.1", "isIpv6"},
		{"MACPass", (&Rule{}).IsMAC(), "00:1a:2b:3c:4d:5e", ""},
		{"MACFails", (&Rule{}).IsMAC(), "00:1a", "isMac"},
		{"URLPass", (&Rule{}).IsURL(), "https://example.com/path?q=1", ""},
		{"URLFails", (&Rule{}).IsURL(), "not a url", "isUrl"},
		{"FirstFailureWins", (&Rule{}).IsURL().IsInt(), "x", "isInt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.failed, validate(tt.rule, tt.value))
		})
	}
}
