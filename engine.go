// FILE: lixenwraith/dotenv/engine.go
package dotenv

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// formatValidator checks the format rules. validator caches per tag and is
// safe for concurrent use.
var formatValidator = validator.New()

var formatTags = map[RuleKind]string{
	RuleEmail: "email",
	RuleIP:    "ip",
	RuleIPv4:  "ipv4",
	RuleIPv6:  "ipv6",
	RuleMAC:   "mac",
	RuleURL:   "url",
}

// validate runs every active per-value rule against a converted value and
// returns the identifier of the first failing rule, or "" when all pass.
// Presence rules are left to the required sweep.
func validate(r *Rule, value any) string {
	if r == nil {
		return ""
	}

	for i, fn := range r.custom {
		if !fn(value) {
			return fmt.Sprintf("%s[%d]", RuleCustom, i)
		}
	}
	for i, re := range r.regex {
		s, ok := scalarString(value)
		if !ok || !re.MatchString(s) {
			return fmt.Sprintf("%s[%d]", RuleRegex, i)
		}
	}

	for k := RuleNotAllow; k < ruleKindCount; k++ {
		if !r.Has(k) {
			continue
		}
		if !check(r, k, value) {
			return k.String()
		}
	}
	return ""
}

// check evaluates a single non-list kind.
func check(r *Rule, k RuleKind, value any) bool {
	switch k {
	case RuleNotAllow:
		// A present value is never allowed
		return false
	case RuleBool:
		return isBoolShaped(value)
	case RuleInt:
		return isIntShaped(value)
	case RuleFloat:
		return isFloatShaped(value)
	case RuleMinValue:
		n, ok := toNumber(value)
		return ok && n >= *r.minValue
	case RuleMaxValue:
		n, ok := toNumber(value)
		return ok && n <= *r.maxValue
	case RuleString:
		_, ok := value.(string)
		return ok
	case RuleMinLength:
		s, ok := scalarString(value)
		return ok && len(s) >= *r.minLength
	case RuleMaxLength:
		s, ok := scalarString(value)
		return ok && len(s) <= *r.maxLength
	case RuleEmpty:
		return isEmptyValue(value)
	case RuleNotEmpty:
		return !isEmptyValue(value)
	case RuleNull:
		return value == nil
	case RuleNotNull:
		return value != nil
	case RuleEmail, RuleIP, RuleIPv4, RuleIPv6, RuleMAC, RuleURL:
		s, ok := scalarString(value)
		if !ok || value == nil {
			return false
		}
		return formatValidator.Var(s, formatTags[k]) == nil
	}
	return true
}

func isBoolShaped(v any) bool {
	switch t := v.(type) {
	case bool:
		return true
	case string:
		_, ok := parseBool(t)
		return ok
	case int64:
		return t == 0 || t == 1
	case int:
		return t == 0 || t == 1
	}
	return false
}

func isIntShaped(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		_, ok = parseInt(s)
		return ok
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloatShaped(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		_, ok = parseFloat(s)
		return ok
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	}
	return isIntShaped(v)
}

// toNumber converts numeric values and numeric strings to float64.
func toNumber(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok {
		return parseFloat(s)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// isEmptyValue treats nil, "", false and numeric zero as empty.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case bool:
		return !t
	}
	if n, ok := toNumber(v); ok {
		return n == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// scalarString renders nil, strings, booleans and numbers. Composite values
// produced by custom converters have no string form.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case fmt.Stringer:
		return t.String(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.String:
		return rv.String(), true
	}
	return "", false
}

// FormatValue returns the string form used when a value leaves the process
// memory, e.g. for environment variables or external stores. nil becomes "".
func FormatValue(v any) string {
	if s, ok := scalarString(v); ok {
		return s
	}
	return fmt.Sprint(v)
}
