// File: lixenwraith/dotenv/type.go
package dotenv

import (
	"fmt"
	"reflect"
	"strconv"
)

// lookupTyped fetches a value for the typed getters.
func (d *DotEnv) lookupTyped(key string) (any, error) {
	val, found := d.Lookup(key)
	if !found {
		return nil, runtimeErrorf(ErrKeyNotFound, "key %q not defined", key)
	}
	return val, nil
}

// String retrieves a value as a string.
// Converted values are formatted back; nil is the empty string.
func (d *DotEnv) String(key string) (string, error) {
	val, err := d.lookupTyped(key)
	if err != nil {
		return "", err
	}
	if s, ok := scalarString(val); ok {
		return s, nil
	}
	return "", fmt.Errorf("cannot convert type %T to string for key %s", val, key)
}

// Int64 retrieves a value as an int64.
// Accepts integer types and strings the int converter accepts.
func (d *DotEnv) Int64(key string) (int64, error) {
	val, err := d.lookupTyped(key)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, fmt.Errorf("value for key %s is nil, cannot convert to int64", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > uint64(1<<63-1) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d to int64 for key %s: overflow", u, key)
		}
		return int64(u), nil
	case reflect.String:
		if i, ok := parseInt(v.String()); ok {
			return i, nil
		}
		return 0, fmt.Errorf("cannot convert string %q to int64 for key %s", v.String(), key)
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for key %s", val, key)
}

// Bool retrieves a value as a bool.
// Strings use the bool converter tokens; numbers are true when non-zero.
func (d *DotEnv) Bool(key string) (bool, error) {
	val, err := d.lookupTyped(key)
	if err != nil {
		return false, err
	}
	if val == nil {
		return false, fmt.Errorf("value for key %s is nil, cannot convert to bool", key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		if b, ok := parseBool(v.String()); ok {
			return b, nil
		}
		return false, fmt.Errorf("cannot convert string %q to bool for key %s", v.String(), key)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for key %s", val, key)
}

// Float64 retrieves a value as a float64.
func (d *DotEnv) Float64(key string) (float64, error) {
	val, err := d.lookupTyped(key)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, fmt.Errorf("value for key %s is nil, cannot convert to float64", key)
	}

	if b, ok := val.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	if f, ok := toNumber(val); ok {
		return f, nil
	}
	return 0, fmt.Errorf("cannot convert %s value %v to float64 for key %s", reflect.TypeOf(val), val, key)
}

// Int retrieves a value as an int, bounded by the platform int size.
func (d *DotEnv) Int(key string) (int, error) {
	i, err := d.Int64(key)
	if err != nil {
		return 0, err
	}
	if strconv.IntSize == 32 && (i > 1<<31-1 || i < -1<<31) {
		return 0, fmt.Errorf("value %d for key %s overflows int", i, key)
	}
	return int(i), nil
}
