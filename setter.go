// FILE: lixenwraith/dotenv/setter.go
package dotenv

// Rules applies one rule operation to several keys. Each key keeps its own
// independent Rule.
type Rules []*Rule

func (rs Rules) each(fn func(*Rule)) Rules {
	for _, r := range rs {
		fn(r)
	}
	return rs
}

func (rs Rules) IsCustom(fn CustomRule) Rules {
	return rs.each(func(r *Rule) { r.IsCustom(fn) })
}

func (rs Rules) IsRegex(pattern string) Rules {
	return rs.each(func(r *Rule) { r.IsRegex(pattern) })
}

func (rs Rules) IsRequired(s ...bool) Rules { return rs.each(func(r *Rule) { r.IsRequired(s...) }) }
func (rs Rules) IsNotAllow(s ...bool) Rules { return rs.each(func(r *Rule) { r.IsNotAllow(s...) }) }
func (rs Rules) IsBool(s ...bool) Rules     { return rs.each(func(r *Rule) { r.IsBool(s...) }) }
func (rs Rules) IsInt(s ...bool) Rules      { return rs.each(func(r *Rule) { r.IsInt(s...) }) }
func (rs Rules) IsFloat(s ...bool) Rules    { return rs.each(func(r *Rule) { r.IsFloat(s...) }) }
func (rs Rules) IsString(s ...bool) Rules   { return rs.each(func(r *Rule) { r.IsString(s...) }) }
func (rs Rules) IsEmpty(s ...bool) Rules    { return rs.each(func(r *Rule) { r.IsEmpty(s...) }) }
func (rs Rules) IsNotEmpty(s ...bool) Rules { return rs.each(func(r *Rule) { r.IsNotEmpty(s...) }) }
func (rs Rules) IsNull(s ...bool) Rules     { return rs.each(func(r *Rule) { r.IsNull(s...) }) }
func (rs Rules) IsNotNull(s ...bool) Rules  { return rs.each(func(r *Rule) { r.IsNotNull(s...) }) }
func (rs Rules) IsEmail(s ...bool) Rules    { return rs.each(func(r *Rule) { r.IsEmail(s...) }) }
func (rs Rules) IsIP(s ...bool) Rules       { return rs.each(func(r *Rule) { r.IsIP(s...) }) }
func (rs Rules) IsIPv4(s ...bool) Rules     { return rs.each(func(r *Rule) { r.IsIPv4(s...) }) }
func (rs Rules) IsIPv6(s ...bool) Rules     { return rs.each(func(r *Rule) { r.IsIPv6(s...) }) }
func (rs Rules) IsMAC(s ...bool) Rules      { return rs.each(func(r *Rule) { r.IsMAC(s...) }) }
func (rs Rules) IsURL(s ...bool) Rules      { return rs.each(func(r *Rule) { r.IsURL(s...) }) }

func (rs Rules) IsMinValue(min *float64) Rules {
	return rs.each(func(r *Rule) { r.IsMinValue(min) })
}

func (rs Rules) IsMaxValue(max *float64) Rules {
	return rs.each(func(r *Rule) { r.IsMaxValue(max) })
}

func (rs Rules) IsRangeValue(min, max *float64) Rules {
	return rs.each(func(r *Rule) { r.IsRangeValue(min, max) })
}

func (rs Rules) IsMinLength(min *int) Rules {
	return rs.each(func(r *Rule) { r.IsMinLength(min) })
}

func (rs Rules) IsMaxLength(max *int) Rules {
	return rs.each(func(r *Rule) { r.IsMaxLength(max) })
}

func (rs Rules) IsRangeLength(min, max *int) Rules {
	return rs.each(func(r *Rule) { r.IsRangeLength(min, max) })
}

func (rs Rules) Clear() Rules {
	return rs.each(func(r *Rule) { r.Clear() })
}

// Converters applies one converter operation to several keys.
type Converters []*Converter

func (cs Converters) each(fn func(*Converter)) Converters {
	for _, c := range cs {
		fn(c)
	}
	return cs
}

func (cs Converters) ToString() Converters { return cs.each(func(c *Converter) { c.ToString() }) }
func (cs Converters) ToStringOrNull() Converters {
	return cs.each(func(c *Converter) { c.ToStringOrNull() })
}
func (cs Converters) ToBool() Converters       { return cs.each(func(c *Converter) { c.ToBool() }) }
func (cs Converters) ToBoolOrNull() Converters { return cs.each(func(c *Converter) { c.ToBoolOrNull() }) }
func (cs Converters) ToInt() Converters        { return cs.each(func(c *Converter) { c.ToInt() }) }
func (cs Converters) ToIntOrNull() Converters  { return cs.each(func(c *Converter) { c.ToIntOrNull() }) }
func (cs Converters) ToFloat() Converters      { return cs.each(func(c *Converter) { c.ToFloat() }) }
func (cs Converters) ToFloatOrNull() Converters {
	return cs.each(func(c *Converter) { c.ToFloatOrNull() })
}

func (cs Converters) ToCustom(fn CustomConverter) Converters {
	return cs.each(func(c *Converter) { c.ToCustom(fn) })
}

func (cs Converters) Clear() Converters { return cs.each(func(c *Converter) { c.Clear() }) }

// Rule returns the rule sets of keys, creating missing ones. Invalid keys are
// recorded as a configuration error and left out of the result.
func (d *DotEnv) Rule(keys ...string) Rules {
	d.mu.Lock()
	defer d.mu.Unlock()

	rs := make(Rules, 0, len(keys))
	for _, key := range keys {
		if !IsValidKey(key) {
			d.fail(runtimeErrorf(ErrInvalidKey, "invalid rule key %q", key))
			continue
		}
		rs = append(rs, d.rule(key))
	}
	return rs
}

func (d *DotEnv) rule(key string) *Rule {
	r, ok := d.rules[key]
	if !ok {
		r = &Rule{}
		d.rules[key] = r
		d.ruleKeys = append(d.ruleKeys, key)
	}
	return r
}

// RemoveRule drops the rule sets of keys.
func (d *DotEnv) RemoveRule(keys ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, key := range keys {
		if _, ok := d.rules[key]; ok {
			delete(d.rules, key)
			d.ruleKeys = removeKey(d.ruleKeys, key)
		}
	}
}

// ClearRules drops every rule set.
func (d *DotEnv) ClearRules() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.rules)
	d.ruleKeys = nil
}

// RuleKinds returns the active rule kinds per key.
func (d *DotEnv) RuleKinds() map[string][]RuleKind {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string][]RuleKind, len(d.rules))
	for k, r := range d.rules {
		out[k] = r.Kinds()
	}
	return out
}

// Convert returns the converters of keys, creating missing ones. Invalid keys
// are recorded as a configuration error and left out of the result.
func (d *DotEnv) Convert(keys ...string) Converters {
	d.mu.Lock()
	defer d.mu.Unlock()

	cs := make(Converters, 0, len(keys))
	for _, key := range keys {
		if !IsValidKey(key) {
			d.fail(runtimeErrorf(ErrInvalidKey, "invalid converter key %q", key))
			continue
		}
		cs = append(cs, d.converter(key))
	}
	return cs
}

func (d *DotEnv) converter(key string) *Converter {
	c, ok := d.converters[key]
	if !ok {
		c = &Converter{}
		d.converters[key] = c
		d.converterKeys = append(d.converterKeys, key)
	}
	return c
}

// RemoveConverter drops the converters of keys.
func (d *DotEnv) RemoveConverter(keys ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, key := range keys {
		if _, ok := d.converters[key]; ok {
			delete(d.converters, key)
			d.converterKeys = removeKey(d.converterKeys, key)
		}
	}
}

// ClearConverters drops every converter.
func (d *DotEnv) ClearConverters() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.converters)
	d.converterKeys = nil
}

// ConverterKinds returns the configured converter kind per key.
func (d *DotEnv) ConverterKinds() map[string]ConverterKind {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]ConverterKind, len(d.converters))
	for k, c := range d.converters {
		out[k] = c.Kind()
	}
	return out
}

func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
