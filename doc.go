// File: lixenwraith/dotenv/doc.go

// Package dotenv loads KEY=VALUE configuration text, converts and validates
// each value against per-key rules, and mirrors accepted pairs into an
// in-process memory store and any number of adaptors.
//
// Features:
//   - Single and double quoted values, spanning lines when the quote is open
//   - Full-line comments with #, trailing text after a closing quote is ignored
//   - Per-key converters: string, bool, int, float, each with an or-null variant, or custom
//   - Per-key rules evaluated in a fixed order, reporting the first failure
//   - Strict and permissive modes
//   - Adaptors for the process environment, a write-once constant table, or your own store
//   - Declarative schemes from TOML, YAML, JSON or HCL setting files
//   - Builder pattern for easy initialization
//
// Quick Start:
//
//	env := dotenv.New(dotenv.WithStrict(true))
//	env.Convert("PORT").ToInt()
//	env.Rule("PORT").IsRequired().IsRangeValue(dotenv.Float(1), dotenv.Float(65535))
//	env.Rule("DEBUG", "VERBOSE").IsBool()
//
//	values, err := env.Load(".env", ".env.local")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	port := values["PORT"].(int64)
//
// Syntax:
//
//	# comment
//	KEY=value
//	QUOTED='two words'   # text after the closing quote is ignored
//	MULTI="line one
//	line two"
//
// An unquoted value may not contain a space; anything after a tab is treated
// as a comment. Escaped quotes inside a quoted value are kept as written, backslash
// included: KEY='it\'s' yields `it\'s`.
//
// Error Modes:
// In strict mode the first syntax, loader or runtime problem is returned. In
// permissive mode offending lines are skipped and logged. A key starting with
// an invalid character and an unclosed quote fail in every mode.
//
// Thread Safety:
// Session operations are serialized by a mutex. Rule and Converter values
// returned by the setters must not be modified concurrently with a parse.
package dotenv
