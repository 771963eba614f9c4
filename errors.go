// FILE: lixenwraith/dotenv/errors.go
package dotenv

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package unwraps to exactly one of
// ErrSyntax, ErrLoader or ErrRuntime.
var (
	ErrSyntax  = errors.New("syntax error")
	ErrLoader  = errors.New("loader error")
	ErrRuntime = errors.New("runtime error")
)

// Loader error causes
var (
	ErrFileNotFound = errors.New("file not found")
	ErrNoData       = errors.New("none env variable loaded")
	ErrRequired     = errors.New("required key not defined")
	ErrNotAllowed   = errors.New("key not allowed")
	ErrRuleFailed   = errors.New("rule not met")
	ErrConversion   = errors.New("conversion failed")
	ErrFileSize     = errors.New("file exceeds maximum size")
)

// Runtime error causes
var (
	ErrInvalidKey       = errors.New("invalid key")
	ErrUnknownRule      = errors.New("unknown rule")
	ErrUnknownConverter = errors.New("unknown converter")
	ErrUnknownAdaptor   = errors.New("unknown adaptor")
	ErrKeyNotFound      = errors.New("key not found")
	ErrAdaptor          = errors.New("adaptor failed")
	ErrConstantDefined  = errors.New("constant already defined")
)

// SyntaxError reports a malformed line in a source.
type SyntaxError struct {
	Source string // file path or caller supplied name, may be empty
	Line   int    // 1-based line number; for unclosed quotes the opening line
	Msg    string

	// fatal marks errors that abort scanning regardless of mode
	fatal bool
}

func (e *SyntaxError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: %s:%d: %s", ErrSyntax, e.Source, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: line %d: %s", ErrSyntax, e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// LoaderError reports a source that could not be loaded or a value that was rejected.
type LoaderError struct {
	Source string
	Key    string
	Rule   string // failing rule identifier, e.g. "isInt" or "isRegex[1]"
	Msg    string
	Err    error // cause, one of the loader error causes above or an I/O error
}

func (e *LoaderError) Error() string {
	msg := e.Msg
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	return fmt.Sprintf("%s: %s", ErrLoader, msg)
}

func (e *LoaderError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLoader}
	}
	return []error{ErrLoader, e.Err}
}

// RuntimeError reports invalid use or configuration of the loader itself.
type RuntimeError struct {
	Msg string
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRuntime, e.Msg)
}

func (e *RuntimeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRuntime}
	}
	return []error{ErrRuntime, e.Err}
}

func runtimeErrorf(cause error, format string, args ...any) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...), Err: cause}
}
