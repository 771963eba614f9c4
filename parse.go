// FILE: lixenwraith/dotenv/parse.go
package dotenv

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
)

// Parse scans content, converts and validates each pair, and stores accepted
// pairs in memory and every adaptor. source names the content in errors and
// may be empty.
//
// In strict mode the first problem is returned. In permissive mode offending
// lines are skipped, and a failed required sweep returns nil without error.
// A key starting with an invalid character and an unclosed quote fail in
// every mode.
func (d *DotEnv) Parse(content, source string) (map[string]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.configErr(); err != nil {
		return nil, err
	}

	result, err := d.parse(content, source)
	if err != nil {
		return nil, err
	}
	if err := d.requiredSweep(source); err != nil {
		if d.strict {
			return nil, err
		}
		d.logger.Warn("required key missing", "source", source, "error", err)
		return nil, nil
	}
	return result, nil
}

// ParseLines joins lines with line feeds and parses them.
func (d *DotEnv) ParseLines(lines []string, source string) (map[string]any, error) {
	return d.Parse(strings.Join(lines, "\n"), source)
}

// Load parses each file in order and merges the results, later files winning.
// Without paths DefaultPath is loaded. A missing file fails in strict mode and
// is skipped otherwise. If no file yields a pair, strict mode fails with
// ErrNoData and permissive mode returns nil.
func (d *DotEnv) Load(paths ...string) (map[string]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.configErr(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		paths = []string{DefaultPath}
	}

	merged := make(map[string]any)
	for _, path := range paths {
		content, err := readSource(path)
		if err != nil {
			if d.strict {
				return nil, err
			}
			d.logger.Warn("source skipped", "source", path, "error", err)
			continue
		}

		result, err := d.parse(content, path)
		if err != nil {
			return nil, err
		}
		maps.Copy(merged, result)
	}

	if len(merged) == 0 {
		err := &LoaderError{Source: strings.Join(paths, ","), Msg: ErrNoData.Error(), Err: ErrNoData}
		if d.strict {
			return nil, err
		}
		d.logger.Warn("no data loaded", "sources", paths)
		return nil, nil
	}

	if err := d.requiredSweep(""); err != nil {
		if d.strict {
			return nil, err
		}
		d.logger.Warn("required key missing", "error", err)
		return nil, nil
	}
	return merged, nil
}

// readSource reads a whole file, bounded by MaxFileSize.
func readSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &LoaderError{Source: path, Msg: ErrFileNotFound.Error(), Err: ErrFileNotFound}
		}
		return "", &LoaderError{Source: path, Msg: err.Error(), Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return "", &LoaderError{Source: path, Msg: err.Error(), Err: err}
	}
	if len(data) > MaxFileSize {
		return "", &LoaderError{Source: path, Msg: ErrFileSize.Error(), Err: ErrFileSize}
	}
	return string(data), nil
}

// parse runs the scanner over content and accepts every valid pair.
func (d *DotEnv) parse(content, source string) (map[string]any, error) {
	result := make(map[string]any)
	sc := newScanner(content, source)

	for !sc.done() {
		e, ok, err := sc.next()
		if err != nil {
			var serr *SyntaxError
			if d.strict || (errors.As(err, &serr) && serr.fatal) {
				return nil, err
			}
			d.logger.Warn("line skipped", "source", source, "line", sc.lineNo, "error", err)
			continue
		}
		if !ok {
			continue
		}

		value, err := d.evaluate(source, e)
		if err != nil {
			if d.strict {
				return nil, err
			}
			d.logger.Warn("value rejected", "source", source, "line", e.Line, "key", e.Key, "error", err)
			continue
		}

		result[e.Key] = value
		if err := d.accept(source, e.Key, value); err != nil {
			return nil, err
		}
		d.logger.Debug("value accepted", "source", source, "line", e.Line, "key", e.Key)
	}
	return result, nil
}

// evaluate converts a scanned value and validates the result.
func (d *DotEnv) evaluate(source string, e entry) (any, error) {
	value, err := d.converters[e.Key].Convert(e.Value)
	if err != nil {
		var rerr *RuntimeError
		if errors.As(err, &rerr) {
			return nil, err
		}
		return nil, &LoaderError{
			Source: source,
			Key:    e.Key,
			Msg:    fmt.Sprintf("value %q is %v", e.Key, strings.TrimPrefix(err.Error(), ErrConversion.Error()+": ")),
			Err:    err,
		}
	}

	if failed := validate(d.rules[e.Key], value); failed != "" {
		return nil, &LoaderError{
			Source: source,
			Key:    e.Key,
			Rule:   failed,
			Msg:    fmt.Sprintf("value %q does not meet rule %q", e.Key, failed),
			Err:    ErrRuleFailed,
		}
	}
	return value, nil
}

// requiredSweep checks every required key against the memory store, in rule
// configuration order.
func (d *DotEnv) requiredSweep(source string) error {
	for _, key := range d.ruleKeys {
		if !d.rules[key].Has(RuleRequired) || d.memory.Has(key) {
			continue
		}
		return &LoaderError{
			Source: source,
			Key:    key,
			Rule:   RuleRequired.String(),
			Msg:    fmt.Sprintf("key %q is required", key),
			Err:    ErrRequired,
		}
	}
	return nil
}
