// File: lixenwraith/dotenv/io.go
package dotenv

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

// Save atomically writes the pairs accepted by this session to path in
// .env syntax, sorted by key. The written file parses back to the same
// string values.
func (d *DotEnv) Save(path string) error {
	var buf bytes.Buffer
	if err := d.WriteEnv(&buf); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes())
}

// WriteEnv writes the accepted pairs in .env syntax. nil values are written
// as empty values.
func (d *DotEnv) WriteEnv(w io.Writer) error {
	values := d.Loaded()
	for _, key := range slices.Sorted(maps.Keys(values)) {
		line, err := formatEnvLine(key, values[key])
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return nil
}

// formatEnvLine renders one assignment, quoting when the value would not
// survive an unquoted round trip.
func formatEnvLine(key string, value any) (string, error) {
	s := FormatValue(value)
	if strings.ContainsRune(s, '\r') || strings.Contains(s, `\n`) || strings.Contains(s, `\r`) {
		return "", runtimeErrorf(nil, "value of %s contains a line break sequence that cannot be written", key)
	}

	needsQuote := strings.IndexFunc(s, unicode.IsSpace) >= 0 ||
		strings.HasPrefix(s, `"`) || strings.HasPrefix(s, `'`)
	if !needsQuote {
		return key + "=" + s + "\n", nil
	}

	if strings.HasSuffix(s, `\`) {
		return "", runtimeErrorf(nil, "quoted value of %s cannot end with a backslash", key)
	}
	switch {
	case !strings.Contains(s, `"`):
		return key + `="` + s + "\"\n", nil
	case !strings.Contains(s, `'`):
		return key + `='` + s + "'\n", nil
	}
	return "", runtimeErrorf(nil, "value of %s contains both quote characters", key)
}

// Dump writes the accepted pairs to w in TOML format. nil values are omitted.
func (d *DotEnv) Dump(w io.Writer) error {
	values := d.Loaded()
	maps.DeleteFunc(values, func(_ string, v any) bool { return v == nil })

	encoder := toml.NewEncoder(w)
	return encoder.Encode(values)
}

// atomicWriteFile writes data to a temporary file and renames it over path.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
