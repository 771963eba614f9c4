// FILE: lixenwraith/dotenv/scanner.go
package dotenv

import (
	"strings"
	"unicode"
)

// Scanner messages
const (
	msgValueNotDefined     = "value not defined"
	msgKeyNotDefined       = "key not defined"
	msgKeyInvalidStart     = "key invalid first character"
	msgKeyInvalidCharacter = "key invalid character"
	msgValueInvalidChar    = "value invalid character"
	msgQuoteNotClosed      = "quote not closed"
)

// lineBreaks folds every accepted line separator, including the literal
// two-character escapes, into a single line feed. Order matters: pairs first.
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	`\r\n`, "\n",
	"\r", "\n",
	`\r`, "\n",
	`\n`, "\n",
)

// normalizeLineBreaks converts raw content into LF separated text.
func normalizeLineBreaks(content string) string {
	return lineBreaks.Replace(content)
}

// entry is one logical key/value assignment produced by the scanner.
type entry struct {
	Key   string
	Value string
	Line  int // line the assignment starts on
}

// scanner turns normalized text into entries. Lines are consumed from a queue
// so quoted values can pull continuation lines.
type scanner struct {
	source string
	lines  []string
	pos    int // index of the next unread line
	lineNo int // number of the last line read
}

func newScanner(content, source string) *scanner {
	return &scanner{
		source: source,
		lines:  strings.Split(normalizeLineBreaks(content), "\n"),
	}
}

// done reports whether every line has been consumed.
func (s *scanner) done() bool {
	return s.pos >= len(s.lines)
}

// pull removes the next physical line from the queue.
func (s *scanner) pull() (string, bool) {
	if s.done() {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	s.lineNo++
	return line, true
}

// next scans one logical line. ok is false for blank lines, comments and errors.
// The offending line is always consumed, so callers may continue after a
// non-fatal error.
func (s *scanner) next() (e entry, ok bool, err error) {
	raw, more := s.pull()
	if !more {
		return entry{}, false, nil
	}

	line := strings.TrimLeft(raw, trimSet)
	if line == "" || line[0] == '#' {
		return entry{}, false, nil
	}

	key, value, found := strings.Cut(line, "=")
	if !found {
		return entry{}, false, s.errorf(s.lineNo, msgValueNotDefined, false)
	}
	key = strings.Trim(key, trimSet)
	value = strings.Trim(value, trimSet)

	switch {
	case key == "":
		return entry{}, false, s.errorf(s.lineNo, msgKeyNotDefined, false)
	case !isKeyStart(key[0]):
		// Structural: raised in every mode
		return entry{}, false, s.errorf(s.lineNo, msgKeyInvalidStart, true)
	case !validKeyChars(key):
		return entry{}, false, s.errorf(s.lineNo, msgKeyInvalidCharacter, false)
	}

	e = entry{Key: key, Line: s.lineNo}
	if value == "" {
		return e, true, nil
	}

	switch q := value[0]; q {
	case '\'', '"':
		inner, err := s.accumulateQuoted(value, q)
		if err != nil {
			return entry{}, false, err
		}
		e.Value = inner
	default:
		if strings.ContainsRune(value, ' ') {
			return entry{}, false, s.errorf(s.lineNo, msgValueInvalidChar, false)
		}
		// Anything after other whitespace is a comment
		if i := strings.IndexFunc(value, unicode.IsSpace); i >= 0 {
			value = value[:i]
		}
		e.Value = value
	}
	return e, true, nil
}

// accumulateQuoted appends continuation lines until buf holds a closing quote.
// An unclosed quote swallows the rest of the input, so it is always fatal.
func (s *scanner) accumulateQuoted(buf string, q byte) (string, error) {
	start := s.lineNo
	for {
		if inner, closed := matchQuoted(buf, q); closed {
			return inner, nil
		}
		next, more := s.pull()
		if !more {
			return "", s.errorf(start, msgQuoteNotClosed, true)
		}
		buf += "\n" + next
	}
}

// matchQuoted returns the text between buf[0] and the first unescaped
// occurrence of q. Escaped quotes are kept verbatim, backslash included.
// Text after the closing quote is discarded.
func matchQuoted(buf string, q byte) (string, bool) {
	for i := 1; i < len(buf); i++ {
		switch buf[i] {
		case '\\':
			if i+1 < len(buf) && buf[i+1] == q {
				i++
			}
		case q:
			return buf[1:i], true
		}
	}
	return "", false
}

func (s *scanner) errorf(line int, msg string, fatal bool) *SyntaxError {
	return &SyntaxError{Source: s.source, Line: line, Msg: msg, fatal: fatal}
}
