// FILE: lixenwraith/dotenv/key.go
package dotenv

// trimSet matches the characters stripped around keys, values and lines.
const trimSet = " \t\n\r\x00\x0B"

// IsValidKey reports whether s is a valid key: [A-Za-z_][A-Za-z0-9_]*
func IsValidKey(s string) bool {
	if len(s) == 0 || !isKeyStart(s[0]) {
		return false
	}
	return validKeyChars(s)
}

// isKeyStart checks if a character may start a key
func isKeyStart(c byte) bool {
	return isAlpha(c) || c == '_'
}

// validKeyChars checks every character of s against [A-Za-z0-9_]
func validKeyChars(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isAlpha(c) && !isNumeric(c) && c != '_' {
			return false
		}
	}
	return true
}

// isAlpha checks if a character is a letter (A-Z, a-z)
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isNumeric checks if a character is a digit (0-9)
func isNumeric(c byte) bool {
	return c >= '0' && c <= '9'
}
