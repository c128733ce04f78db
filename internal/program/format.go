package program

import (
	"fmt"
	"strings"
)

// FormatError reports a malformed pattern or a placeholder/argument mismatch.
type FormatError struct {
	Pattern string
	Reason  string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("format %q: %s", e.Pattern, e.Reason)
}

// Format substitutes each "{}" in pattern with the next argument, in order.
// "{{" and "}}" produce literal braces. The number of placeholders must match
// the number of arguments.
func Format(pattern string, args ...any) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern) + 8*len(args))
	used := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '{':
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				if used >= len(args) {
					return "", FormatError{Pattern: pattern, Reason: fmt.Sprintf("more placeholders than arguments (%d)", len(args))}
				}
				fmt.Fprint(&b, args[used])
				used++
				i++
				continue
			}
			return "", FormatError{Pattern: pattern, Reason: fmt.Sprintf("unmatched '{' at offset %d", i)}
		case '}':
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", FormatError{Pattern: pattern, Reason: fmt.Sprintf("unmatched '}' at offset %d", i)}
		default:
			b.WriteByte(c)
		}
	}
	if used != len(args) {
		return "", FormatError{Pattern: pattern, Reason: fmt.Sprintf("%d placeholders for %d arguments", used, len(args))}
	}
	return b.String(), nil
}

// Placeholders counts the "{}" placeholders in pattern, ignoring escapes.
func Placeholders(pattern string) int {
	count := 0
	for i := 0; i < len(pattern)-1; i++ {
		switch pattern[i : i+2] {
		case "{{", "}}":
			i++
		case "{}":
			count++
			i++
		}
	}
	return count
}
