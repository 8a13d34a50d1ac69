package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	entityNameRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	entityInvalidRe = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// IsValidEntityName reports whether name can be used as a class name and as
// a file name segment: a letter followed by letters, digits or underscores.
func IsValidEntityName(name string) bool {
	return entityNameRe.MatchString(name)
}

// FormatEntityName turns user input such as " order item" into "OrderItem".
// It returns an empty string when nothing usable is left.
func FormatEntityName(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '.'
	})
	var b strings.Builder
	for _, f := range fields {
		f = entityInvalidRe.ReplaceAllString(f, "")
		if f == "" {
			continue
		}
		b.WriteString(strings.ToUpper(f[:1]))
		b.WriteString(f[1:])
	}

	formatted := strings.TrimLeft(b.String(), "0123456789_")
	if formatted != "" {
		formatted = strings.ToUpper(formatted[:1]) + formatted[1:]
	}
	if !IsValidEntityName(formatted) {
		return ""
	}
	return formatted
}

// TruncateString truncates a string to the specified length, adding an ellipsis if truncated,
// measured in runes.
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}
