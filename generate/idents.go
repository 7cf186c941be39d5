package generate

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// csrTypeName is the name of the marker type for the CSR whose accessor is
// named name: "mtime" becomes "CSR_MTIME".
func csrTypeName(name string) string {
	return "CSR_" + cases.Upper(language.Und).String(name)
}

// isRustIdent reports whether s can be used as a Rust identifier: a letter
// or underscore followed by letters, digits and underscores.
func isRustIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func makeIdentUnderscores(inp string) string {
	var b strings.Builder
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case unicode.IsLetter(r):
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
