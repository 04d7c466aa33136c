package internal

import (
	"strings"
	"unicode"
)

// SnakeCase converts a Go identifier to lowercase words joined by
// underscores: "ManyThings" -> "many_things", "UNum" -> "u_num",
// "HTTPServer" -> "http_server".
func SnakeCase(name string) string {
	runes := []rune(name)
	var sb strings.Builder
	for i, r := range runes {
		if r == CharUnderscore {
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "_") {
				sb.WriteRune(r)
			}
			continue
		}
		if unicode.IsUpper(r) && i > 0 && sb.Len() > 0 && !strings.HasSuffix(sb.String(), "_") {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteRune(CharUnderscore)
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return strings.TrimSuffix(sb.String(), "_")
}

// VariantName strips the owning type's name from a constant or variant
// type name when it is used as a prefix: ManyThingsSalad -> Salad.
func VariantName(owner, name string) string {
	if rest, ok := strings.CutPrefix(name, owner); ok && rest != "" {
		if r := []rune(rest)[0]; unicode.IsUpper(r) || r == CharUnderscore {
			return strings.TrimLeft(rest, "_")
		}
	}
	return name
}

// DefaultLiteral returns the literal a payload-free variant or unit type
// matches when no string override is given.
func DefaultLiteral(owner, name string) string {
	return SnakeCase(VariantName(owner, name))
}
