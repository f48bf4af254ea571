package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// pyLiteral formats a setting value as a Python literal.
func pyLiteral(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return pyString(val), nil
	case bool:
		if val {
			return "True", nil
		}
		return "False", nil
	case int:
		return strconv.Itoa(val), nil
	case []string:
		items := make([]string, len(val))
		for i, s := range val {
			items[i] = pyString(s)
		}
		return "[" + strings.Join(items, ", ") + "]", nil
	default:
		return "", fmt.Errorf("unsupported setting type %T", v)
	}
}

// pyString quotes s as a single-quoted Python string literal.
func pyString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
