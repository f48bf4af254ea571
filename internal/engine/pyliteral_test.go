package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPyLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "crsq", "'crsq'"},
		{"release stays string", "0.1", "'0.1'"},
		{"quote", "Hideo's docs", `'Hideo\'s docs'`},
		{"backslash", `C:\docs`, `'C:\\docs'`},
		{"newline", "a\nb", `'a\nb'`},
		{"control", "a\x01b", `'a\x01b'`},
		{"unicode", "高橋", "'高橋'"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"int", 60, "60"},
		{"negative int", -1, "-1"},
		{"empty list", []string{}, "[]"},
		{"list", []string{"_static", "it's"}, `['_static', 'it\'s']`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pyLiteral(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPyLiteralUnsupported(t *testing.T) {
	_, err := pyLiteral(3.5)
	require.Error(t, err)
}
