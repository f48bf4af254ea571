package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sphinx-build 7.2.6\n", "7.2.6"},
		{"sphinx-build 8.1", "8.1"},
		{"  dev-build  \n", "dev-build"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseVersion(tt.in), tt.in)
	}
}

func TestDetectVersion_MissingBinary(t *testing.T) {
	assert.Empty(t, DetectVersion(t.Context(), "docconf-no-such-engine"))
}
