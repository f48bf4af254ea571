package errors

import (
	"fmt"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", fmt.Errorf("boom"), 1},
		{"validation", ValidationFailed("release", "empty"), 2},
		{"config", ConfigNotFound("docconf.yaml"), 7},
		{"engine", EngineFailed("html", fmt.Errorf("exit 2")), 8},
		{"filesystem", SearchPathError(".", fmt.Errorf("getwd")), 11},
		{"internal", InternalError("render", fmt.Errorf("x")), 10},
		{"wrapped config", fmt.Errorf("load: %w", ConfigNotFound("x")), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)

	err := ValidationFailed("extensions[2]", "duplicate extension")
	if got := quiet.FormatError(err); got != "validation failed: extensions[2]: duplicate extension" {
		t.Errorf("quiet FormatError() = %q", got)
	}
	if got := verbose.FormatError(err); got != err.Error() {
		t.Errorf("verbose FormatError() = %q, want %q", got, err.Error())
	}

	engineErr := EngineFailed("html", fmt.Errorf("exit 1"))
	if got := quiet.FormatError(engineErr); got != "engine: html build failed" {
		t.Errorf("engine FormatError() = %q", got)
	}

	if got := quiet.FormatError(fmt.Errorf("plain")); got != "Error: plain" {
		t.Errorf("plain FormatError() = %q", got)
	}
}
