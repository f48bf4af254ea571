package engine

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
)

var versionPattern = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?)`)

// DetectVersion reports the version of the engine binary, or an empty
// string when it is unavailable. It never fails.
func DetectVersion(ctx context.Context, binary string) string {
	if binary == "" {
		binary = DefaultBinary
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return ""
	}

	// #nosec G204 -- path is from exec.LookPath, not user-controlled
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return ""
	}
	return parseVersion(string(out))
}

// parseVersion extracts the version from output such as
// "sphinx-build 7.2.6".
func parseVersion(output string) string {
	if m := versionPattern.FindStringSubmatch(output); len(m) >= 2 {
		return m[1]
	}
	return strings.TrimSpace(output)
}
