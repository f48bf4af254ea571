package config

import (
	"path/filepath"

	dcerrors "git.home.luguber.info/inful/docconf/internal/errors"
)

// ResolveSearchPath returns the absolute module search path for a
// configuration directory: the directory two levels above confDir. The
// result is meant to be passed to the engine invocation; the process
// environment is left untouched.
func ResolveSearchPath(confDir string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(confDir, "..", ".."))
	if err != nil {
		return "", dcerrors.SearchPathError(confDir, err)
	}
	return filepath.Clean(abs), nil
}
