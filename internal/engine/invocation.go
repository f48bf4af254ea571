package engine

import (
	"strconv"
	"strings"
)

// DefaultBinary is the engine executable looked up on PATH.
const DefaultBinary = "sphinx-build"

// SearchPathEnv is the child environment variable carrying the module search path.
const SearchPathEnv = "PYTHONPATH"

// Invocation describes one run of the documentation engine.
type Invocation struct {
	BuildID   string
	Builder   string
	SourceDir string
	ConfDir   string
	OutputDir string
	// SearchPath is exported to the engine process only.
	SearchPath       string
	Jobs             int // 0 leaves the engine default, negative selects "auto"
	WarningsAsErrors bool
	Quiet            bool
	Extra            []string
}

// BuilderName returns the configured builder, defaulting to html.
func (inv Invocation) BuilderName() string {
	if inv.Builder == "" {
		return "html"
	}
	return inv.Builder
}

// Args returns the engine command-line arguments.
func (inv Invocation) Args() []string {
	args := []string{"-b", inv.BuilderName()}
	if inv.ConfDir != "" {
		args = append(args, "-c", inv.ConfDir)
	}
	switch {
	case inv.Jobs > 0:
		args = append(args, "-j", strconv.Itoa(inv.Jobs))
	case inv.Jobs < 0:
		args = append(args, "-j", "auto")
	}
	if inv.WarningsAsErrors {
		args = append(args, "-W", "--keep-going")
	}
	if inv.Quiet {
		args = append(args, "-q")
	}
	args = append(args, inv.Extra...)
	return append(args, inv.SourceDir, inv.OutputDir)
}

// Env returns base with the search path variable replaced by SearchPath.
// base itself is not modified.
func (inv Invocation) Env(base []string) []string {
	prefix := SearchPathEnv + "="
	env := make([]string, 0, len(base)+1)
	for _, kv := range base {
		if strings.HasPrefix(kv, prefix) {
			continue
		}
		env = append(env, kv)
	}
	if inv.SearchPath != "" {
		env = append(env, prefix+inv.SearchPath)
	}
	return env
}
