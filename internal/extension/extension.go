package extension

import (
	"fmt"
	"slices"
	"strings"
)

// Canonical module names of the extensions docconf knows options for.
const (
	NameAutodoc  = "sphinx.ext.autodoc"
	NameMathJax  = "sphinx.ext.mathjax"
	NameGraphviz = "sphinx.ext.graphviz"
	NameMermaid  = "sphinxcontrib.mermaid"
	NameDrawio   = "sphinxcontrib.drawio"
	NameMystNB   = "myst_nb"
	NameBibtex   = "sphinxcontrib.bibtex"
)

// knownNames lists every extension with an options type, in registration order.
var knownNames = []string{
	NameAutodoc,
	NameMathJax,
	NameGraphviz,
	NameMermaid,
	NameDrawio,
	NameMystNB,
	NameBibtex,
}

// Setting is one engine configuration assignment. Value is a string, int,
// bool or []string.
type Setting struct {
	Key   string
	Value any
}

// Options is the recognized option set of a single extension.
type Options interface {
	// Extension returns the module name the options belong to.
	Extension() string
	// Validate reports the first unrecognized or malformed option.
	Validate() error
	// Settings returns the options that carry a value, in a stable order.
	Settings() []Setting
}

// Known reports whether name is an extension docconf has an options type for.
func Known(name string) bool {
	return slices.Contains(knownNames, name)
}

// OptionError describes a rejected option value.
type OptionError struct {
	Extension string
	Option    string
	Value     any
	Allowed   []string
	Reason    string
}

func (e *OptionError) Error() string {
	switch {
	case len(e.Allowed) > 0:
		return fmt.Sprintf("%s: invalid %s %v (allowed: %s)", e.Extension, e.Option, e.Value, strings.Join(e.Allowed, ", "))
	case e.Reason != "":
		return fmt.Sprintf("%s: invalid %s %v: %s", e.Extension, e.Option, e.Value, e.Reason)
	default:
		return fmt.Sprintf("%s: invalid %s %v", e.Extension, e.Option, e.Value)
	}
}

// oneOf validates that v is empty or one of allowed.
func oneOf(ext, option, v string, allowed ...string) error {
	if v == "" || slices.Contains(allowed, v) {
		return nil
	}
	return &OptionError{Extension: ext, Option: option, Value: v, Allowed: allowed}
}

// settings collects assignments while skipping zero values.
type settings []Setting

func (s *settings) str(key, v string) {
	if v != "" {
		*s = append(*s, Setting{Key: key, Value: v})
	}
}

func (s *settings) strs(key string, v []string) {
	if len(v) > 0 {
		*s = append(*s, Setting{Key: key, Value: slices.Clone(v)})
	}
}

func (s *settings) boolean(key string, v *bool) {
	if v != nil {
		*s = append(*s, Setting{Key: key, Value: *v})
	}
}

func (s *settings) integer(key string, v *int) {
	if v != nil {
		*s = append(*s, Setting{Key: key, Value: *v})
	}
}
