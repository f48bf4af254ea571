package extension

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Autodoc configures sphinx.ext.autodoc.
type Autodoc struct {
	Typehints    string `yaml:"typehints,omitempty" json:"typehints,omitempty"`
	ClassContent string `yaml:"class_content,omitempty" json:"class_content,omitempty"`
	MemberOrder  string `yaml:"member_order,omitempty" json:"member_order,omitempty"`
}

func (*Autodoc) Extension() string { return NameAutodoc }

func (a *Autodoc) Validate() error {
	if err := oneOf(NameAutodoc, "typehints", a.Typehints, "signature", "description", "none", "both"); err != nil {
		return err
	}
	if err := oneOf(NameAutodoc, "class_content", a.ClassContent, "class", "both", "init"); err != nil {
		return err
	}
	return oneOf(NameAutodoc, "member_order", a.MemberOrder, "alphabetical", "groupwise", "bysource")
}

func (a *Autodoc) Settings() []Setting {
	var s settings
	s.str("autodoc_typehints", a.Typehints)
	s.str("autoclass_content", a.ClassContent)
	s.str("autodoc_member_order", a.MemberOrder)
	return s
}

// MathJax configures sphinx.ext.mathjax.
type MathJax struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

func (*MathJax) Extension() string { return NameMathJax }

func (m *MathJax) Validate() error {
	if m.Path == "" {
		return nil
	}
	if strings.Contains(m.Path, "://") {
		u, err := url.Parse(m.Path)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &OptionError{Extension: NameMathJax, Option: "path", Value: m.Path, Reason: "must be an http(s) URL or a relative path"}
		}
		return nil
	}
	if filepath.IsAbs(m.Path) {
		return &OptionError{Extension: NameMathJax, Option: "path", Value: m.Path, Reason: "must be an http(s) URL or a relative path"}
	}
	return nil
}

func (m *MathJax) Settings() []Setting {
	var s settings
	s.str("mathjax_path", m.Path)
	return s
}

// Graphviz configures sphinx.ext.graphviz.
type Graphviz struct {
	Dot          string `yaml:"dot,omitempty" json:"dot,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty" json:"output_format,omitempty"`
}

func (*Graphviz) Extension() string { return NameGraphviz }

func (g *Graphviz) Validate() error {
	return oneOf(NameGraphviz, "output_format", g.OutputFormat, "png", "svg")
}

func (g *Graphviz) Settings() []Setting {
	var s settings
	s.str("graphviz_dot", g.Dot)
	s.str("graphviz_output_format", g.OutputFormat)
	return s
}

// Mermaid configures sphinxcontrib.mermaid.
type Mermaid struct {
	Version      string `yaml:"version,omitempty" json:"version,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty" json:"output_format,omitempty"`
}

func (*Mermaid) Extension() string { return NameMermaid }

func (m *Mermaid) Validate() error {
	return oneOf(NameMermaid, "output_format", m.OutputFormat, "raw", "png", "svg")
}

func (m *Mermaid) Settings() []Setting {
	var s settings
	s.str("mermaid_version", m.Version)
	s.str("mermaid_output_format", m.OutputFormat)
	return s
}

// Drawio configures sphinxcontrib.drawio.
type Drawio struct {
	BinaryPath   string `yaml:"binary_path,omitempty" json:"binary_path,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty" json:"output_format,omitempty"`
	Headless     *bool  `yaml:"headless,omitempty" json:"headless,omitempty"`
}

func (*Drawio) Extension() string { return NameDrawio }

func (d *Drawio) Validate() error {
	return oneOf(NameDrawio, "output_format", d.OutputFormat, "png", "jpg", "svg", "pdf")
}

func (d *Drawio) Settings() []Setting {
	var s settings
	s.str("drawio_binary_path", d.BinaryPath)
	s.str("drawio_output_format", d.OutputFormat)
	s.boolean("drawio_headless", d.Headless)
	return s
}

// MystNB configures myst_nb notebook execution.
type MystNB struct {
	// ExecutionTimeout is passed through in seconds; -1 disables the limit.
	ExecutionTimeout *int   `yaml:"execution_timeout,omitempty" json:"execution_timeout,omitempty"`
	ExecutionMode    string `yaml:"execution_mode,omitempty" json:"execution_mode,omitempty"`
	AllowErrors      *bool  `yaml:"allow_errors,omitempty" json:"allow_errors,omitempty"`
}

func (*MystNB) Extension() string { return NameMystNB }

func (m *MystNB) Validate() error {
	if m.ExecutionTimeout != nil && *m.ExecutionTimeout < -1 {
		return &OptionError{Extension: NameMystNB, Option: "execution_timeout", Value: *m.ExecutionTimeout, Reason: "must be -1 or a non-negative number of seconds"}
	}
	return oneOf(NameMystNB, "execution_mode", m.ExecutionMode, "off", "force", "auto", "cache", "inline")
}

func (m *MystNB) Settings() []Setting {
	var s settings
	s.integer("nb_execution_timeout", m.ExecutionTimeout)
	s.str("nb_execution_mode", m.ExecutionMode)
	s.boolean("nb_execution_allow_errors", m.AllowErrors)
	return s
}

// Bibtex configures sphinxcontrib.bibtex. BibFiles is mandatory for the
// extension to load at all.
type Bibtex struct {
	BibFiles       []string `yaml:"bibfiles" json:"bibfiles"`
	DefaultStyle   string   `yaml:"default_style,omitempty" json:"default_style,omitempty"`
	ReferenceStyle string   `yaml:"reference_style,omitempty" json:"reference_style,omitempty"`
}

func (*Bibtex) Extension() string { return NameBibtex }

func (b *Bibtex) Validate() error {
	if len(b.BibFiles) == 0 {
		return &OptionError{Extension: NameBibtex, Option: "bibfiles", Value: b.BibFiles, Reason: "at least one bibliography file is required"}
	}
	for _, f := range b.BibFiles {
		if strings.TrimSpace(f) == "" {
			return &OptionError{Extension: NameBibtex, Option: "bibfiles", Value: b.BibFiles, Reason: "file names must not be empty"}
		}
	}
	if err := oneOf(NameBibtex, "default_style", b.DefaultStyle, "alpha", "plain", "unsrt", "unsrtalpha"); err != nil {
		return err
	}
	return oneOf(NameBibtex, "reference_style", b.ReferenceStyle, "label", "author_year", "super")
}

func (b *Bibtex) Settings() []Setting {
	var s settings
	s.strs("bibtex_bibfiles", b.BibFiles)
	s.str("bibtex_default_style", b.DefaultStyle)
	s.str("bibtex_reference_style", b.ReferenceStyle)
	return s
}
