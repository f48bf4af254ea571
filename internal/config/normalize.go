package config

import (
	"slices"
	"strings"
)

// Normalize trims extension names and turns unset collection fields into
// empty ones. No other defaults are applied.
func (c *BuildConfig) Normalize() {
	for i, ext := range c.Extensions {
		c.Extensions[i] = strings.TrimSpace(ext)
	}
	c.Extensions = orEmpty(c.Extensions)
	c.TemplatesPath = orEmpty(c.TemplatesPath)
	c.ExcludePatterns = orEmpty(c.ExcludePatterns)
	c.StaticPath = orEmpty(c.StaticPath)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Clone returns a deep copy of the configuration.
func (c *BuildConfig) Clone() *BuildConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.Extensions = slices.Clone(c.Extensions)
	out.TemplatesPath = slices.Clone(c.TemplatesPath)
	out.ExcludePatterns = slices.Clone(c.ExcludePatterns)
	out.StaticPath = slices.Clone(c.StaticPath)
	out.NumberFigures = clonePtr(c.NumberFigures)
	out.Options = c.Options.clone()
	return &out
}

func (o ExtensionOptions) clone() ExtensionOptions {
	var out ExtensionOptions
	if o.Autodoc != nil {
		v := *o.Autodoc
		out.Autodoc = &v
	}
	if o.MathJax != nil {
		v := *o.MathJax
		out.MathJax = &v
	}
	if o.Graphviz != nil {
		v := *o.Graphviz
		out.Graphviz = &v
	}
	if o.Mermaid != nil {
		v := *o.Mermaid
		out.Mermaid = &v
	}
	if o.Drawio != nil {
		v := *o.Drawio
		v.Headless = clonePtr(o.Drawio.Headless)
		out.Drawio = &v
	}
	if o.MystNB != nil {
		v := *o.MystNB
		v.ExecutionTimeout = clonePtr(o.MystNB.ExecutionTimeout)
		v.AllowErrors = clonePtr(o.MystNB.AllowErrors)
		out.MystNB = &v
	}
	if o.Bibtex != nil {
		v := *o.Bibtex
		v.BibFiles = slices.Clone(o.Bibtex.BibFiles)
		out.Bibtex = &v
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
