package config

import (
	"slices"

	"git.home.luguber.info/inful/docconf/internal/extension"
)

// Settings returns the engine configuration assignments in emission order:
// project information, general options, HTML options, then extension
// options following the extension list. Unset scalars are omitted;
// collection fields are always present. Option sets rejected by the
// extension registry contribute nothing.
func (c *BuildConfig) Settings() []extension.Setting {
	var out []extension.Setting
	str := func(key, v string) {
		if v != "" {
			out = append(out, extension.Setting{Key: key, Value: v})
		}
	}
	list := func(key string, v []string) {
		out = append(out, extension.Setting{Key: key, Value: slices.Clone(orEmpty(v))})
	}

	str("project", c.Project)
	str("copyright", c.Copyright)
	str("author", c.Author)
	str("release", c.Release)

	list("extensions", c.Extensions)
	list("templates_path", c.TemplatesPath)
	list("exclude_patterns", c.ExcludePatterns)

	str("html_theme", c.Theme)
	list("html_static_path", c.StaticPath)
	if c.NumberFigures != nil {
		out = append(out, extension.Setting{Key: "numfig", Value: *c.NumberFigures})
	}

	reg, _ := c.Registry()
	return append(out, reg.Settings()...)
}
