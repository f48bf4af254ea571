package config

import (
	"fmt"

	dcerrors "git.home.luguber.info/inful/docconf/internal/errors"
	"git.home.luguber.info/inful/docconf/internal/extension"
)

// Validate checks the record's structure and registers every option set
// with its extension. Unknown extension and theme names are left for the
// engine to report.
func (c *BuildConfig) Validate() error {
	seen := make(map[string]int, len(c.Extensions))
	for i, ext := range c.Extensions {
		field := fmt.Sprintf("extensions[%d]", i)
		if ext == "" {
			return dcerrors.ValidationFailed(field, "extension name cannot be empty")
		}
		if first, dup := seen[ext]; dup {
			return dcerrors.ValidationFailed(field, fmt.Sprintf("duplicate extension %s (first listed at index %d)", ext, first))
		}
		seen[ext] = i
	}

	_, err := c.Registry()
	return err
}

// Registry registers every option set against the activated extensions.
// The returned registry holds the option sets that passed; the error
// reports the first one that did not.
func (c *BuildConfig) Registry() (*extension.Registry, error) {
	reg := extension.NewRegistry(c.Extensions)
	var first error
	for _, e := range c.Options.entries() {
		if err := reg.Register(e.opts); err != nil && first == nil {
			first = dcerrors.ValidationFailed("options."+e.key, err.Error()).
				WithContext("extension", e.opts.Extension())
		}
	}
	return reg, first
}
