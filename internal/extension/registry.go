package extension

import (
	"fmt"
	"slices"
)

// Registry holds the validated option sets of the activated extensions.
type Registry struct {
	active []string
	opts   map[string]Options
}

// NewRegistry creates a registry for the given activated extensions.
func NewRegistry(active []string) *Registry {
	return &Registry{
		active: slices.Clone(active),
		opts:   make(map[string]Options),
	}
}

// Register validates opts and records them. The extension must be activated
// and may only be registered once.
func (r *Registry) Register(opts Options) error {
	name := opts.Extension()
	if !slices.Contains(r.active, name) {
		return fmt.Errorf("options given for %s, which is not in the extension list", name)
	}
	if _, dup := r.opts[name]; dup {
		return fmt.Errorf("options for %s registered twice", name)
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	r.opts[name] = opts
	return nil
}

// Lookup returns the registered options for name.
func (r *Registry) Lookup(name string) (Options, bool) {
	o, ok := r.opts[name]
	return o, ok
}

// Settings returns the settings of every registered extension, following
// the order of the activated extension list.
func (r *Registry) Settings() []Setting {
	var out []Setting
	for _, name := range r.active {
		if o, ok := r.opts[name]; ok {
			out = append(out, o.Settings()...)
		}
	}
	return out
}
