package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// setKeys are settings whose order carries no meaning to the engine.
var setKeys = map[string]bool{
	"templates_path":   true,
	"exclude_patterns": true,
	"html_static_path": true,
	"bibtex_bibfiles":  true,
}

// Snapshot computes a stable hash of the engine settings. The extension
// list is hashed in declaration order; set-valued fields are sorted first.
func (c *BuildConfig) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }
	for _, s := range c.Settings() {
		switch v := s.Value.(type) {
		case []string:
			items := slices.Clone(v)
			if setKeys[s.Key] {
				slices.Sort(items)
			}
			w(s.Key, strings.Join(items, "\x1f"))
		default:
			w(s.Key, fmt.Sprintf("%T:%v", v, v))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
