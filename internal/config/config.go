package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	dcerrors "git.home.luguber.info/inful/docconf/internal/errors"
	"git.home.luguber.info/inful/docconf/internal/extension"
)

// BuildConfig is the settings record handed to the documentation engine.
// Fields left empty are omitted from the engine configuration so the engine
// falls back to its own defaults.
type BuildConfig struct {
	Project   string `yaml:"project,omitempty" json:"project,omitempty"`
	Copyright string `yaml:"copyright,omitempty" json:"copyright,omitempty"`
	Author    string `yaml:"author,omitempty" json:"author,omitempty"`
	// Release is a free-form label and is never parsed as a number.
	Release string `yaml:"release,omitempty" json:"release,omitempty"`

	// Extensions are activated by the engine in declaration order.
	Extensions []string `yaml:"extensions" json:"extensions"`

	TemplatesPath   []string `yaml:"templates_path" json:"templates_path"`
	ExcludePatterns []string `yaml:"exclude_patterns" json:"exclude_patterns"`

	Theme         string   `yaml:"html_theme,omitempty" json:"html_theme,omitempty"`
	StaticPath    []string `yaml:"html_static_path" json:"html_static_path"`
	NumberFigures *bool    `yaml:"numfig,omitempty" json:"numfig,omitempty"`

	Options ExtensionOptions `yaml:"options,omitempty" json:"options,omitempty"`
}

// ExtensionOptions holds the explicit option set of each known extension.
type ExtensionOptions struct {
	Autodoc  *extension.Autodoc  `yaml:"autodoc,omitempty" json:"autodoc,omitempty"`
	MathJax  *extension.MathJax  `yaml:"mathjax,omitempty" json:"mathjax,omitempty"`
	Graphviz *extension.Graphviz `yaml:"graphviz,omitempty" json:"graphviz,omitempty"`
	Mermaid  *extension.Mermaid  `yaml:"mermaid,omitempty" json:"mermaid,omitempty"`
	Drawio   *extension.Drawio   `yaml:"drawio,omitempty" json:"drawio,omitempty"`
	MystNB   *extension.MystNB   `yaml:"myst_nb,omitempty" json:"myst_nb,omitempty"`
	Bibtex   *extension.Bibtex   `yaml:"bibtex,omitempty" json:"bibtex,omitempty"`
}

// optionEntry pairs an option set with its YAML key for error reporting.
type optionEntry struct {
	key  string
	opts extension.Options
}

// entries returns the option sets that are present, in a fixed order.
func (o ExtensionOptions) entries() []optionEntry {
	var out []optionEntry
	add := func(key string, present bool, opts extension.Options) {
		if present {
			out = append(out, optionEntry{key: key, opts: opts})
		}
	}
	add("autodoc", o.Autodoc != nil, o.Autodoc)
	add("mathjax", o.MathJax != nil, o.MathJax)
	add("graphviz", o.Graphviz != nil, o.Graphviz)
	add("mermaid", o.Mermaid != nil, o.Mermaid)
	add("drawio", o.Drawio != nil, o.Drawio)
	add("myst_nb", o.MystNB != nil, o.MystNB)
	add("bibtex", o.Bibtex != nil, o.Bibtex)
	return out
}

// Load reads, normalizes and validates a YAML configuration file.
// Environment variables from .env files are made available to ${VAR}
// references without overriding the process environment.
func Load(configPath string) (*BuildConfig, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dcerrors.ConfigNotFound(configPath)
		}
		return nil, dcerrors.WrapRetryable(err, dcerrors.CategoryFileSystem, dcerrors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, dcerrors.ConfigInvalid(configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration content and normalizes it. Unknown keys
// and additional documents are rejected.
func Parse(data []byte) (*BuildConfig, error) {
	expanded := os.ExpandEnv(string(data))

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)

	var cfg BuildConfig
	switch err := dec.Decode(&cfg); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	default:
		var extra yaml.Node
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			if err == nil {
				err = errors.New("only one document is allowed")
			}
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	cfg.Normalize()
	return &cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *BuildConfig) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return buf.Bytes(), nil
}

// Init writes the built-in configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	data, err := Default().Marshal()
	if err != nil {
		return err
	}

	header := "# docconf build configuration\n# Values left out are supplied by the documentation engine.\n\n"
	if err := renameio.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	slog.Info("Configuration file created", "path", configPath)
	return nil
}
