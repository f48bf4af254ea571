package engine

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"git.home.luguber.info/inful/docconf/internal/config"
	"git.home.luguber.info/inful/docconf/internal/extension"
)

// ConfFileName is the file name the engine reads its configuration from.
const ConfFileName = "conf.py"

// RenderOptions controls how a configuration is rendered.
type RenderOptions struct {
	// PathBase, when set, makes relative template and static directories
	// absolute against it. Used when conf.py lives outside the source tree.
	PathBase string
}

type confSection struct {
	Title string
	Lines []string
}

var sectionOf = map[string]string{
	"project":          "Project information",
	"copyright":        "Project information",
	"author":           "Project information",
	"release":          "Project information",
	"extensions":       "General configuration",
	"templates_path":   "General configuration",
	"exclude_patterns": "General configuration",
	"html_theme":       "Options for HTML output",
	"html_static_path": "Options for HTML output",
	"numfig":           "Options for HTML output",
}

const extensionSection = "Extension options"

// rebased are settings holding directories relative to the conf.py location.
var rebased = map[string]bool{
	"templates_path":   true,
	"html_static_path": true,
}

var confTemplate = template.Must(template.New(ConfFileName).Parse(
	`# Configuration file for the documentation builder.
# Generated by docconf from snapshot {{.Snapshot}}; edit the docconf
# configuration instead of this file.
{{range .Sections}}
# -- {{.Title}} {{.Rule}}{{range .Lines}}
{{.}}{{end}}
{{end}}`))

type confData struct {
	Snapshot string
	Sections []sectionView
}

type sectionView struct {
	confSection
	Rule string
}

// RenderConfPy renders cfg as the engine's conf.py. The output depends only
// on cfg and opts.
func RenderConfPy(cfg *config.BuildConfig, opts RenderOptions) ([]byte, error) {
	var sections []confSection
	index := map[string]int{}

	for _, s := range cfg.Settings() {
		line, err := renderSetting(s, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, s.Key, err)
		}
		title, ok := sectionOf[s.Key]
		if !ok {
			title = extensionSection
		}
		i, ok := index[title]
		if !ok {
			i = len(sections)
			index[title] = i
			sections = append(sections, confSection{Title: title})
		}
		sections[i].Lines = append(sections[i].Lines, line)
	}

	data := confData{Snapshot: cfg.Snapshot()}
	for _, s := range sections {
		data.Sections = append(data.Sections, sectionView{confSection: s, Rule: rule(s.Title)})
	}

	var buf bytes.Buffer
	if err := confTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func renderSetting(s extension.Setting, opts RenderOptions) (string, error) {
	value := s.Value
	if dirs, ok := value.([]string); ok && rebased[s.Key] && opts.PathBase != "" {
		abs := make([]string, len(dirs))
		for i, d := range dirs {
			if filepath.IsAbs(d) {
				abs[i] = d
				continue
			}
			abs[i] = filepath.Join(opts.PathBase, d)
		}
		value = abs
	}

	// The extension list is written one entry per line to keep diffs readable.
	if list, ok := value.([]string); ok && s.Key == "extensions" && len(list) > 0 {
		var b bytes.Buffer
		b.WriteString(s.Key + " = [\n")
		for _, item := range list {
			b.WriteString("    " + pyString(item) + ",\n")
		}
		b.WriteString("]")
		return b.String(), nil
	}

	lit, err := pyLiteral(value)
	if err != nil {
		return "", err
	}
	return s.Key + " = " + lit, nil
}

// rule pads a section heading to a fixed width.
func rule(title string) string {
	const width = 78
	n := width - len("# -- ") - len(title) - 1
	if n < 3 {
		n = 3
	}
	return string(bytes.Repeat([]byte("-"), n))
}
