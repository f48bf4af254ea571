package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"autodoc empty", &Autodoc{}, false},
		{"autodoc description", &Autodoc{Typehints: "description", ClassContent: "both"}, false},
		{"autodoc bad typehints", &Autodoc{Typehints: "inline"}, true},
		{"autodoc bad class content", &Autodoc{ClassContent: "module"}, true},
		{"autodoc bad member order", &Autodoc{MemberOrder: "random"}, true},
		{"mathjax relative path", &MathJax{Path: "_static/mathjax/tex-chtml.js"}, false},
		{"mathjax https", &MathJax{Path: "https://cdn.example.org/mathjax.js"}, false},
		{"mathjax ftp", &MathJax{Path: "ftp://cdn.example.org/mathjax.js"}, true},
		{"mathjax absolute", &MathJax{Path: "/usr/share/mathjax.js"}, true},
		{"graphviz svg", &Graphviz{OutputFormat: "svg"}, false},
		{"graphviz pdf", &Graphviz{OutputFormat: "pdf"}, true},
		{"mermaid raw", &Mermaid{OutputFormat: "raw", Version: "10.2.0"}, false},
		{"mermaid gif", &Mermaid{OutputFormat: "gif"}, true},
		{"drawio pdf", &Drawio{OutputFormat: "pdf", Headless: boolPtr(true)}, false},
		{"drawio bmp", &Drawio{OutputFormat: "bmp"}, true},
		{"mystnb timeout", &MystNB{ExecutionTimeout: intPtr(60)}, false},
		{"mystnb unlimited", &MystNB{ExecutionTimeout: intPtr(-1)}, false},
		{"mystnb negative", &MystNB{ExecutionTimeout: intPtr(-5)}, true},
		{"mystnb bad mode", &MystNB{ExecutionMode: "always"}, true},
		{"bibtex ok", &Bibtex{BibFiles: []string{"refs.bib"}}, false},
		{"bibtex no files", &Bibtex{}, true},
		{"bibtex blank file", &Bibtex{BibFiles: []string{" "}}, true},
		{"bibtex bad style", &Bibtex{BibFiles: []string{"refs.bib"}, DefaultStyle: "apa"}, true},
		{"bibtex bad ref style", &Bibtex{BibFiles: []string{"refs.bib"}, ReferenceStyle: "numeric"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var oe *OptionError
				require.ErrorAs(t, err, &oe)
				assert.Equal(t, tt.opts.Extension(), oe.Extension)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSettingsSkipUnsetValues(t *testing.T) {
	require.Empty(t, (&Autodoc{}).Settings())
	require.Empty(t, (&MystNB{}).Settings())

	got := (&MystNB{ExecutionTimeout: intPtr(0)}).Settings()
	require.Equal(t, []Setting{{Key: "nb_execution_timeout", Value: 0}}, got)
}

func TestSettingsUseEngineNames(t *testing.T) {
	a := &Autodoc{Typehints: "description", ClassContent: "both"}
	require.Equal(t, []Setting{
		{Key: "autodoc_typehints", Value: "description"},
		{Key: "autoclass_content", Value: "both"},
	}, a.Settings())

	d := &Drawio{BinaryPath: "/opt/drawio", Headless: boolPtr(false)}
	require.Equal(t, []Setting{
		{Key: "drawio_binary_path", Value: "/opt/drawio"},
		{Key: "drawio_headless", Value: false},
	}, d.Settings())

	b := &Bibtex{BibFiles: []string{"refs.bib", "extra.bib"}, ReferenceStyle: "author_year"}
	require.Equal(t, []Setting{
		{Key: "bibtex_bibfiles", Value: []string{"refs.bib", "extra.bib"}},
		{Key: "bibtex_reference_style", Value: "author_year"},
	}, b.Settings())
}

func TestSettingsDoNotAliasInput(t *testing.T) {
	b := &Bibtex{BibFiles: []string{"refs.bib"}}
	s := b.Settings()
	s[0].Value.([]string)[0] = "changed.bib"
	assert.Equal(t, "refs.bib", b.BibFiles[0])
}

func TestOptionErrorMessage(t *testing.T) {
	err := (&Graphviz{OutputFormat: "pdf"}).Validate()
	require.EqualError(t, err, "sphinx.ext.graphviz: invalid output_format pdf (allowed: png, svg)")
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(NameMystNB))
	assert.True(t, Known("sphinx.ext.autodoc"))
	assert.False(t, Known("nbsphinx"))
}
