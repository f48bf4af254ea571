package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dcerrors "git.home.luguber.info/inful/docconf/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docconf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParsePreservesExtensionOrder(t *testing.T) {
	cfg, err := Parse([]byte(`
extensions:
  - c.ext
  - a.ext
  - b.ext
`))
	require.NoError(t, err)
	require.Equal(t, []string{"c.ext", "a.ext", "b.ext"}, cfg.Extensions)
}

func TestParseUnsetCollectionsAreEmpty(t *testing.T) {
	cfg, err := Parse([]byte("project: demo\n"))
	require.NoError(t, err)

	assert.NotNil(t, cfg.ExcludePatterns)
	assert.Empty(t, cfg.ExcludePatterns)
	assert.NotNil(t, cfg.StaticPath)
	assert.Empty(t, cfg.StaticPath)
	assert.NotNil(t, cfg.TemplatesPath)
	assert.NotNil(t, cfg.Extensions)
	assert.Nil(t, cfg.NumberFigures)
	assert.Empty(t, cfg.Theme)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Project)
	assert.NotNil(t, cfg.ExcludePatterns)
}

func TestParseKeepsLiteralValues(t *testing.T) {
	cfg, err := Parse([]byte(`
project: crsq
release: "0.1"
html_theme: sphinx_book_theme
numfig: true
`))
	require.NoError(t, err)
	assert.Equal(t, "crsq", cfg.Project)
	assert.Equal(t, "0.1", cfg.Release)
	assert.Equal(t, "sphinx_book_theme", cfg.Theme)
	require.NotNil(t, cfg.NumberFigures)
	assert.True(t, *cfg.NumberFigures)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("projekt: typo\n"))
	require.Error(t, err)

	_, err = Parse([]byte("options:\n  autodoc:\n    typehint: description\n"))
	require.Error(t, err)
}

func TestParseExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCCONF_TEST_RELEASE", "2.3rc1")
	cfg, err := Parse([]byte("release: ${DOCCONF_TEST_RELEASE}\n"))
	require.NoError(t, err)
	assert.Equal(t, "2.3rc1", cfg.Release)
}

func TestParseExtensionOptions(t *testing.T) {
	cfg, err := Parse([]byte(`
extensions: [sphinx.ext.autodoc, myst_nb, sphinxcontrib.bibtex]
options:
  autodoc:
    typehints: description
    class_content: both
  myst_nb:
    execution_timeout: 60
  bibtex:
    bibfiles: [refs.bib]
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.NotNil(t, cfg.Options.MystNB.ExecutionTimeout)
	assert.Equal(t, 60, *cfg.Options.MystNB.ExecutionTimeout)
	assert.Equal(t, "description", cfg.Options.Autodoc.Typehints)
	assert.Equal(t, []string{"refs.bib"}, cfg.Options.Bibtex.BibFiles)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, dcerrors.IsCategory(err, dcerrors.CategoryConfig))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "extensions: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, dcerrors.IsCategory(err, dcerrors.CategoryConfig))
}

func TestLoadRunsValidation(t *testing.T) {
	path := writeConfig(t, `
extensions: [sphinxcontrib.bibtex]
options:
  bibtex:
    bibfiles: []
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, dcerrors.IsCategory(err, dcerrors.CategoryValidation))
}

func TestLoadTwiceIsIdentical(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	path := writeConfig(t, string(data))

	a, err := Load(path)
	require.NoError(t, err)
	b, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestMarshalRoundTripMatchesDefault(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docconf.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Snapshot(), cfg.Snapshot())

	err = Init(path, false)
	require.ErrorContains(t, err, "already exists")
	require.NoError(t, Init(path, true))
}

func TestRegistry(t *testing.T) {
	cfg := Default()
	reg, err := cfg.Registry()
	require.NoError(t, err)

	opts, ok := reg.Lookup("myst_nb")
	require.True(t, ok)
	assert.Equal(t, "myst_nb", opts.Extension())
	_, ok = reg.Lookup("sphinx.ext.graphviz")
	assert.False(t, ok)
}

func TestRegistryKeepsValidOptionSets(t *testing.T) {
	cfg, err := Parse([]byte(`
extensions: [sphinx.ext.autodoc, sphinx.ext.graphviz]
options:
  autodoc:
    typehints: none
  graphviz:
    output_format: pdf
`))
	require.NoError(t, err)

	reg, err := cfg.Registry()
	require.Error(t, err)
	assert.True(t, dcerrors.IsCategory(err, dcerrors.CategoryValidation))
	assert.Contains(t, err.Error(), "options.graphviz")

	_, ok := reg.Lookup("sphinx.ext.autodoc")
	assert.True(t, ok)
	_, ok = reg.Lookup("sphinx.ext.graphviz")
	assert.False(t, ok)

	var keys []string
	for _, s := range cfg.Settings() {
		keys = append(keys, s.Key)
	}
	assert.Contains(t, keys, "autodoc_typehints")
	assert.NotContains(t, keys, "graphviz_output_format")
}

func TestClone(t *testing.T) {
	a := Default()
	b := a.Clone()
	require.Equal(t, a, b)

	*b.Options.MystNB.ExecutionTimeout = 5
	b.StaticPath[0] = "other"
	assert.Equal(t, 60, *a.Options.MystNB.ExecutionTimeout)
	assert.Equal(t, "_static", a.StaticPath[0])

	var nilCfg *BuildConfig
	assert.Nil(t, nilCfg.Clone())
}

func TestParseRejectsAdditionalDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key in second document", "project: a\n---\nbogus: 1\n"},
		{"valid second document", "project: a\n---\nproject: b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.ErrorContains(t, err, "only one document")
		})
	}

	cfg, err := Parse([]byte("---\nproject: a\n"))
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.Project)

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, cfg.Extensions)
}

func TestLoadExpandsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env", []byte("DOCCONF_TEST_RELEASE=9.9\nDOCCONF_TEST_PROJECT=fromfile\n"), 0o600))
	t.Setenv("DOCCONF_TEST_PROJECT", "fromenv")
	t.Cleanup(func() { _ = os.Unsetenv("DOCCONF_TEST_RELEASE") })

	path := filepath.Join(dir, "docconf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: ${DOCCONF_TEST_PROJECT}\nrelease: ${DOCCONF_TEST_RELEASE}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9.9", cfg.Release)
	assert.Equal(t, "fromenv", cfg.Project)
	assert.Equal(t, "fromenv", os.Getenv("DOCCONF_TEST_PROJECT"))
}

func TestLoadFallsBackToDotEnvLocal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".env.local", []byte("DOCCONF_TEST_AUTHOR=local\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("DOCCONF_TEST_AUTHOR") })

	path := filepath.Join(dir, "docconf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("author: ${DOCCONF_TEST_AUTHOR}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Author)
}
