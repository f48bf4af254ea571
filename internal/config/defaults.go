package config

import "git.home.luguber.info/inful/docconf/internal/extension"

// Default returns the built-in configuration of the crsq documentation.
// Every call returns an independent copy.
func Default() *BuildConfig {
	numfig := true
	timeout := 60
	return &BuildConfig{
		Project:   "crsq",
		Copyright: "2023, Hideo Takahashi",
		Author:    "Hideo Takahashi",
		Release:   "0.1",
		Extensions: []string{
			extension.NameAutodoc,
			extension.NameMathJax,
			extension.NameGraphviz,
			extension.NameMermaid,
			extension.NameDrawio,
			extension.NameMystNB,
			extension.NameBibtex,
		},
		TemplatesPath:   []string{"_templates"},
		ExcludePatterns: []string{},
		Theme:           "sphinx_book_theme",
		StaticPath:      []string{"_static"},
		NumberFigures:   &numfig,
		Options: ExtensionOptions{
			Autodoc: &extension.Autodoc{
				Typehints:    "description",
				ClassContent: "both",
			},
			MystNB: &extension.MystNB{
				ExecutionTimeout: &timeout,
			},
			Bibtex: &extension.Bibtex{
				BibFiles: []string{"refs.bib"},
			},
		},
	}
}
