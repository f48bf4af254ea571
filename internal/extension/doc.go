// Package extension models the documentation engine's optional capabilities
// with one explicit options type per extension.
//
// Each Options implementation enumerates the settings it recognizes and
// validates them when it is registered. Settings are emitted in a fixed
// order using the engine's own configuration names (for example
// autodoc_typehints or nb_execution_timeout), and only settings that carry
// a value are emitted, leaving engine defaults in force for the rest.
package extension
