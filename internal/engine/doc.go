// Package engine drives the external documentation engine (sphinx-build).
//
// It renders a BuildConfig into the engine's conf.py, stages it in a
// workspace and runs the engine with an explicit module search path. The
// search path reaches the engine only through the child process
// environment; the docconf process environment is never modified.
package engine
