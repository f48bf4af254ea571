// Package workspace manages the staging directory that holds the generated
// engine configuration for a build.
//
// Ephemeral mode creates timestamped directories (e.g., docconf-20261014-122336-*)
// that are removed after the build.
//
// Persistent mode uses a fixed directory path (e.g., ./.docconf/conf) that
// survives the build so the generated conf.py can be inspected.
package workspace
