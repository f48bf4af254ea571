package errors

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if dce, ok := As(err); ok {
		return a.exitCodeFromDocConf(dce)
	}

	return 1
}

// exitCodeFromDocConf maps DocConfError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromDocConf(err *DocConfError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryEngine:
		return 8 // External system error
	case CategoryFileSystem:
		return 11 // Build environment error
	case CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if dce, ok := As(err); ok {
		return a.formatDocConf(dce)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatDocConf formats a DocConfError for display.
func (a *CLIErrorAdapter) formatDocConf(err *DocConfError) string {
	if a.verbose {
		return err.Error()
	}

	msg := err.Message
	if reason, ok := err.Context["reason"]; ok {
		msg = fmt.Sprintf("%s: %v: %v", msg, err.Context["field"], reason)
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return msg
	default:
		return fmt.Sprintf("%s: %s", err.Category, msg)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if dce, ok := As(err); ok {
		return dce.Category == CategoryInternal ||
			dce.Category == CategoryRuntime ||
			dce.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if dce, ok := As(err); ok {
		level := slogLevelFromSeverity(dce.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(dce.Category)),
		}
		for k, v := range dce.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if dce.Cause != nil {
			attrs = append(attrs, slog.String("cause", dce.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), level, dce.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts DocConfError severity to slog level.
func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
