package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocConfError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *DocConfError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration could not be parsed").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DocConfError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Filesystem errors

func SearchPathError(dir string, cause error) *DocConfError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "module search path could not be resolved").
		WithContext("dir", dir)
}

func WorkspaceError(operation string, cause error) *DocConfError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "workspace operation failed").
		WithContext("operation", operation)
}

// Engine errors

func EngineFailed(builder string, cause error) *DocConfError {
	return Wrap(cause, CategoryEngine, SeverityError, builder+" build failed").
		WithContext("builder", builder)
}

// Internal errors

func InternalError(message string, cause error) *DocConfError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
