package engine

import "errors"

var (
	// ErrEngineNotFound indicates the engine executable was not detected on PATH.
	ErrEngineNotFound = errors.New("documentation engine not found")
	// ErrEngineFailed indicates the engine returned a non-zero exit status.
	ErrEngineFailed = errors.New("documentation engine failed")
	// ErrRenderFailed indicates the engine configuration could not be rendered.
	ErrRenderFailed = errors.New("engine configuration render failed")
)
