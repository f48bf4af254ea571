package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/docconf/internal/logfields"
)

// Runner executes the documentation engine.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// BinaryRunner invokes the engine binary found on PATH.
type BinaryRunner struct {
	// Binary overrides DefaultBinary; may be a name or a path.
	Binary string
}

func (r *BinaryRunner) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

// Run executes the engine and waits for it to exit.
func (r *BinaryRunner) Run(ctx context.Context, inv Invocation) error {
	path, err := exec.LookPath(r.binary())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineNotFound, err)
	}

	// #nosec G204 -- path comes from exec.LookPath and arguments are built from configuration
	cmd := exec.CommandContext(ctx, path, inv.Args()...)
	cmd.Env = inv.Env(os.Environ())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("Invoking documentation engine",
		logfields.BuildID(inv.BuildID),
		logfields.Builder(inv.BuilderName()),
		logfields.SearchPath(inv.SearchPath),
		slog.String("args", strings.Join(inv.Args(), " ")))

	err = cmd.Run()

	outStr := stdout.String()
	errStr := stderr.String()
	if outStr != "" {
		slog.Debug("engine stdout", logfields.BuildID(inv.BuildID), slog.String("output", outStr))
	}
	if errStr != "" {
		slog.Warn("engine stderr", logfields.BuildID(inv.BuildID), slog.String("error_output", errStr))
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrEngineFailed, ctxErr)
		}
		// The engine reports problems on either stream.
		output := strings.TrimSpace(strings.Join(nonEmpty(outStr, errStr), "\n"))
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && output != "" {
			return fmt.Errorf("%w: exit status %d: %s", ErrEngineFailed, exitErr.ExitCode(), output)
		}
		return fmt.Errorf("%w: %w", ErrEngineFailed, err)
	}
	return nil
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
