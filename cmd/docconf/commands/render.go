package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"git.home.luguber.info/inful/docconf/internal/engine"
	dcerrors "git.home.luguber.info/inful/docconf/internal/errors"
	"git.home.luguber.info/inful/docconf/internal/logfields"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Output string `short:"o" help:"Where to write conf.py ('-' for stdout, default: <source>/conf.py)"`
}

func (r *RenderCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return err
	}

	out := r.Output
	if out == "" {
		out = filepath.Join(root.Source, engine.ConfFileName)
	}

	// Relative directories stay relative when conf.py sits in the source tree.
	opts := engine.RenderOptions{}
	if out != "-" && filepath.Clean(filepath.Dir(out)) != filepath.Clean(root.Source) {
		abs, err := filepath.Abs(root.Source)
		if err != nil {
			return dcerrors.SearchPathError(root.Source, err)
		}
		opts.PathBase = abs
	}

	data, err := engine.RenderConfPy(cfg, opts)
	if err != nil {
		return dcerrors.InternalError("render engine configuration", err)
	}

	if out == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := writeAtomic(out, data); err != nil {
		return dcerrors.Wrap(err, dcerrors.CategoryFileSystem, dcerrors.SeverityFatal, "failed to write conf.py").
			WithContext("path", out)
	}
	slog.Info("Engine configuration written", logfields.Path(out), logfields.Snapshot(cfg.Snapshot()))
	fmt.Printf("Wrote %s\n", out)
	return nil
}

// writeAtomic replaces path so the engine never reads a half-written conf.py.
func writeAtomic(path string, data []byte) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			slog.Debug("Cleanup pending file", logfields.Error(err))
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}
	return pendingFile.CloseAtomicallyReplace()
}
