// Package watch triggers rebuilds when the configuration file or the
// documentation sources change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docconf/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Event tells the callback what changed since the last rebuild.
type Event struct {
	// ConfigChanged is true when the configuration file was written.
	ConfigChanged bool
	Paths         []string
}

// Callback runs a rebuild. Errors are logged and watching continues.
type Callback func(ctx context.Context, ev Event) error

// Watcher monitors a configuration file and source directories.
type Watcher struct {
	configPath string
	roots      []string
	ignore     []string
	debounce   time.Duration
	onChange   Callback

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	pending map[string]struct{}
	cfgHit  bool
	trigger chan struct{}
}

// Options configures a Watcher.
type Options struct {
	// ConfigPath is watched through its parent directory; empty disables it.
	ConfigPath string
	// Roots are watched recursively.
	Roots []string
	// Ignore lists directories (absolute or relative to a root) that never
	// trigger rebuilds, such as the build output.
	Ignore   []string
	Debounce time.Duration
}

// New creates a Watcher. Call Run to start it.
func New(opts Options, onChange Callback) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	cw := &Watcher{
		debounce: opts.Debounce,
		onChange: onChange,
		watcher:  w,
		pending:  make(map[string]struct{}),
		trigger:  make(chan struct{}, 1),
	}
	if cw.debounce <= 0 {
		cw.debounce = DefaultDebounce
	}
	if opts.ConfigPath != "" {
		if cw.configPath, err = filepath.Abs(opts.ConfigPath); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}
	for _, r := range opts.Roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to resolve watch root %s: %w", r, err)
		}
		cw.roots = append(cw.roots, abs)
	}
	for _, ig := range opts.Ignore {
		abs, err := filepath.Abs(ig)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("failed to resolve ignored path %s: %w", ig, err)
		}
		cw.ignore = append(cw.ignore, abs)
	}
	return cw, nil
}

// Run watches until ctx is canceled. It closes the underlying watcher on return.
func (cw *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := cw.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	if cw.configPath != "" {
		// Watching the directory survives editors that replace the file on save.
		if err := cw.watcher.Add(filepath.Dir(cw.configPath)); err != nil {
			return fmt.Errorf("failed to watch config directory: %w", err)
		}
	}
	for _, root := range cw.roots {
		if err := cw.addTree(root); err != nil {
			return err
		}
	}

	slog.Info("Watching for changes",
		logfields.File(cw.configPath),
		slog.Any("roots", cw.roots),
		slog.Duration("debounce", cw.debounce))

	// Run returns only after the rebuild loop has stopped, so no callback
	// outlives it.
	loopCtx, stop := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		cw.rebuildLoop(loopCtx)
	}()
	defer func() {
		stop()
		<-loopDone
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return nil
			}
			cw.handle(event)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// addTree adds root and every non-ignored directory below it.
func (cw *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if cw.ignored(path) || (path != root && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := cw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (cw *Watcher) ignored(path string) bool {
	for _, ig := range cw.ignore {
		if path == ig || strings.HasPrefix(path, ig+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (cw *Watcher) underRoot(path string) bool {
	for _, root := range cw.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (cw *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	path := filepath.Clean(event.Name)

	isConfig := cw.configPath != "" && path == cw.configPath
	if !isConfig {
		if !cw.underRoot(path) || cw.ignored(path) || strings.HasPrefix(filepath.Base(path), ".") {
			return
		}
		// New directories need their own watch.
		if event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				if err := cw.addTree(path); err != nil {
					slog.Warn("Failed to watch new directory", logfields.Path(path), logfields.Error(err))
				}
			}
		}
	}

	slog.Debug("Change detected", logfields.Path(path), slog.String("op", event.Op.String()))

	cw.mu.Lock()
	cw.pending[path] = struct{}{}
	cw.cfgHit = cw.cfgHit || isConfig
	cw.mu.Unlock()

	select {
	case cw.trigger <- struct{}{}:
	default:
		// Rebuild already pending
	}
}

// rebuildLoop runs the callback once per quiet period after changes.
func (cw *Watcher) rebuildLoop(ctx context.Context) {
	timer := time.NewTimer(cw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.trigger:
			timer.Reset(cw.debounce)
		case <-timer.C:
			ev := cw.drain()
			if len(ev.Paths) == 0 {
				continue
			}
			if err := cw.onChange(ctx, ev); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func (cw *Watcher) drain() Event {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	ev := Event{ConfigChanged: cw.cfgHit}
	for p := range cw.pending {
		ev.Paths = append(ev.Paths, p)
	}
	cw.pending = make(map[string]struct{})
	cw.cfgHit = false
	slices.Sort(ev.Paths)
	return ev
}
