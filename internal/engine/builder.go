package engine

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docconf/internal/config"
	dcerrors "git.home.luguber.info/inful/docconf/internal/errors"
	"git.home.luguber.info/inful/docconf/internal/logfields"
	"git.home.luguber.info/inful/docconf/internal/metrics"
	"git.home.luguber.info/inful/docconf/internal/workspace"
)

// Build stage names used for logging and metrics.
const (
	StageResolve = "resolve"
	StageRender  = "render"
	StageEngine  = "engine"
)

// BuildRequest describes a single documentation build.
type BuildRequest struct {
	Config    *config.BuildConfig
	SourceDir string
	OutputDir string
	// SearchPath overrides the path derived from SourceDir.
	SearchPath       string
	Builder          string
	Jobs             int
	WarningsAsErrors bool
	Quiet            bool
}

// BuildResult reports what a successful build used.
type BuildResult struct {
	BuildID string
	// ConfPath is set only when the staged conf.py is kept.
	ConfPath   string
	SearchPath string
	Snapshot   string
	Duration   time.Duration
}

// Builder stages the engine configuration and runs the engine.
type Builder struct {
	runner   Runner
	recorder metrics.Recorder
	newWS    func() *workspace.Manager
	newID    func() string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithWorkspaceBase places ephemeral staging directories under dir.
func WithWorkspaceBase(dir string) Option {
	return func(b *Builder) {
		b.newWS = func() *workspace.Manager { return workspace.NewManager(dir) }
	}
}

// WithPersistentConf stages conf.py in a fixed directory that is kept
// after the build.
func WithPersistentConf(dir string) Option {
	return func(b *Builder) {
		b.newWS = func() *workspace.Manager { return workspace.NewPersistentManager(dir, "conf") }
	}
}

// NewBuilder creates a Builder that runs the engine through runner.
func NewBuilder(runner Runner, opts ...Option) *Builder {
	b := &Builder{
		runner:   runner,
		recorder: metrics.NoopRecorder{},
		newWS:    func() *workspace.Manager { return workspace.NewManager("") },
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders the configuration, stages it and runs the engine.
func (b *Builder) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	start := time.Now()
	res := &BuildResult{BuildID: b.newID(), Snapshot: req.Config.Snapshot()}
	log := slog.With(logfields.BuildID(res.BuildID))

	err := b.build(ctx, log, req, res)
	res.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(res.Duration)

	outcome := resultOf(err)
	b.recorder.IncBuildOutcome(outcome)
	if err == nil {
		log.Info("Build completed",
			logfields.Outcome(string(outcome)),
			logfields.DurationMS(float64(res.Duration.Milliseconds())))
		return res, nil
	}
	log.Error("Build failed", logfields.Outcome(string(outcome)), logfields.Error(err))
	return nil, err
}

func resultOf(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCanceled
	default:
		return metrics.ResultFailed
	}
}

func (b *Builder) build(ctx context.Context, log *slog.Logger, req BuildRequest, res *BuildResult) error {
	if req.Config == nil {
		return dcerrors.InternalError("build requested without a configuration", nil)
	}
	sourceDir, err := filepath.Abs(req.SourceDir)
	if err != nil {
		return dcerrors.SearchPathError(req.SourceDir, err)
	}
	outputDir, err := filepath.Abs(req.OutputDir)
	if err != nil {
		return dcerrors.WorkspaceError("resolve output directory", err)
	}

	err = b.stage(StageResolve, func() error {
		path, err := resolveSearchPath(req.SearchPath, sourceDir)
		res.SearchPath = path
		return err
	})
	if err != nil {
		return err
	}

	ws := b.newWS()
	if err := ws.Create(); err != nil {
		return dcerrors.WorkspaceError("create", err)
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			log.Warn("Failed to cleanup workspace", logfields.Error(err))
		}
	}()

	err = b.stage(StageRender, func() error {
		data, err := RenderConfPy(req.Config, RenderOptions{PathBase: sourceDir})
		if err != nil {
			return dcerrors.InternalError("render engine configuration", err)
		}
		res.ConfPath, err = ws.WriteFile(ConfFileName, data)
		if err != nil {
			return dcerrors.WorkspaceError("write "+ConfFileName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !ws.Persistent() {
		res.ConfPath = ""
	}

	inv := Invocation{
		BuildID:          res.BuildID,
		Builder:          req.Builder,
		SourceDir:        sourceDir,
		ConfDir:          ws.GetPath(),
		OutputDir:        outputDir,
		SearchPath:       res.SearchPath,
		Jobs:             req.Jobs,
		WarningsAsErrors: req.WarningsAsErrors,
		Quiet:            req.Quiet,
	}
	log.Info("Running documentation engine",
		logfields.Builder(inv.BuilderName()),
		logfields.Path(outputDir),
		logfields.SearchPath(res.SearchPath),
		logfields.Snapshot(res.Snapshot))

	return b.stage(StageEngine, func() error {
		if err := b.runner.Run(ctx, inv); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return dcerrors.EngineFailed(inv.BuilderName(), err)
		}
		return nil
	})
}

func resolveSearchPath(override, sourceDir string) (string, error) {
	if override == "" {
		return config.ResolveSearchPath(sourceDir)
	}
	abs, err := filepath.Abs(override)
	if err != nil {
		return "", dcerrors.SearchPathError(override, err)
	}
	return abs, nil
}

// stage times fn and records its result.
func (b *Builder) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	result := resultOf(err)
	b.recorder.ObserveStageDuration(name, elapsed)
	b.recorder.IncStageResult(name, result)
	slog.Debug("Stage finished",
		logfields.Stage(name),
		logfields.Outcome(string(result)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return err
}
