package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docconf/internal/config"
	"git.home.luguber.info/inful/docconf/internal/engine"
	"git.home.luguber.info/inful/docconf/internal/metrics"
)

// BuildFlags are shared by 'build' and 'watch'.
type BuildFlags struct {
	Output     string `short:"o" help:"Output directory for the generated documentation" default:"docs/build/html"`
	Builder    string `short:"b" help:"Engine builder name" default:"html"`
	Jobs       int    `short:"j" help:"Parallel engine jobs (0 = engine default, --jobs=-1 = auto)" default:"0"`
	Strict     bool   `short:"W" help:"Turn engine warnings into errors"`
	Quiet      bool   `short:"q" help:"Only show engine warnings and errors"`
	SearchPath string `name:"search-path" help:"Module search path for the engine (default: two levels above the source directory)"`
	KeepConf   string `name:"keep-conf" help:"Keep the generated conf.py under this directory instead of a temporary one"`
	Engine     string `name:"engine" help:"Engine executable" default:"sphinx-build"`
}

// NewBuilder creates the engine builder these flags describe.
func (f *BuildFlags) NewBuilder(rec metrics.Recorder) *engine.Builder {
	opts := []engine.Option{engine.WithRecorder(rec)}
	if f.KeepConf != "" {
		opts = append(opts, engine.WithPersistentConf(f.KeepConf))
	}
	return engine.NewBuilder(&engine.BinaryRunner{Binary: f.Engine}, opts...)
}

// Request creates the build request for cfg.
func (f *BuildFlags) Request(cfg *config.BuildConfig, sourceDir string) engine.BuildRequest {
	return engine.BuildRequest{
		Config:           cfg,
		SourceDir:        sourceDir,
		OutputDir:        f.Output,
		SearchPath:       f.SearchPath,
		Builder:          f.Builder,
		Jobs:             f.Jobs,
		WarningsAsErrors: f.Strict,
		Quiet:            f.Quiet,
	}
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	BuildFlags
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Println("Starting documentation build")
	res, err := b.NewBuilder(metrics.NoopRecorder{}).Build(ctx, b.Request(cfg, root.Source))
	if err != nil {
		return err
	}
	if res.ConfPath != "" {
		fmt.Printf("Generated configuration kept at %s\n", res.ConfPath)
	}
	fmt.Printf("Build completed successfully in %s (build %s)\n", res.Duration.Round(time.Millisecond), res.BuildID)
	return nil
}
