package commands

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docconf/internal/config"
)

// DefaultConfigPath is used when --config is not given. When it does not
// exist the built-in configuration is used instead.
const DefaultConfigPath = "docconf.yaml"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docconf.yaml"`
	Source  string           `short:"s" help:"Documentation source directory (where conf.py belongs)" default:"docs/source"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Show     ShowCmd     `cmd:"" help:"Print the normalized build configuration"`
	Validate ValidateCmd `cmd:"" help:"Validate the build configuration"`
	Render   RenderCmd   `cmd:"" help:"Render the engine configuration file (conf.py)"`
	Build    BuildCmd    `cmd:"" help:"Build the documentation with the documentation engine"`
	Watch    WatchCmd    `cmd:"" help:"Build, then rebuild whenever sources or configuration change"`
	Init     InitCmd     `cmd:"" help:"Write the built-in configuration to a file"`
	Engine   EngineCmd   `cmd:"" help:"Report the documentation engine version"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	g.Logger = logger
	return nil
}

// parseLogLevel honors --verbose first, then DOCCONF_LOG_LEVEL.
func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DOCCONF_LOG_LEVEL"))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig loads the configuration named by --config. A missing default
// file falls back to the built-in configuration; a missing explicit file
// is an error.
func LoadConfig(configPath string) (*config.BuildConfig, error) {
	if configPath == DefaultConfigPath {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No configuration file found, using built-in configuration")
			cfg := config.Default()
			return cfg, cfg.Validate()
		}
	}
	return config.Load(configPath)
}
