package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docconf/cmd/docconf/commands"
	dcerrors "git.home.luguber.info/inful/docconf/internal/errors"
	"git.home.luguber.info/inful/docconf/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{Logger: slog.Default()}
	parser := kong.Parse(&cli,
		kong.Name("docconf"),
		kong.Description("Manage the documentation build configuration and drive the documentation engine."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	err := parser.Run(&cli)
	dcerrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
