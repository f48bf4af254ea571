package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/docconf/internal/engine"
	"git.home.luguber.info/inful/docconf/internal/version"
)

// EngineCmd implements the 'engine' command.
type EngineCmd struct {
	Engine string `name:"engine" help:"Engine executable" default:"sphinx-build"`
}

func (e *EngineCmd) Run(_ *Global, _ *CLI) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Printf("docconf %s\n", version.String())
	if v := engine.DetectVersion(ctx, e.Engine); v != "" {
		fmt.Printf("%s %s\n", e.Engine, v)
		return nil
	}
	fmt.Printf("%s not found\n", e.Engine)
	return nil
}
