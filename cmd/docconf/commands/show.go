package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/docconf/internal/config"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Format string `short:"f" help:"Output format" enum:"yaml,json" default:"yaml"`
}

func (s *ShowCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return err
	}
	return WriteConfig(os.Stdout, cfg, s.Format)
}

// WriteConfig prints cfg in the requested format.
func WriteConfig(w io.Writer, cfg *config.BuildConfig, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "yaml", "":
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
