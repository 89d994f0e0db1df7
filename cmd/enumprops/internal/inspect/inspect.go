package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/broady/enumprops"
	"github.com/broady/enumprops/cmd/enumprops/internal/load"
)

type Cmd struct {
	File   string `arg:"" help:"Declaration file (YAML)." type:"existingfile"`
	Enum   string `help:"Enumeration to inspect (default: all)." short:"e"`
	Format string `help:"Output format." enum:"json,yaml" default:"json" short:"f"`

	Out io.Writer `kong:"-"`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	set, err := load.File(c.File, logger)
	if err != nil {
		return err
	}

	enums := set.Enums
	if c.Enum != "" {
		e, err := set.Select(c.Enum)
		if err != nil {
			return err
		}
		enums = []*enumprops.Enum{e}
	}

	descs := make([]*enumprops.Descriptor, len(enums))
	for i, e := range enums {
		descs[i] = e.Describe()
	}

	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	switch c.Format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		for _, d := range descs {
			if err := enc.Encode(d); err != nil {
				return fmt.Errorf("encode %s: %w", d.Name, err)
			}
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		for _, d := range descs {
			if err := enc.Encode(d); err != nil {
				return fmt.Errorf("encode %s: %w", d.Name, err)
			}
		}
		return nil
	}
}
