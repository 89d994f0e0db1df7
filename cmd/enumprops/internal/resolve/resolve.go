package resolve

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/broady/enumprops/cmd/enumprops/internal/load"
)

type Cmd struct {
	File   string   `arg:"" help:"Declaration file (YAML)." type:"existingfile"`
	Values []string `arg:"" help:"Values to resolve."`
	Enum   string   `help:"Enumeration to resolve against (required if the file declares several)." short:"e"`
	Typed  bool     `help:"Parse each value as a YAML scalar (so 5 is an integer) instead of a string." short:"t"`

	Out io.Writer `kong:"-"`
}

// ErrUnresolved is returned when at least one value did not resolve.
var ErrUnresolved = errors.New("some values did not resolve")

func (c *Cmd) Run(logger *slog.Logger) error {
	set, err := load.File(c.File, logger)
	if err != nil {
		return err
	}
	e, err := set.Select(c.Enum)
	if err != nil {
		return err
	}

	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	failed := false
	for _, raw := range c.Values {
		var v any = raw
		if c.Typed {
			if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
				return fmt.Errorf("parse %q: %w", raw, err)
			}
		}

		m, err := e.Resolve(v)
		if err != nil {
			failed = true
			fmt.Fprintf(out, "%s\t-\t%v\n", raw, err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%#v\n", raw, m, m.Value())
	}
	if failed {
		return ErrUnresolved
	}
	return nil
}
