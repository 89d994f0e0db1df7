package choices

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	enumchoices "github.com/broady/enumprops/choices"
	"github.com/broady/enumprops/cmd/enumprops/internal/load"
)

type Cmd struct {
	File   string `arg:"" help:"Declaration file (YAML)." type:"existingfile"`
	Enum   string `help:"Enumeration to list (required if the file declares several)." short:"e"`
	Label  string `help:"Property to use as the label (default: member name)." short:"l"`
	Format string `help:"Output format." enum:"text,json" default:"text" short:"f"`

	Out io.Writer `kong:"-"`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	set, err := load.File(c.File, logger)
	if err != nil {
		return err
	}
	e, err := set.Select(c.Enum)
	if err != nil {
		return err
	}

	cs, err := enumchoices.Choices(e, c.Label)
	if err != nil {
		return err
	}

	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	if c.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cs)
	}
	for _, ch := range cs {
		fmt.Fprintf(out, "%v\t%s\n", ch.Value, ch.Label)
	}
	return nil
}
