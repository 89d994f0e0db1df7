package scancmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/enumprops"
	"github.com/broady/enumprops/decl"
	"github.com/broady/enumprops/internal/scan"
)

type Cmd struct {
	Package string `arg:"" optional:"" help:"Package to scan (default: current directory)." default:"."`
	Output  string `help:"Write declarations to this file instead of stdout." short:"o" type:"path"`
	Check   bool   `help:"Build each enumeration and report errors without writing output."`
	Dir     string `help:"Directory to resolve the package pattern from." type:"existingdir"`

	Out io.Writer `kong:"-"`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	result, err := scan.Package(context.Background(), c.Package, c.Dir)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	if len(result.Enums) == 0 {
		return fmt.Errorf("no //enumprops:enum types found in %s", result.PackagePath)
	}

	files := make([]*decl.File, len(result.Enums))
	reg := enumprops.NewRegistry()
	for i, e := range result.Enums {
		files[i] = e.Decl
		b, err := e.Decl.Builder()
		if err != nil {
			return fmt.Errorf("%s: %w", e.Pos, err)
		}
		if _, err := b.WithLogger(logger).WithRegistry(reg).Build(); err != nil {
			return fmt.Errorf("%s: %w", e.Pos, err)
		}
		logger.Debug("found enumeration",
			slog.String("type", e.TypeName),
			slog.Int("members", len(e.Decl.Members)),
			slog.String("pos", e.Pos.String()))
	}

	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	if c.Check {
		_, err := fmt.Fprintf(out, "✓ %d enumerations in %s\n", len(files), result.PackagePath)
		return err
	}

	if c.Output != "" {
		return decl.Save(c.Output, files...)
	}

	data, err := decl.Marshal(files...)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
