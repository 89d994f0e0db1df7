package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/enumprops/cmd/enumprops/internal/choices"
	"github.com/broady/enumprops/cmd/enumprops/internal/inspect"
	"github.com/broady/enumprops/cmd/enumprops/internal/resolve"
	"github.com/broady/enumprops/cmd/enumprops/internal/scancmd"
)

type CLI struct {
	Verbose bool `help:"Log construction details to stderr." short:"v"`

	Version VersionCmd  `cmd:"" help:"Print version information."`
	Inspect inspect.Cmd `cmd:"" help:"Describe the enumerations in a declaration file."`
	Resolve resolve.Cmd `cmd:"" help:"Resolve values against an enumeration."`
	Choices choices.Cmd `cmd:"" help:"List an enumeration's choices."`
	Scan    scancmd.Cmd `cmd:"" help:"Emit declarations for //enumprops:enum types in a Go package."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("enumprops"),
		kong.Description("Inspect, resolve and generate enumerations with properties."),
		kong.UsageOnError(),
	)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
