package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/stubkit/cmd/stubgen/internal/check"
	"github.com/broady/stubkit/cmd/stubgen/internal/config"
	"github.com/broady/stubkit/cmd/stubgen/internal/extract"
	"github.com/broady/stubkit/cmd/stubgen/internal/resolve"
)

type CLI struct {
	config.Globals

	Version VersionCmd  `cmd:"" help:"Print version information."`
	Resolve resolve.Cmd `cmd:"" help:"Resolve stubs and write generation units."`
	Check   check.Cmd   `cmd:"" help:"Resolve stubs and report diagnostics without writing files."`
	Extract extract.Cmd `cmd:"" help:"Extract contracts from Go packages into a manifest."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("stubgen"),
		kong.Description("Resolve contract descriptions into instrumented stub models."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
