package check

import (
	"context"
	"os"

	"github.com/broady/stubkit/cmd/stubgen/internal/config"
	"github.com/broady/stubkit/cmd/stubgen/internal/input"
	"github.com/broady/stubkit/cmd/stubgen/internal/report"
	"github.com/broady/stubkit/stubgen"
)

type Cmd struct {
	input.Flags `embed:""`
}

func (c *Cmd) Run(g *config.Globals) error {
	cfg, log, err := g.Load()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	c.Flags.Apply(cfg)

	ctx := context.Background()
	req, err := input.Load(ctx, cfg, log)
	if err != nil {
		return err
	}

	gen := stubgen.FromRequest(req).
		Workers(cfg.Workers).
		CacheSize(cfg.CacheSize).
		Logger(log)
	if cfg.Strict {
		gen = gen.Strict()
	}

	// Resolve without writing anything
	batch, err := gen.Resolve(ctx)
	if err != nil {
		return err
	}

	report.Diagnostics(os.Stderr, batch.Diagnostics)
	return report.Summary(os.Stdout, req, batch)
}
