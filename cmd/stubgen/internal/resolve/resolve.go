package resolve

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/stubkit/cmd/stubgen/internal/config"
	"github.com/broady/stubkit/cmd/stubgen/internal/input"
	"github.com/broady/stubkit/cmd/stubgen/internal/report"
	"github.com/broady/stubkit/stubgen"
)

type Cmd struct {
	input.Flags `embed:""`

	Out string `help:"Output directory for generation units (default: stubs)." short:"o"`
}

func (c *Cmd) Run(g *config.Globals) error {
	cfg, log, err := g.Load()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	c.Flags.Apply(cfg)
	if c.Out != "" {
		cfg.Out = c.Out
	}

	// Resolve output directory to absolute path
	outDir, err := filepath.Abs(cfg.Out)
	if err != nil {
		return errors.Wrap(err, "resolve output path")
	}

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

	batch, err := gen.ToDir(ctx, outDir)
	if err != nil {
		return err
	}
	log.Info("units written", zap.String("dir", outDir), zap.Int("units", len(batch.Units)))

	report.Diagnostics(os.Stderr, batch.Diagnostics)
	return report.Summary(os.Stdout, req, batch)
}
