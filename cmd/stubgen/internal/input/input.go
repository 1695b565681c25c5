// Package input assembles a generation request from the configured
// manifest, Go source packages and stub references.
package input

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/broady/stubkit/cmd/stubgen/internal/config"
	"github.com/broady/stubkit/stubgen/model"
	"github.com/broady/stubkit/stubgen/provider"
)

// Load builds the request described by cfg. Contracts from the manifest
// come first, then contracts extracted from source. Stubs come from the
// manifest, source directives and cfg.Stubs, in that order. When no stub
// is requested at all, each extracted root type gets a default stub.
func Load(ctx context.Context, cfg *config.Config, log *zap.Logger) (*model.Request, error) {
	req := &model.Request{}

	if cfg.Manifest != "" {
		m, err := provider.LoadManifest(cfg.Manifest)
		if err != nil {
			return nil, err
		}
		req.Contracts = append(req.Contracts, m.Contracts...)
		req.Stubs = append(req.Stubs, m.Stubs...)
		log.Debug("manifest loaded",
			zap.String("path", cfg.Manifest),
			zap.Int("contracts", len(m.Contracts)),
			zap.Int("stubs", len(m.Stubs)))
	}

	var extracted []model.ContractDescriptor
	if len(cfg.Source.Packages) > 0 {
		p := &provider.SourceProvider{}
		src, err := p.BuildRequest(ctx, provider.SourceInputOptions{
			Packages:  cfg.Source.Packages,
			RootTypes: cfg.Source.Types,
		})
		if err != nil {
			return nil, errors.Wrap(err, "extracting contracts")
		}
		extracted = src.Contracts
		req.Contracts = append(req.Contracts, src.Contracts...)
		req.Stubs = append(req.Stubs, src.Stubs...)
		log.Debug("contracts extracted",
			zap.Strings("packages", cfg.Source.Packages),
			zap.Int("contracts", len(src.Contracts)),
			zap.Int("directives", len(src.Stubs)))
	}

	for _, ref := range cfg.Stubs {
		stub, err := provider.ParseStubRef(ref)
		if err != nil {
			return nil, err
		}
		req.Stubs = append(req.Stubs, stub)
	}

	if len(req.Stubs) == 0 {
		for _, id := range defaultTargets(cfg, extracted) {
			req.Stubs = append(req.Stubs, model.StubRequest{
				Name:    provider.DefaultStubName(id),
				Targets: []model.ContractRef{{ID: id}},
			})
		}
	}

	if len(req.Contracts) == 0 && len(req.Stubs) == 0 {
		return nil, errors.WithHint(errors.New("nothing to resolve"),
			"pass a manifest, set source.packages or add stubs to "+config.FileName)
	}
	return req, nil
}

// defaultTargets returns the requested root types, or every extracted
// contract that can be stubbed when no roots were named.
func defaultTargets(cfg *config.Config, extracted []model.ContractDescriptor) []string {
	if len(cfg.Source.Types) > 0 {
		return cfg.Source.Types
	}
	var ids []string
	for _, c := range extracted {
		if c.Kind == model.ContractBuiltin || c.IsTemplate {
			continue
		}
		ids = append(ids, c.ID)
	}
	return ids
}

// Flags are the request-selection flags shared by resolve and check.
// Set flags override the configuration file.
type Flags struct {
	Manifest string   `arg:"" optional:"" help:"Request manifest (YAML or JSON)." type:"path"`
	Stub     []string `help:"Stub reference, e.g. IRepo?name=FakeRepo&strict=true (repeatable)." short:"s"`
	Package  []string `help:"Go package to extract contracts from (repeatable)." short:"p"`
	Type     []string `help:"Root type to extract (repeatable)." short:"t"`
	Strict   bool     `help:"Make every uninstrumented call raise a configuration error."`
	Workers  int      `help:"Stubs resolved concurrently (default: GOMAXPROCS)." short:"j"`
}

// Apply copies set flags onto cfg.
func (f *Flags) Apply(cfg *config.Config) {
	if f.Manifest != "" {
		cfg.Manifest = f.Manifest
	}
	if len(f.Stub) > 0 {
		cfg.Stubs = f.Stub
	}
	if len(f.Package) > 0 {
		cfg.Source.Packages = f.Package
	}
	if len(f.Type) > 0 {
		cfg.Source.Types = f.Type
	}
	if f.Strict {
		cfg.Strict = true
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
}
