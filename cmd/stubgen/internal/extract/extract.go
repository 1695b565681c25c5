package extract

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/broady/stubkit/cmd/stubgen/internal/config"
	"github.com/broady/stubkit/stubgen/model"
	"github.com/broady/stubkit/stubgen/provider"
)

type Cmd struct {
	Packages []string `arg:"" help:"Go packages to extract contracts from."`
	Type     []string `help:"Root type to extract (repeatable, default: every exported interface and function type)." short:"t"`
	Out      string   `help:"Manifest file to write (default: stdout)." short:"o" type:"path"`
}

func (c *Cmd) Run(g *config.Globals) error {
	_, log, err := g.Load()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var w io.Writer = os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return errors.Wrap(err, "create manifest")
		}
		defer f.Close()
		w = f
	}
	return Extract(context.Background(), provider.SourceInputOptions{
		Packages:  c.Packages,
		RootTypes: c.Type,
	}, w)
}

// Extract writes a YAML manifest holding the contracts extracted from
// opts and the stubs their directives request. Without directives every
// stubbable contract gets a default stub reference.
func Extract(ctx context.Context, opts provider.SourceInputOptions, w io.Writer) error {
	p := &provider.SourceProvider{}
	req, err := p.BuildRequest(ctx, opts)
	if err != nil {
		return err
	}

	m := provider.Manifest{Contracts: req.Contracts, Stubs: req.Stubs}
	if len(m.Stubs) == 0 {
		for _, c := range req.Contracts {
			if c.Kind == model.ContractBuiltin || c.IsTemplate {
				continue
			}
			m.Refs = append(m.Refs, c.ID)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&m); err != nil {
		return errors.Wrap(err, "encode manifest")
	}
	return errors.Wrap(enc.Close(), "encode manifest")
}
