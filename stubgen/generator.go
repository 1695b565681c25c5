package stubgen

import (
	"context"

	"go.uber.org/zap"

	"github.com/broady/stubkit/stubgen/classify"
	"github.com/broady/stubkit/stubgen/model"
	"github.com/broady/stubkit/stubgen/sink"
)

// Generator provides a fluent API for resolution.
// Create with FromRequest and configure with method chaining.
//
// Example:
//
//	batch, err := stubgen.FromRequest(req).
//	    Strict().
//	    Workers(4).
//	    Resolve(ctx)
type Generator struct {
	req  *model.Request
	opts Options
}

// FromRequest creates a Generator for req.
func FromRequest(req *model.Request) *Generator {
	return &Generator{req: req}
}

// Strict forces strict mode on every stub.
func (g *Generator) Strict() *Generator {
	g.opts.Strict = true
	return g
}

// Workers bounds the number of stubs resolved concurrently.
func (g *Generator) Workers(n int) *Generator {
	g.opts.Workers = n
	return g
}

// Logger sets the logger.
func (g *Generator) Logger(l *zap.Logger) *Generator {
	g.opts.Logger = l
	return g
}

// CacheSize sets the classification cache size. Negative disables it.
func (g *Generator) CacheSize(n int) *Generator {
	g.opts.CacheSize = n
	return g
}

// Classifier replaces the type classifier.
func (g *Generator) Classifier(c classify.Classifier) *Generator {
	g.opts.Classifier = c
	return g
}

// Resolve resolves the request in memory.
func (g *Generator) Resolve(ctx context.Context) (*model.Batch, error) {
	opts := g.opts
	return Resolve(ctx, g.req, &opts)
}

// Write resolves the request and writes the encoded units to out.
func (g *Generator) Write(ctx context.Context, out sink.OutputSink) (*model.Batch, error) {
	batch, err := g.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := Write(ctx, batch, out); err != nil {
		return batch, err
	}
	return batch, nil
}

// ToDir resolves the request and writes the encoded units under dir.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(ctx context.Context, dir string) (*model.Batch, error) {
	return g.Write(ctx, sink.NewFilesystemSink(dir))
}
