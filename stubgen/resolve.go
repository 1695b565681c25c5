// Package stubgen resolves structural contract descriptions into
// generation units: the deterministic, collision-free model a renderer
// turns into instrumented stub source.
//
// Resolution is pure. Identical requests produce identical batches however
// many workers run them.
package stubgen

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/broady/stubkit/stubgen/model"
	"github.com/broady/stubkit/stubgen/naming"
)

type stubResult struct {
	unit  *model.Unit
	diags []model.Diagnostic
}

// Resolve resolves every stub of req. Stubs are resolved concurrently on up
// to opts.Workers goroutines and reassembled in request order. Invalid
// stubs produce diagnostics and no unit; they never abort the batch.
//
// The only errors are a nil request, a failure to set up options and
// context cancellation.
func Resolve(ctx context.Context, req *model.Request, opts *Options) (*model.Batch, error) {
	if req == nil {
		return nil, errors.WithHint(errors.Wrap(ErrInvalidRequest, "nil request"),
			"load a manifest or extract contracts before resolving")
	}
	o, err := applyOptionDefaults(opts)
	if err != nil {
		return nil, err
	}
	log := o.Logger

	a := &assembler{
		index:      req.ContractIndex(),
		strict:     o.Strict,
		classifier: o.Classifier,
	}

	results := make([]stubResult, len(req.Stubs))
	duplicates := duplicateStubs(req.Stubs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i, stub := range req.Stubs {
		if first, ok := duplicates[i]; ok {
			results[i] = stubResult{diags: []model.Diagnostic{errorf(stub, model.CodeInvalidStub, firstTarget(stub),
				"stub %q has the same output identifier as stub %q", stub.Name, first)}}
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			unit, diags := a.resolveStub(stub)
			results[i] = stubResult{unit: unit, diags: diags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "resolving stubs")
	}

	batch := &model.Batch{}
	for i, r := range results {
		stub := req.Stubs[i].Name
		for _, d := range r.diags {
			fields := []zap.Field{
				zap.String("stub", stub),
				zap.String("code", d.Code),
				zap.String("contract", d.Contract),
			}
			if d.IsError() {
				log.Warn(d.Message, fields...)
			} else {
				log.Info(d.Message, fields...)
			}
		}
		batch.Diagnostics = append(batch.Diagnostics, r.diags...)
		if r.unit == nil {
			log.Debug("stub skipped", zap.String("stub", stub))
			continue
		}
		log.Debug("stub resolved",
			zap.String("stub", stub),
			zap.Int("properties", len(r.unit.Properties)),
			zap.Int("indexers", len(r.unit.Indexers)),
			zap.Int("methods", len(r.unit.Methods)),
			zap.Int("genericHandlers", len(r.unit.GenericHandlers)),
			zap.Int("events", len(r.unit.EventHandlers)),
			zap.Int("delegations", len(r.unit.Delegations)),
		)
		batch.Units = append(batch.Units, *r.unit)
	}
	return batch, nil
}

// duplicateStubs maps the index of every stub whose identifier repeats an
// earlier stub's to that earlier stub's name. Units are written by
// identifier, so only the first of them can be generated.
func duplicateStubs(stubs []model.StubRequest) map[int]string {
	seen := make(map[string]string, len(stubs))
	dups := map[int]string{}
	for i, stub := range stubs {
		if stub.Name == "" {
			continue
		}
		id := naming.Identifier(stub.Name)
		if first, ok := seen[id]; ok {
			dups[i] = first
			continue
		}
		seen[id] = stub.Name
	}
	return dups
}

// ResolveStub resolves a single stub against contracts.
func ResolveStub(ctx context.Context, contracts []model.ContractDescriptor, stub model.StubRequest, opts *Options) (*model.Unit, []model.Diagnostic, error) {
	batch, err := Resolve(ctx, &model.Request{Contracts: contracts, Stubs: []model.StubRequest{stub}}, opts)
	if err != nil {
		return nil, nil, err
	}
	if len(batch.Units) == 0 {
		return nil, batch.Diagnostics, nil
	}
	return &batch.Units[0], batch.Diagnostics, nil
}
