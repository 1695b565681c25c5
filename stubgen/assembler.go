package stubgen

import (
	"fmt"

	"github.com/broady/stubkit/stubgen/classify"
	"github.com/broady/stubkit/stubgen/delegation"
	"github.com/broady/stubkit/stubgen/flatten"
	"github.com/broady/stubkit/stubgen/interceptor"
	"github.com/broady/stubkit/stubgen/model"
	"github.com/broady/stubkit/stubgen/naming"
	"github.com/broady/stubkit/stubgen/overload"
)

// assembler resolves single stubs against a shared contract index. It
// holds no mutable state and is safe for concurrent use.
type assembler struct {
	index      map[string]*model.ContractDescriptor
	strict     bool
	classifier classify.Classifier
}

// resolveStub resolves one stub. It returns a nil unit when any
// error-severity diagnostic was reported.
func (a *assembler) resolveStub(stub model.StubRequest) (*model.Unit, []model.Diagnostic) {
	diags := a.validate(stub)
	if hasError(diags) {
		return nil, diags
	}

	stub.Strict = stub.Strict || a.strict
	flat := flatten.Flatten(stub, a.index)
	diags = append(diags, flat.Diagnostics...)

	if len(flat.Members) == 0 && len(flat.Events) == 0 {
		diags = append(diags, errorf(stub, model.CodeNoMembers, firstTarget(stub),
			"stub %q has no interceptable members", stub.Name))
		return nil, diags
	}

	// Delegation runs before grouping: delegated sources get no interceptor
	// and take no part in overload numbering.
	edges := delegation.Resolve(flat.Members, flat.Related)
	delegated := delegation.Sources(edges)

	var props, indexers, methods []model.FlatMember
	for _, fm := range flat.Members {
		if delegated[fm.ID] {
			continue
		}
		switch fm.Member.Kind {
		case model.MemberProperty:
			props = append(props, fm)
		case model.MemberIndexer:
			indexers = append(indexers, fm)
		case model.MemberMethod:
			methods = append(methods, fm)
		}
	}
	groups := overload.Group(methods)

	unit := &model.Unit{
		Stub:        stub.Name,
		TypeParams:  stub.TypeParams,
		Strict:      stub.Strict,
		Contracts:   flat.Contracts,
		Members:     flat.Members,
		Events:      flat.Events,
		Delegations: edges,
	}
	unit.Names = naming.Resolve(candidates(props, indexers, groups, methods, flat.Events), stub.Reserved)
	names := naming.Map(unit.Names)

	byID := make(map[string]model.FlatMember, len(flat.Members))
	for _, fm := range flat.Members {
		byID[fm.ID] = fm
	}
	b := interceptor.NewBuilder(stub, a.classifier)

	for _, fm := range props {
		unit.Properties = append(unit.Properties, b.Property(fm, names[fm.ID]))
	}
	for _, fm := range indexers {
		unit.Indexers = append(unit.Indexers, b.Indexer(fm, names[fm.ID]))
	}

	// Members of a group are reached through the group's name.
	for i := range groups {
		g := &groups[i]
		g.Name = names[g.ID]
		overloads := make([]model.FlatMember, len(g.Members))
		for j, id := range g.Members {
			overloads[j] = byID[id]
			names[id] = g.Name
		}
		if g.Generic {
			unit.GenericHandlers = append(unit.GenericHandlers, b.Generic(*g, overloads))
		} else {
			unit.Methods = append(unit.Methods, b.Method(*g, overloads))
		}
	}
	unit.Groups = groups

	for _, fe := range flat.Events {
		unit.EventHandlers = append(unit.EventHandlers, b.Event(fe, names[fe.ID]))
	}

	for i := range unit.Delegations {
		unit.Delegations[i].TargetName = names[unit.Delegations[i].Target]
	}

	unit.Diagnostics = diags
	return unit, diags
}

// validate reports the problems that make a stub impossible to generate.
func (a *assembler) validate(stub model.StubRequest) []model.Diagnostic {
	var diags []model.Diagnostic
	if stub.Name == "" {
		diags = append(diags, errorf(stub, model.CodeInvalidStub, "", "stub has no name"))
	}
	if len(stub.Targets) == 0 {
		diags = append(diags, errorf(stub, model.CodeInvalidStub, "", "stub %q has no target contracts", stub.Name))
	}
	for _, ref := range stub.Targets {
		c, ok := a.index[ref.ID]
		if !ok {
			diags = append(diags, errorf(stub, model.CodeUnknownContract, ref.ID,
				"contract %q is not described", ref.ID))
			continue
		}
		switch {
		case c.Kind == model.ContractBuiltin:
			diags = append(diags, errorf(stub, model.CodeBuiltinType, ref.ID,
				"%q is a built-in type and cannot be stubbed", c.DisplayName()))
		case c.Kind == model.ContractAbstractClass && !c.HasAccessibleConstructor:
			diags = append(diags, errorf(stub, model.CodeNoConstructor, ref.ID,
				"%q has no accessible constructor", c.DisplayName()))
		}
		if want, got, ok := checkArity(stub, c, ref); !ok {
			diags = append(diags, errorf(stub, model.CodeArityMismatch, ref.ID,
				"%q declares %d type parameters but %d were supplied", c.DisplayName(), want, got))
		}
	}
	return diags
}

// checkArity compares the contract's type parameters with the supplied
// type arguments, or with the stub's own type parameters for templates.
func checkArity(stub model.StubRequest, c *model.ContractDescriptor, ref model.ContractRef) (want, got int, ok bool) {
	want = len(c.TypeParams)
	switch {
	case len(ref.TypeArgs) > 0:
		got = len(ref.TypeArgs)
	case c.IsTemplate:
		got = len(stub.TypeParams)
	}
	return want, got, want == got
}

func candidates(props, indexers []model.FlatMember, groups []model.MethodGroup, methods []model.FlatMember, events []model.FlatEvent) []naming.Candidate {
	var out []naming.Candidate
	for _, fm := range props {
		out = append(out, naming.Candidate{
			ID:        fm.ID,
			Kind:      naming.KindProperty,
			Declared:  fm.Member.Name,
			Name:      fm.Member.Name,
			Depth:     fm.Depth,
			Contract:  fm.Member.Contract,
			Signature: fm.Member.Signature(),
		})
	}
	indexerNames := naming.IndexerNames(indexers)
	for _, fm := range indexers {
		out = append(out, naming.Candidate{
			ID:        fm.ID,
			Kind:      naming.KindIndexer,
			Declared:  fm.Member.Name,
			Name:      indexerNames[fm.ID],
			Depth:     fm.Depth,
			Contract:  fm.Member.Contract,
			Signature: fm.Member.Signature(),
		})
	}
	byID := make(map[string]model.Member, len(methods))
	for _, fm := range methods {
		byID[fm.ID] = fm.Member
	}
	for _, g := range groups {
		first := byID[g.Members[0]]
		out = append(out, naming.Candidate{
			ID:        g.ID,
			Kind:      naming.KindGroup,
			Declared:  g.Method,
			Name:      g.Candidate,
			Depth:     g.Depth,
			Contract:  first.Contract,
			Signature: first.Signature(),
		})
	}
	for _, fe := range events {
		out = append(out, naming.Candidate{
			ID:        fe.ID,
			Kind:      naming.KindEvent,
			Declared:  fe.Event.Name,
			Name:      fe.Event.Name,
			Depth:     fe.Depth,
			Contract:  fe.Event.Contract,
			Signature: fe.ID,
		})
	}
	return out
}

func errorf(stub model.StubRequest, code, contract, format string, args ...any) model.Diagnostic {
	return model.Diagnostic{
		Code:     code,
		Severity: model.SeverityError,
		Stub:     stub.Name,
		Contract: contract,
		Message:  fmt.Sprintf(format, args...),
	}
}

func hasError(diags []model.Diagnostic) bool {
	for _, d := range diags {
		if d.IsError() {
			return true
		}
	}
	return false
}

func firstTarget(stub model.StubRequest) string {
	if len(stub.Targets) == 0 {
		return ""
	}
	return stub.Targets[0].ID
}
