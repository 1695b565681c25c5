// Package interceptor builds the per-member interceptor models of a stub:
// properties, indexers, method groups, generic method groups and events.
package interceptor

import (
	"maps"

	"github.com/broady/stubkit/stubgen/classify"
	"github.com/broady/stubkit/stubgen/model"
)

// Policy computes the default expression of uninstrumented members.
type Policy struct {
	// Strict turns every default into a configuration error.
	Strict bool

	Classifier classify.Classifier

	// TypeParams are the type parameters in scope, by name.
	TypeParams map[string]model.TypeParam

	// NullableResults names type parameters whose constraints permit an
	// absent result.
	NullableResults map[string]bool
}

// NewPolicy returns a policy with the stub's own type parameters in scope.
func NewPolicy(strict bool, c classify.Classifier, stubParams []model.TypeParam) Policy {
	if c == nil {
		c = classify.Default
	}
	p := Policy{Strict: strict, Classifier: c}
	return p.With(stubParams)
}

// With returns a copy of p with tps added to the scope. Method type
// parameters shadow stub type parameters of the same name.
func (p Policy) With(tps []model.TypeParam) Policy {
	if len(tps) == 0 {
		return p
	}
	params := maps.Clone(p.TypeParams)
	if params == nil {
		params = map[string]model.TypeParam{}
	}
	nullable := maps.Clone(p.NullableResults)
	if nullable == nil {
		nullable = map[string]bool{}
	}
	for _, tp := range tps {
		params[tp.Name] = tp
		nullable[tp.Name] = nullableResult(tp)
	}
	p.TypeParams = params
	p.NullableResults = nullable
	return p
}

// Default returns the default of a member producing t. In strict mode it
// always raises.
func (p Policy) Default(contract, member string, t model.TypeRef) model.DefaultValue {
	if p.Strict {
		return throw(t, contract, member, model.ReasonStrict)
	}
	return p.Compute(contract, member, t)
}

// Compute returns the default of t ignoring strict mode. Out parameters
// and event raises use it directly.
func (p Policy) Compute(contract, member string, t model.TypeRef) model.DefaultValue {
	if t.Kind == model.TypeParameter && t.Async == model.AsyncNone {
		if tp, ok := p.TypeParams[t.Name]; ok {
			return p.paramDefault(contract, member, t, tp)
		}
	}

	r := p.Classifier.Classify(t)
	if r.Async != model.AsyncNone {
		d := model.DefaultValue{Strategy: model.DefaultCompleted, Type: t, Async: r.Async}
		if t.Async.HasResult() && len(t.Args) > 0 {
			inner := p.Compute(contract, member, t.Args[0])
			d.Inner = &inner
		}
		return d
	}

	switch r.Class {
	case model.ClassZeroValue:
		if t.IsVoid() {
			return model.DefaultValue{Strategy: model.DefaultNone, Type: t}
		}
		return model.DefaultValue{Strategy: model.DefaultZero, Type: t}
	case model.ClassNullAllowed:
		return model.DefaultValue{Strategy: model.DefaultNull, Type: t}
	case model.ClassConstructible:
		d := model.DefaultValue{Strategy: model.DefaultConstruct, Type: t}
		if r.Substitute != nil {
			// Results may come from a shared cache.
			construct := r.Substitute.Clone()
			d.Construct = &construct
		}
		return d
	default:
		return throw(t, contract, member, model.ReasonUnsatisfiable)
	}
}

// paramDefault defaults a reference to a type parameter. The concrete type
// is chosen per call site, so anything the constraints cannot settle is
// decided there.
func (p Policy) paramDefault(contract, member string, t model.TypeRef, tp model.TypeParam) model.DefaultValue {
	r := classify.ClassifyParam(tp, t.Nullable || p.NullableResults[t.Name])
	switch r.Class {
	case model.ClassZeroValue:
		return model.DefaultValue{Strategy: model.DefaultZero, Type: t}
	case model.ClassNullAllowed:
		return model.DefaultValue{Strategy: model.DefaultNull, Type: t}
	case model.ClassConstructible:
		return model.DefaultValue{Strategy: model.DefaultConstruct, Type: t}
	default:
		return model.DefaultValue{
			Strategy: model.DefaultCallSite,
			Type:     t,
			Error:    &model.ConfigError{Contract: contract, Member: member, Reason: model.ReasonNoConstructor},
		}
	}
}

func throw(t model.TypeRef, contract, member, reason string) model.DefaultValue {
	return model.DefaultValue{
		Strategy: model.DefaultThrow,
		Type:     t,
		Error:    &model.ConfigError{Contract: contract, Member: member, Reason: reason},
	}
}

// nullableResult reports whether an interface constraint of tp is
// annotated nullable, which permits null for results of tp.
func nullableResult(tp model.TypeParam) bool {
	if tp.Struct || tp.NotNull {
		return false
	}
	for _, c := range tp.Interfaces {
		if c.Nullable {
			return true
		}
	}
	return false
}
