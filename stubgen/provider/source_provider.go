// Package provider implements input providers that produce contract
// descriptions for the stub generator: a manifest loader and an extractor
// that analyzes Go source code.
package provider

import (
	"context"
	"fmt"
	"go/types"
	"strconv"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	"github.com/broady/stubkit/stubgen/model"
)

// SourceProvider extracts contracts by analyzing Go source code.
//
// Go interfaces become interface contracts: explicit methods become method
// members, embedded interfaces become bases and type parameters make the
// contract a template. Named function types become callable contracts with
// a single Invoke method. Other named types are reported as built-in
// contracts so that stubbing them yields a diagnostic.
type SourceProvider struct{}

// SourceInputOptions configures source-based contract extraction.
type SourceInputOptions struct {
	// Packages are the Go package paths to analyze.
	Packages []string

	// RootTypes are the type names to extract (e.g., "Repository").
	// If empty, all exported interfaces and function types are extracted.
	RootTypes []string
}

// InvokeMethod is the member name given to the single method of a
// callable contract.
const InvokeMethod = "Invoke"

// BuildContracts analyzes source code and returns the contracts reachable
// from RootTypes through embedding, in discovery order.
func (p *SourceProvider) BuildContracts(ctx context.Context, opts SourceInputOptions) ([]model.ContractDescriptor, error) {
	pkgs, err := loadPackages(ctx, opts.Packages)
	if err != nil {
		return nil, err
	}
	return extractContracts(pkgs, opts.RootTypes)
}

// BuildRequest analyzes source code and returns a request holding one stub
// per stub directive (see DirectivePrefix) and the contracts those stubs
// and RootTypes reach. Without directives or RootTypes every exported
// interface and function type is extracted and no stub is requested.
func (p *SourceProvider) BuildRequest(ctx context.Context, opts SourceInputOptions) (*model.Request, error) {
	pkgs, err := loadPackages(ctx, opts.Packages)
	if err != nil {
		return nil, err
	}

	directives, err := ScanDirectives(pkgs)
	if err != nil {
		return nil, err
	}

	req := &model.Request{}
	roots := append([]string(nil), opts.RootTypes...)
	for _, d := range directives {
		stub, err := d.Stub()
		if err != nil {
			return nil, err
		}
		req.Stubs = append(req.Stubs, stub)
		roots = append(roots, d.TypeName)
	}

	req.Contracts, err = extractContracts(pkgs, roots)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// loadPackages loads patterns with full syntax and type information.
func loadPackages(ctx context.Context, patterns []string) ([]*packages.Package, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Newf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}

	if len(pkgs) == 0 {
		return nil, errors.New("no packages found")
	}
	return pkgs, nil
}

// extractContracts extracts roots, or every exported interface and
// function type when roots is empty.
func extractContracts(pkgs []*packages.Package, roots []string) ([]model.ContractDescriptor, error) {
	b := &contractBuilder{
		pkgs: pkgs,
		seen: make(map[string]bool),
	}

	if len(roots) > 0 {
		for _, rootName := range roots {
			if err := b.extractRootType(rootName); err != nil {
				return nil, errors.Wrapf(err, "failed to extract root type %s", rootName)
			}
		}
	} else {
		if err := b.extractAllExportedTypes(); err != nil {
			return nil, errors.Wrap(err, "failed to extract exported types")
		}
	}

	return b.contracts, nil
}

// contractBuilder accumulates contracts during extraction.
type contractBuilder struct {
	pkgs      []*packages.Package
	contracts []model.ContractDescriptor
	seen      map[string]bool // contract IDs already extracted
}

// extractRootType finds and extracts a named type by name.
func (b *contractBuilder) extractRootType(name string) error {
	for _, pkg := range b.pkgs {
		obj := pkg.Types.Scope().Lookup(name)
		if obj == nil {
			continue
		}

		typeName, ok := obj.(*types.TypeName)
		if !ok {
			continue
		}

		return b.extractNamedType(typeName)
	}
	return errors.Newf("type %s not found in any package", name)
}

// extractAllExportedTypes extracts every exported interface and function
// type. Names are visited in scope order, which is sorted.
func (b *contractBuilder) extractAllExportedTypes() error {
	for _, pkg := range b.pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}

			typeName, ok := obj.(*types.TypeName)
			if !ok {
				continue
			}

			switch typeName.Type().Underlying().(type) {
			case *types.Interface, *types.Signature:
			default:
				continue
			}

			if err := b.extractNamedType(typeName); err != nil {
				return err
			}
		}
	}
	return nil
}

// contractID returns the contract ID of a named type: its declared name,
// or the universe name for predeclared types such as error.
func contractID(obj types.Object) string {
	return obj.Name()
}

// extractNamedType extracts a named type and, recursively, the contracts
// it embeds.
func (b *contractBuilder) extractNamedType(tn *types.TypeName) error {
	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		return errors.Newf("%s is not a named type", tn.Name())
	}
	named = named.Origin()

	id := contractID(named.Obj())
	if b.seen[id] {
		return nil
	}
	b.seen[id] = true

	desc := model.ContractDescriptor{
		ID:   id,
		Name: id,
	}
	tparams, err := b.convertTypeParams(named.TypeParams())
	if err != nil {
		return errors.Wrapf(err, "type parameters of %s", id)
	}
	desc.TypeParams = tparams
	desc.IsTemplate = len(tparams) > 0

	var embedded []*types.TypeName
	switch underlying := named.Underlying().(type) {
	case *types.Interface:
		if !underlying.IsMethodSet() {
			// Constraint interfaces with type sets cannot be implemented.
			desc.Kind = model.ContractBuiltin
			break
		}
		desc.Kind = model.ContractInterface
		for i := 0; i < underlying.NumEmbeddeds(); i++ {
			emb, ok := types.Unalias(underlying.EmbeddedType(i)).(*types.Named)
			if !ok {
				continue
			}
			ref := model.ContractRef{ID: contractID(emb.Obj())}
			for arg := range emb.TypeArgs().Types() {
				t, err := b.convertType(arg)
				if err != nil {
					return errors.Wrapf(err, "embedded %s in %s", ref.ID, id)
				}
				ref.TypeArgs = append(ref.TypeArgs, t)
			}
			desc.Bases = append(desc.Bases, ref)
			embedded = append(embedded, emb.Origin().Obj())
		}
		for i := 0; i < underlying.NumExplicitMethods(); i++ {
			fn := underlying.ExplicitMethod(i)
			if !fn.Exported() {
				continue
			}
			m, err := b.convertMethod(id, fn.Name(), fn.Type().(*types.Signature))
			if err != nil {
				return errors.Wrapf(err, "method %s.%s", id, fn.Name())
			}
			desc.Members = append(desc.Members, m)
		}

	case *types.Signature:
		desc.Kind = model.ContractCallable
		m, err := b.convertMethod(id, InvokeMethod, underlying)
		if err != nil {
			return errors.Wrapf(err, "function type %s", id)
		}
		desc.Members = append(desc.Members, m)

	default:
		desc.Kind = model.ContractBuiltin
	}

	b.contracts = append(b.contracts, desc)

	for _, emb := range embedded {
		if err := b.extractNamedType(emb); err != nil {
			return err
		}
	}
	return nil
}

// convertMethod converts a method signature to a method member. The first
// result becomes the return type; further results become out parameters.
func (b *contractBuilder) convertMethod(contract, name string, sig *types.Signature) (model.Member, error) {
	m := model.Member{
		Kind:     model.MemberMethod,
		Name:     name,
		Contract: contract,
		Type:     model.Void(),
	}

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		var (
			t   model.TypeRef
			err error
		)
		if sig.Variadic() && i == params.Len()-1 {
			elem, cerr := b.convertType(v.Type().(*types.Slice).Elem())
			t, err = model.ArrayOf(elem), cerr
		} else {
			t, err = b.convertType(v.Type())
		}
		if err != nil {
			return model.Member{}, errors.Wrapf(err, "parameter %d", i)
		}
		m.Params = append(m.Params, model.Param{Name: paramName(v.Name(), "arg", i), Type: t})
	}

	results := sig.Results()
	for i := 0; i < results.Len(); i++ {
		v := results.At(i)
		t, err := b.convertType(v.Type())
		if err != nil {
			return model.Member{}, errors.Wrapf(err, "result %d", i)
		}
		if i == 0 {
			m.Type = t
			continue
		}
		m.Params = append(m.Params, model.Param{
			Name: paramName(v.Name(), "result", i),
			Type: t,
			Mode: model.ModeOut,
		})
	}
	return m, nil
}

// paramName returns name, or prefix+index for unnamed and blank parameters.
func paramName(name, prefix string, i int) string {
	if name == "" || name == "_" {
		return prefix + strconv.Itoa(i)
	}
	return name
}

// convertTypeParams converts Go type parameters. Type set constraints
// that include comparable mark the parameter NotNull; named interface
// constraints become interface constraints.
func (b *contractBuilder) convertTypeParams(list *types.TypeParamList) ([]model.TypeParam, error) {
	if list.Len() == 0 {
		return nil, nil
	}
	out := make([]model.TypeParam, 0, list.Len())
	for tp := range list.TypeParams() {
		p := model.TypeParam{Name: tp.Obj().Name()}
		constraint := tp.Constraint()
		if iface, ok := constraint.Underlying().(*types.Interface); ok && iface.IsComparable() {
			p.NotNull = true
		}
		if named, ok := types.Unalias(constraint).(*types.Named); ok && named.Obj().Pkg() != nil {
			t, err := b.convertType(named)
			if err != nil {
				return nil, err
			}
			p.Interfaces = append(p.Interfaces, t)
		}
		out = append(out, p)
	}
	return out, nil
}

// convertType converts a Go type to a type reference. Types whose zero
// value is nil are nullable.
func (b *contractBuilder) convertType(t types.Type) (model.TypeRef, error) {
	switch typ := t.(type) {
	case *types.Basic:
		if typ.Kind() == types.UnsafePointer {
			return model.Class(typ.Name()).OrNull(), nil
		}
		return model.Value(typ.Name()), nil

	case *types.Named:
		return b.convertNamed(typ)

	case *types.Pointer:
		elem, err := b.convertType(typ.Elem())
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.TypeRef{
			Kind:     model.TypeClass,
			Name:     "*" + elem.Name,
			Args:     elem.Args,
			Nullable: true,
		}, nil

	case *types.Slice:
		elem, err := b.convertType(typ.Elem())
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.ArrayOf(elem).OrNull(), nil

	case *types.Array:
		elem, err := b.convertType(typ.Elem())
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.TypeRef{
			Kind: model.TypeValue,
			Name: fmt.Sprintf("[%d]%s", typ.Len(), elem.String()),
		}, nil

	case *types.Map:
		key, err := b.convertType(typ.Key())
		if err != nil {
			return model.TypeRef{}, err
		}
		value, err := b.convertType(typ.Elem())
		if err != nil {
			return model.TypeRef{}, err
		}
		ref := model.Class("map", key, value).OrNull()
		ref.Collection = model.CollectionMap
		return ref, nil

	case *types.Interface:
		if typ.Empty() {
			return model.Interface("any").OrNull(), nil
		}
		return model.Interface(typ.String()).OrNull(), nil

	case *types.Struct:
		return model.TypeRef{Kind: model.TypeValue, Name: typ.String()}, nil

	case *types.TypeParam:
		return model.ParamRef(typ.Obj().Name()), nil

	case *types.Alias:
		return b.convertType(types.Unalias(typ))

	case *types.Signature:
		return model.TypeRef{Kind: model.TypeCallable, Name: "func", Nullable: true}, nil

	case *types.Chan:
		elem, err := b.convertType(typ.Elem())
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Class("chan", elem).OrNull(), nil

	default:
		return model.TypeRef{}, errors.Newf("unknown type: %T", t)
	}
}

// convertNamed converts a reference to a named type. Interfaces carry the
// IDs of every interface they embed as supertypes.
func (b *contractBuilder) convertNamed(named *types.Named) (model.TypeRef, error) {
	var args []model.TypeRef
	for arg := range named.TypeArgs().Types() {
		t, err := b.convertType(arg)
		if err != nil {
			return model.TypeRef{}, err
		}
		args = append(args, t)
	}

	name := named.Obj().Name()
	switch underlying := named.Underlying().(type) {
	case *types.Interface:
		return model.Interface(name, args...).OrNull().WithSupertypes(embeddedIDs(underlying)...), nil
	case *types.Pointer, *types.Slice, *types.Map, *types.Chan:
		return model.Class(name, args...).OrNull(), nil
	case *types.Signature:
		return model.TypeRef{Kind: model.TypeCallable, Name: name, Args: args, Nullable: true}, nil
	case *types.Basic:
		ref := model.Value(name)
		ref.Primitive = false
		ref.Args = args
		return ref, nil
	default:
		return model.TypeRef{Kind: model.TypeValue, Name: name, Args: args}, nil
	}
}

// embeddedIDs returns the contract IDs of the named interfaces iface
// embeds, transitively, in declaration order.
func embeddedIDs(iface *types.Interface) []string {
	var ids []string
	seen := make(map[string]bool)
	var walk func(*types.Interface)
	walk = func(i *types.Interface) {
		for j := 0; j < i.NumEmbeddeds(); j++ {
			emb, ok := types.Unalias(i.EmbeddedType(j)).(*types.Named)
			if !ok {
				continue
			}
			id := contractID(emb.Obj())
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
			if inner, ok := emb.Underlying().(*types.Interface); ok {
				walk(inner)
			}
		}
	}
	walk(iface)
	return ids
}
