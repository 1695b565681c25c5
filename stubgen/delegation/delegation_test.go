package delegation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/stubkit/stubgen/model"
)

var (
	baseType    = model.Class("BaseType")
	derivedType = model.Class("DerivedType").WithSupertypes("BaseType")
	leafType    = model.Class("LeafType").WithSupertypes("DerivedType", "BaseType")
	otherType   = model.Class("OtherType").WithSupertypes("BaseType")
)

func flat(contract string, m model.Member) model.FlatMember {
	m.Contract = contract
	return model.FlatMember{ID: contract + "." + m.Key(), Member: m, Sources: []string{contract}}
}

func m(name string, x model.TypeRef) model.Member {
	return model.Member{
		Kind:   model.MemberMethod,
		Name:   name,
		Type:   model.Void(),
		Params: []model.Param{{Name: "x", Type: x}},
	}
}

// chain: IBase <- IDerived <- ILeaf, and IBase <- IOther.
func related(a, b string) bool {
	parents := map[string][]string{
		"IDerived": {"IBase"},
		"ILeaf":    {"IDerived", "IBase"},
		"IOther":   {"IBase"},
	}
	for _, p := range parents[a] {
		if p == b {
			return true
		}
	}
	for _, p := range parents[b] {
		if p == a {
			return true
		}
	}
	return false
}

func TestResolve_BaseToDerived(t *testing.T) {
	base := flat("IBase", m("m", baseType))
	derived := flat("IDerived", m("m", derivedType))

	edges := Resolve([]model.FlatMember{base, derived}, related)
	require.Len(t, edges, 1)
	e := edges[0]
	assert.Equal(t, base.ID, e.Source)
	assert.Equal(t, derived.ID, e.Target)
	require.Len(t, e.Params, 1)
	assert.Equal(t, model.ConvertExplicit, e.Params[0].Kind)
	assert.Equal(t, "BaseType", e.Params[0].From.String())
	assert.Equal(t, "DerivedType", e.Params[0].To.String())
	assert.Equal(t, model.ConvertNone, e.Return.Kind)
	assert.Nil(t, e.Setter)
	assert.Equal(t, map[string]bool{base.ID: true}, Sources(edges))
}

func TestResolve_OneHop(t *testing.T) {
	base := flat("IBase", m("m", baseType))
	derived := flat("IDerived", m("m", derivedType))
	leaf := flat("ILeaf", m("m", leafType))

	edges := Resolve([]model.FlatMember{base, derived, leaf}, related)
	require.Len(t, edges, 2)
	for _, e := range edges {
		assert.Equal(t, leaf.ID, e.Target, "every edge points at the most specific member")
		assert.NotEqual(t, e.Source, e.Target)
	}
}

func TestResolve_AmbiguousMaxima(t *testing.T) {
	base := flat("IBase", m("m", baseType))
	derived := flat("IDerived", m("m", derivedType))
	other := flat("IOther", m("m", otherType))

	edges := Resolve([]model.FlatMember{base, derived, other}, related)
	assert.Empty(t, edges)
}

func TestResolve_UnrelatedContracts(t *testing.T) {
	derived := flat("IDerived", m("m", derivedType))
	other := flat("IUnrelated", m("m", baseType))
	assert.Empty(t, Resolve([]model.FlatMember{other, derived}, related))
}

func TestResolve_CovariantProperty(t *testing.T) {
	base := flat("IBase", model.Member{Kind: model.MemberProperty, Name: "Current", Type: baseType, HasGetter: true, HasSetter: true})
	derived := flat("IDerived", model.Member{Kind: model.MemberProperty, Name: "Current", Type: derivedType, HasGetter: true, HasSetter: true})

	edges := Resolve([]model.FlatMember{base, derived}, related)
	require.Len(t, edges, 1)
	assert.Equal(t, model.ConvertImplicit, edges[0].Return.Kind)
	require.NotNil(t, edges[0].Setter)
	assert.Equal(t, model.ConvertExplicit, edges[0].Setter.Kind)
}

func TestResolve_MissingSetterBlocksDelegation(t *testing.T) {
	base := flat("IBase", model.Member{Kind: model.MemberProperty, Name: "Current", Type: baseType, HasGetter: true, HasSetter: true})
	derived := flat("IDerived", model.Member{Kind: model.MemberProperty, Name: "Current", Type: derivedType, HasGetter: true})
	assert.Empty(t, Resolve([]model.FlatMember{base, derived}, related))
}

func TestResolve_RefParamsMustMatch(t *testing.T) {
	a := m("m", baseType)
	a.Params[0].Mode = model.ModeRef
	b := m("m", derivedType)
	b.Params[0].Mode = model.ModeRef
	assert.Empty(t, Resolve([]model.FlatMember{flat("IBase", a), flat("IDerived", b)}, related))
}

func TestResolve_GenericIgnored(t *testing.T) {
	a := m("m", baseType)
	a.TypeParams = []model.TypeParam{{Name: "T"}}
	b := m("m", derivedType)
	b.TypeParams = []model.TypeParam{{Name: "T"}}
	assert.Empty(t, Resolve([]model.FlatMember{flat("IBase", a), flat("IDerived", b)}, related))
}

func TestResolve_NeverBidirectional(t *testing.T) {
	members := []model.FlatMember{
		flat("IBase", m("m", baseType)),
		flat("IDerived", m("m", derivedType)),
		flat("ILeaf", m("m", leafType)),
		flat("IOther", m("m", otherType)),
	}
	edges := Resolve(members, related)
	pairs := map[[2]string]bool{}
	for _, e := range edges {
		pairs[[2]string{e.Source, e.Target}] = true
	}
	for p := range pairs {
		assert.False(t, pairs[[2]string{p[1], p[0]}])
	}
	targets := map[string]bool{}
	for _, e := range edges {
		targets[e.Target] = true
	}
	for _, e := range edges {
		assert.False(t, targets[e.Source], "no chains")
	}
}
