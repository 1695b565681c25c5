package overload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/stubkit/stubgen/model"
)

func method(name string, ret model.TypeRef, params ...model.Param) model.FlatMember {
	m := model.Member{Kind: model.MemberMethod, Name: name, Contract: "IService", Type: ret, Params: params}
	return model.FlatMember{ID: m.Key(), Member: m, Sources: []string{"IService"}}
}

func generic(name string, tps []string, ret model.TypeRef, params ...model.Param) model.FlatMember {
	fm := method(name, ret, params...)
	for _, tp := range tps {
		fm.Member.TypeParams = append(fm.Member.TypeParams, model.TypeParam{Name: tp})
	}
	fm.ID = fm.Member.Key()
	return fm
}

func param(name string, t model.TypeRef) model.Param { return model.Param{Name: name, Type: t} }

var (
	intT    = model.Value("int")
	stringT = model.Class("string")
)

func TestGroup_SharedOverloads(t *testing.T) {
	groups := Group([]model.FlatMember{
		method("f", model.Void(), param("x", intT)),
		method("f", model.Void(), param("x", intT), param("y", stringT)),
	})
	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, "f", g.Candidate)
	assert.True(t, g.Shared)
	assert.False(t, g.Generic)
	assert.Zero(t, g.Index)
	assert.Len(t, g.Members, 2)
	assert.Equal(t, []model.CombinedParam{
		{Name: "x", Type: intT},
		{Name: "y", Type: stringT, Optional: true},
	}, g.Params)
}

func TestGroup_ConflictingParamTypesSplit(t *testing.T) {
	groups := Group([]model.FlatMember{
		method("f", model.Void(), param("x", intT)),
		method("f", model.Void(), param("x", stringT)),
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "f1", groups[0].Candidate)
	assert.Equal(t, 1, groups[0].Index)
	assert.Equal(t, "f2", groups[1].Candidate)
	assert.Equal(t, 2, groups[1].Index)
	for _, g := range groups {
		assert.False(t, g.Shared)
		assert.Len(t, g.Members, 1)
	}
}

func TestGroup_OneConflictSplitsWholeGroup(t *testing.T) {
	groups := Group([]model.FlatMember{
		method("f", model.Void(), param("x", intT)),
		method("f", model.Void(), param("x", intT), param("y", intT)),
		method("f", model.Void(), param("y", stringT)),
	})
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"f1", "f2", "f3"}, []string{groups[0].Candidate, groups[1].Candidate, groups[2].Candidate})
}

func TestGroup_ReturnTypes(t *testing.T) {
	// Different returns with identical parameter names stay compatible.
	same := Group([]model.FlatMember{
		method("Get", intT, param("id", intT)),
		method("Get", stringT, param("id", intT)),
	})
	require.Len(t, same, 1)
	assert.True(t, same[0].Shared)

	// Different returns and different parameter names are not.
	diff := Group([]model.FlatMember{
		method("Get", intT, param("id", intT)),
		method("Get", stringT, param("id", intT), param("culture", stringT)),
	})
	assert.Len(t, diff, 2)
}

func TestGroup_ModeMismatch(t *testing.T) {
	out := param("value", intT)
	out.Mode = model.ModeOut
	groups := Group([]model.FlatMember{
		method("Try", model.Value("bool"), param("value", intT)),
		method("Try", model.Value("bool"), out),
	})
	assert.Len(t, groups, 2)
}

func TestGroup_GenericSplit(t *testing.T) {
	groups := Group([]model.FlatMember{
		generic("g", []string{"T"}, model.Void(), param("value", model.ParamRef("T"))),
		method("g", model.Void(), param("value", intT)),
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "g", groups[0].Candidate)
	assert.False(t, groups[0].Generic)
	assert.Equal(t, "gGeneric", groups[1].Candidate)
	assert.True(t, groups[1].Generic)
	assert.NotEqual(t, groups[0].ID, groups[1].ID)
}

func TestGroup_GenericOnlyKeepsName(t *testing.T) {
	groups := Group([]model.FlatMember{
		generic("Resolve", []string{"T"}, model.ParamRef("T")),
		generic("Resolve", []string{"U"}, model.ParamRef("U"), param("name", stringT)),
	})
	require.Len(t, groups, 1)
	assert.Equal(t, "Resolve", groups[0].Candidate)
	assert.True(t, groups[0].Shared)
	assert.True(t, groups[0].Generic)
}

func TestGroup_GenericArity(t *testing.T) {
	groups := Group([]model.FlatMember{
		generic("Map", []string{"T"}, model.Void()),
		generic("Map", []string{"T", "U"}, model.Void()),
		method("Map", model.Void()),
	})
	require.Len(t, groups, 3)
	assert.Equal(t, "Map", groups[0].Candidate)
	assert.Equal(t, "MapGeneric1", groups[1].Candidate)
	assert.Equal(t, "MapGeneric2", groups[2].Candidate)
}

func TestGroup_SeparatesNames(t *testing.T) {
	prop := model.FlatMember{ID: "p", Member: model.Member{Kind: model.MemberProperty, Name: "f", Type: intT}}
	groups := Group([]model.FlatMember{
		method("b", model.Void()),
		prop,
		method("a", model.Void()),
		method("b", model.Void(), param("x", intT)),
	})
	require.Len(t, groups, 2)
	assert.Equal(t, "b", groups[0].Method)
	assert.Len(t, groups[0].Members, 2)
	assert.Equal(t, "a", groups[1].Method)
}
