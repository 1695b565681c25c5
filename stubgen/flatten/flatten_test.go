package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/stubkit/stubgen/model"
)

func prop(name string, t model.TypeRef) model.Member {
	return model.Member{Kind: model.MemberProperty, Name: name, Type: t, HasGetter: true}
}

func index(cs ...model.ContractDescriptor) map[string]*model.ContractDescriptor {
	r := model.Request{Contracts: cs}
	return r.ContractIndex()
}

func stubOf(name string, targets ...string) model.StubRequest {
	s := model.StubRequest{Name: name}
	for _, t := range targets {
		s.Targets = append(s.Targets, model.ContractRef{ID: t})
	}
	return s
}

func TestFlatten_Diamond(t *testing.T) {
	idx := index(
		model.ContractDescriptor{ID: "IBase", Members: []model.Member{prop("Id", model.Value("int"))}},
		model.ContractDescriptor{ID: "ILeft", Bases: []model.ContractRef{{ID: "IBase"}}},
		model.ContractDescriptor{ID: "IRight", Bases: []model.ContractRef{{ID: "IBase"}}},
		model.ContractDescriptor{ID: "IBoth", Bases: []model.ContractRef{{ID: "ILeft"}, {ID: "IRight"}}},
	)

	got := Flatten(stubOf("FakeBoth", "IBoth"), idx)
	require.Len(t, got.Members, 1, "diamond collapses to one member")
	assert.Equal(t, "property:Id->int", got.Members[0].ID)
	assert.Equal(t, 2, got.Members[0].Depth)
	assert.Equal(t, []string{"IBase"}, got.Members[0].Sources)
	assert.Equal(t, []string{"IBoth", "ILeft", "IBase", "IRight"}, got.Contracts)
	assert.Empty(t, got.Diagnostics)
	assert.True(t, got.Related("IBoth", "IBase"))
	assert.False(t, got.Related("ILeft", "IRight"))
}

func TestFlatten_IdenticalMembersOfUnrelatedContracts(t *testing.T) {
	idx := index(
		model.ContractDescriptor{ID: "IA", Members: []model.Member{prop("Name", model.Class("string"))}},
		model.ContractDescriptor{ID: "IB", Members: []model.Member{prop("Name", model.Class("string"))}},
	)
	got := Flatten(stubOf("Fake", "IA", "IB"), idx)
	require.Len(t, got.Members, 1)
	assert.Equal(t, []string{"IA", "IB"}, got.Members[0].Sources)
	assert.Equal(t, "IA", got.Members[0].Member.Contract)
}

func TestFlatten_ShallowestRepresentative(t *testing.T) {
	// IDerived redeclares Count; IOther reaches IBase directly at depth 1
	// after IDerived reached it at depth 2.
	idx := index(
		model.ContractDescriptor{ID: "IBase", Members: []model.Member{prop("Count", model.Value("int"))}},
		model.ContractDescriptor{ID: "IMid", Bases: []model.ContractRef{{ID: "IBase"}}},
		model.ContractDescriptor{ID: "IDerived", Bases: []model.ContractRef{{ID: "IMid"}}},
		model.ContractDescriptor{ID: "IOther", Bases: []model.ContractRef{{ID: "IBase"}}},
	)
	got := Flatten(stubOf("Fake", "IDerived", "IOther"), idx)
	require.Len(t, got.Members, 1)
	assert.Equal(t, 1, got.Members[0].Depth)
}

func TestFlatten_HiddenByRedeclaration(t *testing.T) {
	idx := index(
		model.ContractDescriptor{ID: "IBase", Members: []model.Member{prop("Value", model.Value("int"))}},
		model.ContractDescriptor{
			ID:      "IDerived",
			Bases:   []model.ContractRef{{ID: "IBase"}},
			Members: []model.Member{prop("Value", model.Value("int"))},
		},
	)
	got := Flatten(stubOf("Fake", "IDerived"), idx)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "IDerived", got.Members[0].Member.Contract)
	assert.Equal(t, 0, got.Members[0].Depth)
	assert.Equal(t, []string{"IDerived", "IBase"}, got.Members[0].Sources)
}

func TestFlatten_BoundGenerics(t *testing.T) {
	idx := index(
		model.ContractDescriptor{
			ID:         "IRepository`1",
			Name:       "IRepository",
			TypeParams: []model.TypeParam{{Name: "T"}},
			Members: []model.Member{{
				Kind:   model.MemberMethod,
				Name:   "Get",
				Type:   model.ParamRef("T"),
				Params: []model.Param{{Name: "id", Type: model.Value("int")}},
			}},
		},
		model.ContractDescriptor{
			ID:    "IUserRepository",
			Bases: []model.ContractRef{{ID: "IRepository`1", TypeArgs: []model.TypeRef{model.Class("User")}}},
		},
	)
	got := Flatten(stubOf("FakeUsers", "IUserRepository"), idx)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "User", got.Members[0].Member.Type.String())
	assert.Equal(t, "method:Get(int)->User", got.Members[0].ID)
}

func TestFlatten_TemplateTarget(t *testing.T) {
	idx := index(model.ContractDescriptor{
		ID:         "IBox`1",
		IsTemplate: true,
		TypeParams: []model.TypeParam{{Name: "T"}},
		Members:    []model.Member{prop("Item", model.ParamRef("T"))},
	})
	stub := model.StubRequest{
		Name:       "FakeBox",
		TypeParams: []model.TypeParam{{Name: "TItem"}},
		Targets:    []model.ContractRef{{ID: "IBox`1"}},
	}
	got := Flatten(stub, idx)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "TItem", got.Members[0].Member.Type.String())
}

func TestFlatten_CycleAndUnknownBase(t *testing.T) {
	idx := index(
		model.ContractDescriptor{ID: "IA", Bases: []model.ContractRef{{ID: "IB"}}, Members: []model.Member{prop("A", model.Value("int"))}},
		model.ContractDescriptor{ID: "IB", Bases: []model.ContractRef{{ID: "IA"}, {ID: "IMissing"}}, Members: []model.Member{prop("B", model.Value("int"))}},
	)
	got := Flatten(stubOf("Fake", "IA"), idx)
	assert.Len(t, got.Members, 2)
	require.Len(t, got.Diagnostics, 2)
	assert.Equal(t, model.CodeInheritanceCycle, got.Diagnostics[0].Code)
	assert.Equal(t, model.CodeUnknownContract, got.Diagnostics[1].Code)
	for _, d := range got.Diagnostics {
		assert.False(t, d.IsError())
		assert.Equal(t, "Fake", d.Stub)
	}
}

func TestFlatten_Events(t *testing.T) {
	changed := model.EventMember{Name: "Changed", Shape: model.EventPlain, Handler: model.Class("EventHandler")}
	idx := index(
		model.ContractDescriptor{ID: "INotify", Events: []model.EventMember{changed}},
		model.ContractDescriptor{ID: "IModel", Bases: []model.ContractRef{{ID: "INotify"}}, Events: []model.EventMember{changed}},
	)
	got := Flatten(stubOf("FakeModel", "IModel", "INotify"), idx)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "event:Changed->EventHandler", got.Events[0].ID)
	assert.Equal(t, []string{"IModel", "INotify"}, got.Events[0].Sources)
	assert.Equal(t, 0, got.Events[0].Depth)
}

func TestFlatten_MergesAccessors(t *testing.T) {
	getter := prop("Value", model.Value("int"))
	setter := getter
	setter.HasSetter = true
	initOnly := getter
	initOnly.InitOnly = true
	writeOnly := model.Member{Kind: model.MemberProperty, Name: "Value", Type: model.Value("int"), HasSetter: true}

	tests := []struct {
		name         string
		contracts    []model.ContractDescriptor
		targets      []string
		wantGetter   bool
		wantSetter   bool
		wantInitOnly bool
	}{
		{
			name: "unrelated contracts",
			contracts: []model.ContractDescriptor{
				{ID: "IReader", Members: []model.Member{getter}},
				{ID: "IWriter", Members: []model.Member{setter}},
			},
			targets:    []string{"IReader", "IWriter"},
			wantGetter: true,
			wantSetter: true,
		},
		{
			name: "hidden redeclaration",
			contracts: []model.ContractDescriptor{
				{ID: "IBase", Members: []model.Member{setter}},
				{ID: "IDerived", Bases: []model.ContractRef{{ID: "IBase"}}, Members: []model.Member{getter}},
			},
			targets:    []string{"IDerived"},
			wantGetter: true,
			wantSetter: true,
		},
		{
			name: "diamond",
			contracts: []model.ContractDescriptor{
				{ID: "IBase", Members: []model.Member{getter}},
				{ID: "ILeft", Bases: []model.ContractRef{{ID: "IBase"}}, Members: []model.Member{writeOnly}},
				{ID: "IRight", Bases: []model.ContractRef{{ID: "IBase"}}},
				{ID: "IBoth", Bases: []model.ContractRef{{ID: "ILeft"}, {ID: "IRight"}}},
			},
			targets:    []string{"IBoth"},
			wantGetter: true,
			wantSetter: true,
		},
		{
			name: "plain setter supersedes init-only",
			contracts: []model.ContractDescriptor{
				{ID: "IA", Members: []model.Member{initOnly}},
				{ID: "IB", Members: []model.Member{setter}},
			},
			targets:    []string{"IA", "IB"},
			wantGetter: true,
			wantSetter: true,
		},
		{
			name: "init-only kept without a plain setter",
			contracts: []model.ContractDescriptor{
				{ID: "IA", Members: []model.Member{initOnly}},
				{ID: "IB", Members: []model.Member{getter}},
			},
			targets:      []string{"IA", "IB"},
			wantGetter:   true,
			wantInitOnly: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(stubOf("Fake", tt.targets...), index(tt.contracts...))
			require.Len(t, got.Members, 1)
			m := got.Members[0].Member
			assert.Equal(t, tt.wantGetter, m.HasGetter, "getter")
			assert.Equal(t, tt.wantSetter, m.HasSetter, "setter")
			assert.Equal(t, tt.wantInitOnly, m.InitOnly, "init-only")
		})
	}
}
