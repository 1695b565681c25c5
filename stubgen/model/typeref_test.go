package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRef_String(t *testing.T) {
	tests := []struct {
		name string
		ref  TypeRef
		want string
	}{
		{"void", Void(), "void"},
		{"primitive", Value("int"), "int"},
		{"nullable reference", Class("string").OrNull(), "string?"},
		{"generic", Class("List", Class("String")), "List<String>"},
		{"nested generic", Interface("IDictionary", Class("string"), Class("List", Value("int"))), "IDictionary<string, List<int>>"},
		{"array", ArrayOf(Value("byte")), "byte[]"},
		{"nullable array of nullable", ArrayOf(Class("string").OrNull()).OrNull(), "string?[]?"},
		{"type parameter", ParamRef("T"), "T"},
		{"nullable void stays void", TypeRef{Kind: TypeVoid, Nullable: true}, "void"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.String())
		})
	}
}

func TestTypeRef_Narrows(t *testing.T) {
	base := Class("Animal")
	derived := Class("Dog").WithSupertypes("Animal", "object")
	unrelated := Class("Rock")

	assert.True(t, derived.Narrows(base))
	assert.False(t, base.Narrows(derived))
	assert.False(t, derived.Narrows(derived), "a type never strictly narrows itself")
	assert.False(t, derived.Narrows(unrelated))
	assert.False(t, derived.OrNull().Narrows(base), "nullability must match")
	assert.True(t, derived.OrNull().Narrows(base.OrNull()))
	assert.True(t, derived.NarrowsOrEqual(derived))
}

func TestTypeRef_Substitute(t *testing.T) {
	list := Class("List", ParamRef("T"))
	got := list.Substitute(map[string]TypeRef{"T": Class("string")})
	assert.Equal(t, "List<string>", got.String())
	assert.Equal(t, "List<T>", list.String(), "substitution must not mutate the receiver")

	nullable := ParamRef("T").OrNull()
	assert.Equal(t, "int?", nullable.Substitute(map[string]TypeRef{"T": Value("int")}).String())

	arr := ArrayOf(ParamRef("K"))
	assert.Equal(t, "Guid[]", arr.Substitute(map[string]TypeRef{"K": Value("Guid")}).String())
	assert.Equal(t, "K[]", arr.String())
}

func TestTypeRef_References(t *testing.T) {
	params := map[string]bool{"T": true}
	assert.True(t, ParamRef("T").References(params))
	assert.True(t, Class("List", ParamRef("T")).References(params))
	assert.True(t, ArrayOf(ParamRef("T")).References(params))
	assert.False(t, Class("List", ParamRef("U")).References(params))
	assert.False(t, Value("int").References(nil))
}

func TestTypeRef_Fingerprint(t *testing.T) {
	a := Class("Widget")
	b := Class("Widget")
	b.DefaultConstructible = true

	assert.Equal(t, a.String(), b.String())
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint(), "fingerprint covers the whole shape")
	assert.Equal(t, a.Fingerprint(), Class("Widget").Fingerprint())
}
