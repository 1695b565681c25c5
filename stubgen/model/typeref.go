package model

import (
	"slices"
	"strconv"
	"strings"
)

// TypeKind identifies the category of a type reference.
type TypeKind int

const (
	TypeVoid      TypeKind = iota // No value (method returns only)
	TypeValue                     // Value type (struct, enum, primitive number)
	TypeClass                     // Reference type with identity
	TypeInterface                 // Contract type
	TypeArray                     // Array of Elem
	TypeParameter                 // Generic type parameter, Name is the parameter name
	TypeCallable                  // Delegate / function type
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case TypeVoid:
		return "void"
	case TypeValue:
		return "value"
	case TypeClass:
		return "class"
	case TypeInterface:
		return "interface"
	case TypeArray:
		return "array"
	case TypeParameter:
		return "typeParameter"
	case TypeCallable:
		return "callable"
	default:
		return "unknown"
	}
}

// CollectionKind marks well-known collection contracts that have a standard
// concrete substitute.
type CollectionKind int

const (
	CollectionNone CollectionKind = iota
	CollectionSequence
	CollectionReadOnlyCollection
	CollectionCollection
	CollectionReadOnlyList
	CollectionList
	CollectionReadOnlyMap
	CollectionMap
	CollectionReadOnlySet
	CollectionSet
)

// String returns the string representation of the collection kind.
func (k CollectionKind) String() string {
	switch k {
	case CollectionNone:
		return "none"
	case CollectionSequence:
		return "sequence"
	case CollectionReadOnlyCollection:
		return "readOnlyCollection"
	case CollectionCollection:
		return "collection"
	case CollectionReadOnlyList:
		return "readOnlyList"
	case CollectionList:
		return "list"
	case CollectionReadOnlyMap:
		return "readOnlyMap"
	case CollectionMap:
		return "map"
	case CollectionReadOnlySet:
		return "readOnlySet"
	case CollectionSet:
		return "set"
	default:
		return "unknown"
	}
}

// AsyncKind marks asynchronous result containers.
type AsyncKind int

const (
	AsyncNone        AsyncKind = iota
	AsyncTask                  // Task
	AsyncTaskOf                // Task<T>, result type is Args[0]
	AsyncValueTask             // ValueTask
	AsyncValueTaskOf           // ValueTask<T>, result type is Args[0]
)

// String returns the string representation of the async kind.
func (k AsyncKind) String() string {
	switch k {
	case AsyncNone:
		return "none"
	case AsyncTask:
		return "task"
	case AsyncTaskOf:
		return "taskOf"
	case AsyncValueTask:
		return "valueTask"
	case AsyncValueTaskOf:
		return "valueTaskOf"
	default:
		return "unknown"
	}
}

// HasResult reports whether the container carries a result value.
func (k AsyncKind) HasResult() bool {
	return k == AsyncTaskOf || k == AsyncValueTaskOf
}

// TypeRef describes the shape of a type as seen by the generator.
//
// The textual identity is derived by String and never stored. The default
// value classification is likewise derived (see package classify).
type TypeRef struct {
	Kind TypeKind `json:"kind" yaml:"kind,omitempty"`

	// Name is the base identity without type arguments, e.g. "List" for
	// List<String>. For TypeParameter it is the parameter name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Args are generic type arguments.
	Args []TypeRef `json:"args,omitempty" yaml:"args,omitempty"`

	// Elem is the element type of an array.
	Elem *TypeRef `json:"elem,omitempty" yaml:"elem,omitempty"`

	// Nullable is set when the reference is annotated as accepting null.
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// Primitive marks built-in types (int, string, bool, ...).
	Primitive bool `json:"primitive,omitempty" yaml:"primitive,omitempty"`

	// DefaultConstructible is set when the type has an accessible
	// parameterless construction path.
	DefaultConstructible bool `json:"defaultConstructible,omitempty" yaml:"defaultConstructible,omitempty"`

	Collection CollectionKind `json:"collection,omitempty" yaml:"collection,omitempty"`
	Async      AsyncKind      `json:"async,omitempty" yaml:"async,omitempty"`

	// Supertypes lists the identities (without nullability) of every type
	// this type converts to implicitly. It drives specificity comparison.
	Supertypes []string `json:"supertypes,omitempty" yaml:"supertypes,omitempty"`
}

// Void returns the void type.
func Void() TypeRef { return TypeRef{Kind: TypeVoid} }

// Value returns a primitive value type such as "int".
func Value(name string) TypeRef {
	return TypeRef{Kind: TypeValue, Name: name, Primitive: true}
}

// Class returns a reference type.
func Class(name string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: TypeClass, Name: name, Args: args}
}

// Interface returns an interface type.
func Interface(name string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: TypeInterface, Name: name, Args: args}
}

// ParamRef returns a reference to a type parameter.
func ParamRef(name string) TypeRef {
	return TypeRef{Kind: TypeParameter, Name: name}
}

// ArrayOf returns an array of elem.
func ArrayOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: TypeArray, Elem: &elem}
}

// IsVoid reports whether t is void.
func (t TypeRef) IsVoid() bool { return t.Kind == TypeVoid }

// IsValueType reports whether t is a value type.
func (t TypeRef) IsValueType() bool { return t.Kind == TypeValue }

// OrNull returns a copy of t annotated as nullable.
func (t TypeRef) OrNull() TypeRef {
	t.Nullable = true
	return t
}

// Clone returns a deep copy of t sharing no slices or pointers with it.
func (t TypeRef) Clone() TypeRef {
	if t.Args != nil {
		args := make([]TypeRef, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.Clone()
		}
		t.Args = args
	}
	if t.Elem != nil {
		elem := t.Elem.Clone()
		t.Elem = &elem
	}
	t.Supertypes = slices.Clone(t.Supertypes)
	return t
}

// WithSupertypes returns a copy of t with the given supertypes appended.
func (t TypeRef) WithSupertypes(ids ...string) TypeRef {
	t.Supertypes = append(slices.Clone(t.Supertypes), ids...)
	return t
}

// String returns the textual identity, e.g. "List<String>", "int[]", "string?".
func (t TypeRef) String() string {
	s := t.BaseIdentity()
	if t.Nullable && t.Kind != TypeVoid {
		s += "?"
	}
	return s
}

// BaseIdentity returns the textual identity without the nullable annotation.
func (t TypeRef) BaseIdentity() string {
	switch t.Kind {
	case TypeVoid:
		return "void"
	case TypeArray:
		if t.Elem == nil {
			return "[]"
		}
		return t.Elem.String() + "[]"
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte('>')
	return b.String()
}

// Equal reports whether t and o have the same textual identity.
func (t TypeRef) Equal(o TypeRef) bool {
	return t.String() == o.String()
}

// Narrows reports whether t is strictly more specific than o: both carry the
// same nullability and o's identity appears among t's supertypes.
func (t TypeRef) Narrows(o TypeRef) bool {
	if t.Nullable != o.Nullable || t.Equal(o) {
		return false
	}
	return slices.Contains(t.Supertypes, o.BaseIdentity())
}

// NarrowsOrEqual reports whether t equals o or narrows it.
func (t TypeRef) NarrowsOrEqual(o TypeRef) bool {
	return t.Equal(o) || t.Narrows(o)
}

// Substitute replaces type parameters by their bindings. A nullable
// parameter reference keeps its annotation after substitution.
func (t TypeRef) Substitute(bindings map[string]TypeRef) TypeRef {
	if len(bindings) == 0 {
		return t
	}
	if t.Kind == TypeParameter {
		b, ok := bindings[t.Name]
		if !ok {
			return t
		}
		if t.Nullable {
			b.Nullable = true
		}
		return b
	}
	if t.Elem != nil {
		e := t.Elem.Substitute(bindings)
		t.Elem = &e
	}
	if len(t.Args) > 0 {
		args := make([]TypeRef, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.Substitute(bindings)
		}
		t.Args = args
	}
	return t
}

// References reports whether t mentions any of the named type parameters.
func (t TypeRef) References(params map[string]bool) bool {
	if len(params) == 0 {
		return false
	}
	if t.Kind == TypeParameter {
		return params[t.Name]
	}
	if t.Elem != nil && t.Elem.References(params) {
		return true
	}
	for _, a := range t.Args {
		if a.References(params) {
			return true
		}
	}
	return false
}

// Fingerprint returns a string covering every shape attribute of t,
// suitable as a cache key for pure functions of the type shape.
func (t TypeRef) Fingerprint() string {
	var b strings.Builder
	t.writeFingerprint(&b)
	return b.String()
}

func (t TypeRef) writeFingerprint(b *strings.Builder) {
	b.WriteString(strconv.Itoa(int(t.Kind)))
	b.WriteByte(':')
	b.WriteString(t.Name)
	b.WriteByte(':')
	b.WriteString(strconv.FormatBool(t.Nullable))
	b.WriteByte(':')
	b.WriteString(strconv.FormatBool(t.Primitive))
	b.WriteByte(':')
	b.WriteString(strconv.FormatBool(t.DefaultConstructible))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(int(t.Collection)))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(int(t.Async)))
	b.WriteByte(':')
	b.WriteString(strings.Join(t.Supertypes, ","))
	if t.Elem != nil {
		b.WriteString("[")
		t.Elem.writeFingerprint(b)
		b.WriteString("]")
	}
	if len(t.Args) > 0 {
		b.WriteString("<")
		for i, a := range t.Args {
			if i > 0 {
				b.WriteByte(';')
			}
			a.writeFingerprint(b)
		}
		b.WriteString(">")
	}
}
