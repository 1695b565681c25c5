package model

import (
	"strconv"
	"strings"
)

// ParamMode is the passing mode of a parameter.
type ParamMode int

const (
	ModeValue ParamMode = iota // by value
	ModeRef                    // by reference, mutable
	ModeOut                    // output only
	ModeIn                     // by reference, read-only
)

// String returns the string representation of the mode.
func (m ParamMode) String() string {
	switch m {
	case ModeValue:
		return "value"
	case ModeRef:
		return "ref"
	case ModeOut:
		return "out"
	case ModeIn:
		return "in"
	default:
		return "unknown"
	}
}

// keyword returns the source prefix used in signatures ("" for by-value).
func (m ParamMode) keyword() string {
	switch m {
	case ModeRef:
		return "ref "
	case ModeOut:
		return "out "
	case ModeIn:
		return "in "
	default:
		return ""
	}
}

// Param is a single parameter of a method, indexer or callable.
type Param struct {
	Name string    `json:"name" yaml:"name,omitempty" validate:"required"`
	Type TypeRef   `json:"type" yaml:"type,omitempty"`
	Mode ParamMode `json:"mode,omitempty" yaml:"mode,omitempty"`

	// HasDefault marks parameters declared with a default value.
	HasDefault bool `json:"hasDefault,omitempty" yaml:"hasDefault,omitempty"`
}

// TypeParam is a generic type parameter declaration with its constraints.
type TypeParam struct {
	Name string `json:"name" yaml:"name,omitempty" validate:"required"`

	Class   bool `json:"class,omitempty" yaml:"class,omitempty"`     // reference-type constraint
	Struct  bool `json:"struct,omitempty" yaml:"struct,omitempty"`   // value-type constraint
	New     bool `json:"new,omitempty" yaml:"new,omitempty"`         // parameterless constructor constraint
	NotNull bool `json:"notNull,omitempty" yaml:"notNull,omitempty"` // non-nullable constraint

	// Interfaces are interface or base-type constraints.
	Interfaces []TypeRef `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
}

// MemberKind discriminates Member variants.
type MemberKind int

const (
	MemberProperty MemberKind = iota
	MemberIndexer
	MemberMethod
)

// String returns the string representation of the member kind.
func (k MemberKind) String() string {
	switch k {
	case MemberProperty:
		return "property"
	case MemberIndexer:
		return "indexer"
	case MemberMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Member is a property, indexer or method of a contract.
type Member struct {
	Kind MemberKind `json:"kind" yaml:"kind,omitempty"`
	Name string     `json:"name" yaml:"name,omitempty" validate:"required"`

	// Contract is the declaring contract's ID.
	Contract string `json:"contract" yaml:"contract,omitempty"`

	// Type is the property/indexer value type or the method return type.
	Type TypeRef `json:"type" yaml:"type,omitempty"`

	// Params are method parameters or indexer keys.
	Params []Param `json:"params,omitempty" yaml:"params,omitempty" validate:"dive"`

	// TypeParams are method type parameters.
	TypeParams []TypeParam `json:"typeParams,omitempty" yaml:"typeParams,omitempty" validate:"dive"`

	HasGetter bool `json:"hasGetter,omitempty" yaml:"hasGetter,omitempty"`
	HasSetter bool `json:"hasSetter,omitempty" yaml:"hasSetter,omitempty"`

	// InitOnly marks a property settable only during construction.
	InitOnly bool `json:"initOnly,omitempty" yaml:"initOnly,omitempty"`
}

// IsGeneric reports whether the member declares method type parameters.
func (m Member) IsGeneric() bool {
	return m.Kind == MemberMethod && len(m.TypeParams) > 0
}

// TypeParamSet returns the names of the member's type parameters.
func (m Member) TypeParamSet() map[string]bool {
	if len(m.TypeParams) == 0 {
		return nil
	}
	set := make(map[string]bool, len(m.TypeParams))
	for _, tp := range m.TypeParams {
		set[tp.Name] = true
	}
	return set
}

// Substitute applies contract-level type bindings to the member.
// Method type parameters shadow contract bindings of the same name.
func (m Member) Substitute(bindings map[string]TypeRef) Member {
	if len(bindings) == 0 {
		return m
	}
	if len(m.TypeParams) > 0 {
		shadowed := make(map[string]TypeRef, len(bindings))
		for k, v := range bindings {
			shadowed[k] = v
		}
		for _, tp := range m.TypeParams {
			delete(shadowed, tp.Name)
		}
		bindings = shadowed
	}
	out := m
	out.Type = m.Type.Substitute(bindings)
	if len(m.Params) > 0 {
		out.Params = make([]Param, len(m.Params))
		for i, p := range m.Params {
			p.Type = p.Type.Substitute(bindings)
			out.Params[i] = p
		}
	}
	if len(m.TypeParams) > 0 {
		out.TypeParams = make([]TypeParam, len(m.TypeParams))
		for i, tp := range m.TypeParams {
			if len(tp.Interfaces) > 0 {
				ifaces := make([]TypeRef, len(tp.Interfaces))
				for j, c := range tp.Interfaces {
					ifaces[j] = c.Substitute(bindings)
				}
				tp.Interfaces = ifaces
			}
			out.TypeParams[i] = tp
		}
	}
	return out
}

// Positional rewrites method type parameters to positional placeholders so
// that g<T>(T) and g<U>(U) share one identity.
func (m Member) Positional() map[string]TypeRef {
	if len(m.TypeParams) == 0 {
		return nil
	}
	b := make(map[string]TypeRef, len(m.TypeParams))
	for i, tp := range m.TypeParams {
		b[tp.Name] = ParamRef("`" + strconv.Itoa(i))
	}
	return b
}

// Key returns the identity key: kind, name, generic arity, parameter modes
// and types, and the value/return type. Members with equal keys are the
// same member for flattening purposes.
func (m Member) Key() string {
	pos := m.Positional()
	var b strings.Builder
	b.WriteString(m.Kind.String())
	b.WriteByte(':')
	b.WriteString(m.Name)
	if len(m.TypeParams) > 0 {
		b.WriteByte('`')
		b.WriteString(strconv.Itoa(len(m.TypeParams)))
	}
	if m.Kind != MemberProperty {
		b.WriteByte('(')
		for i, p := range m.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(p.Mode.keyword())
			b.WriteString(p.Type.Substitute(pos).String())
		}
		b.WriteByte(')')
	}
	b.WriteString("->")
	b.WriteString(m.Type.Substitute(pos).String())
	return b.String()
}

// ParamKey returns the key of the parameter list alone (modes and types).
func (m Member) ParamKey() string {
	pos := m.Positional()
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.Mode.keyword() + p.Type.Substitute(pos).String()
	}
	return strings.Join(parts, ",")
}

// Signature returns a human-readable signature, e.g.
// "Find<T>(int id, out string name): bool".
func (m Member) Signature() string {
	var b strings.Builder
	if m.Kind == MemberIndexer {
		b.WriteString("this")
	} else {
		b.WriteString(m.Name)
	}
	if len(m.TypeParams) > 0 {
		b.WriteByte('<')
		for i, tp := range m.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(tp.Name)
		}
		b.WriteByte('>')
	}
	if m.Kind != MemberProperty {
		lb, rb := "(", ")"
		if m.Kind == MemberIndexer {
			lb, rb = "[", "]"
		}
		b.WriteString(lb)
		for i, p := range m.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Mode.keyword())
			b.WriteString(p.Type.String())
			b.WriteByte(' ')
			b.WriteString(p.Name)
		}
		b.WriteString(rb)
	}
	b.WriteString(": ")
	b.WriteString(m.Type.String())
	return b.String()
}

// EventShape is the notification shape of an event.
type EventShape int

const (
	EventPlain   EventShape = iota // EventHandler
	EventTyped                     // EventHandler<TPayload>
	EventAction                    // Action<T1..Tn>
	EventFunc                      // Func<T1..Tn, TResult>
	EventCustom                    // custom callable type
)

// String returns the string representation of the event shape.
func (s EventShape) String() string {
	switch s {
	case EventPlain:
		return "plain"
	case EventTyped:
		return "typed"
	case EventAction:
		return "action"
	case EventFunc:
		return "func"
	case EventCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// EventMember is a notification member of a contract.
type EventMember struct {
	Name     string     `json:"name" yaml:"name,omitempty" validate:"required"`
	Contract string     `json:"contract" yaml:"contract,omitempty"`
	Shape    EventShape `json:"shape" yaml:"shape,omitempty"`

	// Handler is the declared handler type.
	Handler TypeRef `json:"handler" yaml:"handler,omitempty"`

	// Payload is the event argument type for EventTyped.
	Payload *TypeRef `json:"payload,omitempty" yaml:"payload,omitempty"`

	// Args are the callable arguments for Action, Func and Custom shapes.
	Args []Param `json:"args,omitempty" yaml:"args,omitempty" validate:"dive"`

	// Return is the callable result for Func and Custom shapes.
	Return TypeRef `json:"return" yaml:"return,omitempty"`
}

// Substitute applies contract-level type bindings to the event.
func (e EventMember) Substitute(bindings map[string]TypeRef) EventMember {
	if len(bindings) == 0 {
		return e
	}
	out := e
	out.Handler = e.Handler.Substitute(bindings)
	out.Return = e.Return.Substitute(bindings)
	if e.Payload != nil {
		p := e.Payload.Substitute(bindings)
		out.Payload = &p
	}
	if len(e.Args) > 0 {
		out.Args = make([]Param, len(e.Args))
		for i, a := range e.Args {
			a.Type = a.Type.Substitute(bindings)
			out.Args[i] = a
		}
	}
	return out
}

// Key returns the identity key of the event.
func (e EventMember) Key() string {
	return "event:" + e.Name + "->" + e.Handler.String()
}
