package model

// FlatMember is a member after flattening: one entry per identity key,
// however many inheritance paths reach it.
type FlatMember struct {
	// ID is the member's identity key (see Member.Key).
	ID string `json:"id"`

	Member Member `json:"member"`

	// Depth is the shallowest inheritance depth the member was reached at;
	// members of the stub's direct targets have depth 0.
	Depth int `json:"depth"`

	// Sources lists every contract that declares the member, in
	// traversal order.
	Sources []string `json:"sources"`
}

// FlatEvent is an event after flattening.
type FlatEvent struct {
	ID      string      `json:"id"`
	Event   EventMember `json:"event"`
	Depth   int         `json:"depth"`
	Sources []string    `json:"sources"`
}

// CombinedParam is one entry of a shared method group's parameter union.
type CombinedParam struct {
	Name string    `json:"name"`
	Type TypeRef   `json:"type"`
	Mode ParamMode `json:"mode,omitempty"`

	// Optional is set when the parameter is absent from at least one
	// overload of the group.
	Optional bool `json:"optional,omitempty"`
}

// MethodGroup is a set of same-named overloads served by one interceptor.
type MethodGroup struct {
	// ID identifies the group within its unit.
	ID string `json:"id"`

	// Method is the declared method name.
	Method string `json:"method"`

	// Candidate is the name requested before collision resolution,
	// e.g. "Find", "Find1", "FindGeneric".
	Candidate string `json:"candidate"`

	// Name is the resolved interceptor name.
	Name string `json:"name"`

	Generic bool `json:"generic"`

	// Shared is set when the group holds several compatible overloads.
	Shared bool `json:"shared"`

	// Index is the 1-based position of an independently numbered group,
	// 0 otherwise.
	Index int `json:"index,omitempty"`

	// Members are the member IDs in declaration order.
	Members []string `json:"members"`

	Params []CombinedParam `json:"params,omitempty"`

	// Depth is the shallowest depth among the members.
	Depth int `json:"depth"`
}

// ConversionKind is how a forwarded value changes type.
type ConversionKind int

const (
	ConvertNone     ConversionKind = iota // identical types
	ConvertImplicit                       // widening, always safe
	ConvertExplicit                       // narrowing, checked cast
)

// String returns the string representation of the conversion kind.
func (k ConversionKind) String() string {
	switch k {
	case ConvertNone:
		return "none"
	case ConvertImplicit:
		return "implicit"
	case ConvertExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Conversion describes a single forwarded value.
type Conversion struct {
	Kind ConversionKind `json:"kind"`
	From TypeRef        `json:"from"`
	To   TypeRef        `json:"to"`
}

// DelegationEdge states that Source's implementation forwards to Target's
// interceptor. Source never gets an interceptor of its own.
type DelegationEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`

	// TargetName is the resolved interceptor name of Target.
	TargetName string `json:"targetName"`

	// Params converts each source argument to the target parameter.
	Params []Conversion `json:"params,omitempty"`

	// Return converts the target result back to the source type.
	Return Conversion `json:"return"`

	// Setter converts an assigned value for properties and indexers
	// with setters.
	Setter *Conversion `json:"setter,omitempty"`
}

// NameBinding records the name chosen for one interceptor.
type NameBinding struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Unit is the resolved model of one stub.
type Unit struct {
	Stub       string      `json:"stub"`
	TypeParams []TypeParam `json:"typeParams,omitempty"`
	Strict     bool        `json:"strict"`

	// Contracts lists the flattened contract IDs in traversal order.
	Contracts []string `json:"contracts"`

	Members []FlatMember `json:"members"`
	Events  []FlatEvent  `json:"events,omitempty"`

	Groups      []MethodGroup    `json:"groups,omitempty"`
	Delegations []DelegationEdge `json:"delegations,omitempty"`

	Properties      []PropertyInterceptor `json:"properties,omitempty"`
	Indexers        []IndexerInterceptor  `json:"indexers,omitempty"`
	Methods         []MethodInterceptor   `json:"methods,omitempty"`
	GenericHandlers []GenericHandler      `json:"genericHandlers,omitempty"`
	EventHandlers   []EventInterceptor    `json:"eventHandlers,omitempty"`

	// Names lists every resolved interceptor name in resolution order.
	Names []NameBinding `json:"names"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// InterceptorNames returns every resolved name in resolution order.
func (u *Unit) InterceptorNames() []string {
	names := make([]string, len(u.Names))
	for i, b := range u.Names {
		names[i] = b.Name
	}
	return names
}

// FindMember returns the flattened member with the given ID.
func (u *Unit) FindMember(id string) (FlatMember, bool) {
	for _, m := range u.Members {
		if m.ID == id {
			return m, true
		}
	}
	return FlatMember{}, false
}

// FindMethod looks up a method interceptor by resolved name.
func (u *Unit) FindMethod(name string) *MethodInterceptor {
	for i := range u.Methods {
		if u.Methods[i].Name == name {
			return &u.Methods[i]
		}
	}
	return nil
}

// FindGenericHandler looks up a generic handler by resolved name.
func (u *Unit) FindGenericHandler(name string) *GenericHandler {
	for i := range u.GenericHandlers {
		if u.GenericHandlers[i].Name == name {
			return &u.GenericHandlers[i]
		}
	}
	return nil
}

// FindProperty looks up a property interceptor by resolved name.
func (u *Unit) FindProperty(name string) *PropertyInterceptor {
	for i := range u.Properties {
		if u.Properties[i].Name == name {
			return &u.Properties[i]
		}
	}
	return nil
}

// Batch is the result of one generation request.
type Batch struct {
	// Units holds one entry per valid stub, in request order.
	Units []Unit `json:"units"`

	// Diagnostics holds every diagnostic of every stub, in request order.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// FindUnit looks up a unit by stub name.
func (b *Batch) FindUnit(stub string) *Unit {
	for i := range b.Units {
		if b.Units[i].Stub == stub {
			return &b.Units[i]
		}
	}
	return nil
}

// HasErrors reports whether any diagnostic is an error.
func (b *Batch) HasErrors() bool {
	for _, d := range b.Diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}
