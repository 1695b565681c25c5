package model

// ContractKind identifies what a contract is.
type ContractKind int

const (
	ContractInterface     ContractKind = iota
	ContractAbstractClass              // abstract or virtual base type
	ContractCallable                   // function / delegate type
	ContractBuiltin                    // built-in or primitive type, never stubbable
)

// String returns the string representation of the contract kind.
func (k ContractKind) String() string {
	switch k {
	case ContractInterface:
		return "interface"
	case ContractAbstractClass:
		return "abstractClass"
	case ContractCallable:
		return "callable"
	case ContractBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// ContractRef references a contract, optionally binding its type parameters.
type ContractRef struct {
	ID       string    `json:"id" yaml:"id,omitempty" validate:"required"`
	TypeArgs []TypeRef `json:"typeArgs,omitempty" yaml:"typeArgs,omitempty"`
}

// ContractDescriptor describes one contract with its own (unflattened)
// members. Inheritance is explicit through Bases.
type ContractDescriptor struct {
	ID   string       `json:"id" yaml:"id,omitempty" validate:"required"`
	Name string       `json:"name" yaml:"name,omitempty"`
	Kind ContractKind `json:"kind" yaml:"kind,omitempty"`

	TypeParams []TypeParam `json:"typeParams,omitempty" yaml:"typeParams,omitempty" validate:"dive"`

	// Bases are the directly inherited contracts. Type arguments are
	// expressed in terms of this contract's type parameters.
	Bases []ContractRef `json:"bases,omitempty" yaml:"bases,omitempty" validate:"dive"`

	Members []Member      `json:"members,omitempty" yaml:"members,omitempty" validate:"dive"`
	Events  []EventMember `json:"events,omitempty" yaml:"events,omitempty" validate:"dive"`

	// IsTemplate marks an unbound generic contract: stubs targeting it
	// declare matching type parameters of their own.
	IsTemplate bool `json:"isTemplate,omitempty" yaml:"isTemplate,omitempty"`

	// HasAccessibleConstructor applies to abstract classes.
	HasAccessibleConstructor bool `json:"hasAccessibleConstructor,omitempty" yaml:"hasAccessibleConstructor,omitempty"`
}

// DisplayName returns Name, falling back to ID.
func (c *ContractDescriptor) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// StubRequest asks for one stub unifying one or more contracts.
type StubRequest struct {
	Name string `json:"name" yaml:"name,omitempty" validate:"required"`

	// TypeParams are the stub's own type parameters, used when a target
	// is a template contract.
	TypeParams []TypeParam `json:"typeParams,omitempty" yaml:"typeParams,omitempty" validate:"dive"`

	Targets []ContractRef `json:"targets" yaml:"targets,omitempty" validate:"required,min=1,dive"`

	// Reserved are names taken by user-declared overrides.
	Reserved []string `json:"reserved,omitempty" yaml:"reserved,omitempty"`

	// Strict makes every uninstrumented call raise a configuration error.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`
}

// Request is one generation request: the contracts reachable from the
// stubs, and the stubs themselves.
type Request struct {
	Contracts []ContractDescriptor `json:"contracts" yaml:"contracts,omitempty" validate:"dive"`
	Stubs     []StubRequest        `json:"stubs" yaml:"stubs,omitempty" validate:"dive"`
}

// ContractIndex maps contract IDs to descriptors. The first descriptor
// wins when IDs repeat.
func (r *Request) ContractIndex() map[string]*ContractDescriptor {
	idx := make(map[string]*ContractDescriptor, len(r.Contracts))
	for i := range r.Contracts {
		c := &r.Contracts[i]
		if _, ok := idx[c.ID]; !ok {
			idx[c.ID] = c
		}
	}
	return idx
}
