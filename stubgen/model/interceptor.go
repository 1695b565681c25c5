package model

// Classification is the four-way constructibility classification of a type.
type Classification int

const (
	ClassZeroValue Classification = iota
	ClassNullAllowed
	ClassConstructible
	ClassUnsatisfiable
)

// String returns the string representation of the classification.
func (c Classification) String() string {
	switch c {
	case ClassZeroValue:
		return "zeroValue"
	case ClassNullAllowed:
		return "nullAllowed"
	case ClassConstructible:
		return "constructible"
	case ClassUnsatisfiable:
		return "unsatisfiable"
	default:
		return "unknown"
	}
}

// DefaultStrategy is how an uninstrumented member produces its result.
type DefaultStrategy int

const (
	DefaultNone      DefaultStrategy = iota // void, nothing to produce
	DefaultZero                             // zero value of Type
	DefaultNull                             // absent value
	DefaultConstruct                        // new Construct()
	DefaultCompleted                        // completed async container holding Inner
	DefaultThrow                            // raise Error
	DefaultCallSite                         // generic: zero for value types, else construct or raise
)

// String returns the string representation of the strategy.
func (s DefaultStrategy) String() string {
	switch s {
	case DefaultNone:
		return "none"
	case DefaultZero:
		return "zero"
	case DefaultNull:
		return "null"
	case DefaultConstruct:
		return "construct"
	case DefaultCompleted:
		return "completed"
	case DefaultThrow:
		return "throw"
	case DefaultCallSite:
		return "callSite"
	default:
		return "unknown"
	}
}

// DefaultValue is the default expression of an interceptor, in structured
// form. Renderers turn it into target-language text.
type DefaultValue struct {
	Strategy DefaultStrategy `json:"strategy"`

	// Type is the declared type being defaulted.
	Type TypeRef `json:"type"`

	// Construct is the concrete type to instantiate for DefaultConstruct.
	// It differs from Type when a standard substitute is used.
	Construct *TypeRef `json:"construct,omitempty"`

	// Async is the container kind for DefaultCompleted.
	Async AsyncKind `json:"async,omitempty"`

	// Inner is the result default inside a completed container.
	Inner *DefaultValue `json:"inner,omitempty"`

	// Error is set for DefaultThrow and DefaultCallSite.
	Error *ConfigError `json:"error,omitempty"`
}

// Throws reports whether the default unconditionally raises.
func (d DefaultValue) Throws() bool {
	if d.Strategy == DefaultThrow {
		return true
	}
	return d.Strategy == DefaultCompleted && d.Inner != nil && d.Inner.Throws()
}

// String returns a compact description, e.g. "completed(taskOf, zero int)".
func (d DefaultValue) String() string {
	switch d.Strategy {
	case DefaultNone:
		return "none"
	case DefaultZero:
		return "zero " + d.Type.String()
	case DefaultNull:
		return "null"
	case DefaultConstruct:
		if d.Construct != nil {
			return "new " + d.Construct.String()
		}
		return "new " + d.Type.String()
	case DefaultCompleted:
		if d.Inner == nil {
			return "completed(" + d.Async.String() + ")"
		}
		return "completed(" + d.Async.String() + ", " + d.Inner.String() + ")"
	case DefaultThrow:
		if d.Error != nil {
			return "throw " + d.Error.Reason
		}
		return "throw"
	case DefaultCallSite:
		return "callSite " + d.Type.String()
	default:
		return "unknown"
	}
}

// TrackingKind is the shape of recorded call arguments.
type TrackingKind int

const (
	TrackNone            TrackingKind = iota
	TrackSingle                       // one value
	TrackTuple                        // a tuple of values
	TrackPerTypeArgument              // a map keyed by type-argument combination
)

// String returns the string representation of the tracking kind.
func (k TrackingKind) String() string {
	switch k {
	case TrackNone:
		return "none"
	case TrackSingle:
		return "single"
	case TrackTuple:
		return "tuple"
	case TrackPerTypeArgument:
		return "perTypeArgument"
	default:
		return "unknown"
	}
}

// TrackedArg is one recorded argument.
type TrackedArg struct {
	Name string  `json:"name"`
	Type TypeRef `json:"type"`

	// Optional is set when the argument is absent from at least one
	// overload sharing the interceptor.
	Optional bool `json:"optional,omitempty"`
}

// Tracking describes what an interceptor records per call.
type Tracking struct {
	Kind TrackingKind `json:"kind"`
	Args []TrackedArg `json:"args,omitempty"`

	// TypeParams are the key components of TrackPerTypeArgument.
	TypeParams []string `json:"typeParams,omitempty"`
}

// TrackArgs returns the tracking shape for args: none, single or tuple.
func TrackArgs(args []TrackedArg) Tracking {
	switch len(args) {
	case 0:
		return Tracking{Kind: TrackNone}
	case 1:
		return Tracking{Kind: TrackSingle, Args: args}
	default:
		return Tracking{Kind: TrackTuple, Args: args}
	}
}

// CallbackKind distinguishes standard callable shapes from custom callables.
type CallbackKind int

const (
	CallbackAction CallbackKind = iota // standard action of N by-value arguments
	CallbackFunc                       // standard function of N by-value arguments
	CallbackCustom                     // generated named callable type
)

// String returns the string representation of the callback kind.
func (k CallbackKind) String() string {
	switch k {
	case CallbackAction:
		return "action"
	case CallbackFunc:
		return "func"
	case CallbackCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Callback is the signature of an override hook. The first parameter is
// always the stub instance.
type Callback struct {
	Kind CallbackKind `json:"kind"`

	// Name is the callable type name: "Action", "Func" or the generated name.
	Name string `json:"name"`

	// TypeParams are carried by generic custom callables.
	TypeParams []string `json:"typeParams,omitempty"`

	Params []Param `json:"params"`
	Return TypeRef `json:"return"`
}

// Arity returns the number of callback parameters, receiver included.
func (c Callback) Arity() int { return len(c.Params) }

// PropertyInterceptor instruments a property.
type PropertyInterceptor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Property string   `json:"property"`
	Contract string   `json:"contract"`
	Sources  []string `json:"sources"`

	Type TypeRef `json:"type"`

	HasGetter bool `json:"hasGetter"`
	HasSetter bool `json:"hasSetter"`

	// InitOnly properties expose a read-only-after-construction surface
	// but keep mutable backing storage so tests can pre-seed values.
	InitOnly bool `json:"initOnly,omitempty"`

	// MutableStorage is set when the backing value slot is writable from
	// tests outside the construction path.
	MutableStorage bool `json:"mutableStorage"`

	// LastSet records the most recent assigned value.
	LastSet *TrackedArg `json:"lastSet,omitempty"`

	OnGet *Callback `json:"onGet,omitempty"`
	OnSet *Callback `json:"onSet,omitempty"`

	Default DefaultValue `json:"default"`
}

// IndexerInterceptor instruments an indexer.
type IndexerInterceptor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Contract string   `json:"contract"`
	Sources  []string `json:"sources"`

	Keys []Param `json:"keys"`

	// Key is the single-value or tuple key shape; it doubles as the
	// last-accessed-key tracking.
	Key   Tracking `json:"key"`
	Value TypeRef  `json:"value"`

	HasGetter bool `json:"hasGetter"`
	HasSetter bool `json:"hasSetter"`

	// Storage is the pre-seedable key→value backing map. The getter
	// checks it before falling to Default.
	Storage bool `json:"storage"`

	OnGet *Callback `json:"onGet,omitempty"`
	OnSet *Callback `json:"onSet,omitempty"`

	Default DefaultValue `json:"default"`
}

// OutDefault is the value assigned to an output-only parameter when no
// override is installed.
type OutDefault struct {
	Param   string       `json:"param"`
	Default DefaultValue `json:"default"`
}

// MethodSignature is one unique signature served by a method interceptor.
type MethodSignature struct {
	MemberID  string `json:"memberId"`
	Signature string `json:"signature"`

	Params []Param `json:"params"`
	Return TypeRef `json:"return"`

	// Entry is the invocation entry point name on the interceptor.
	Entry string `json:"entry"`

	// Hook is the override hook name on the interceptor.
	Hook string `json:"hook"`

	Callback    Callback     `json:"callback"`
	Tracking    Tracking     `json:"tracking"`
	Default     DefaultValue `json:"default"`
	OutDefaults []OutDefault `json:"outDefaults,omitempty"`

	Sources []string `json:"sources"`
}

// MethodInterceptor instruments a non-generic method group.
type MethodInterceptor struct {
	Name   string `json:"name"`
	Method string `json:"method"`

	// Shared is set when several compatible overloads share the interceptor.
	Shared bool `json:"shared"`

	Signatures []MethodSignature `json:"signatures"`

	// Tracking is the combined tracking over every overload.
	Tracking Tracking `json:"tracking"`
}

// GenericTypeParam is a type parameter of a generic handler.
type GenericTypeParam struct {
	Name string `json:"name"`

	// Constraints propagate unchanged to the handler accessor.
	Constraints TypeParam `json:"constraints"`

	// Forward repeats only the reference/value-type constraints on the
	// member's forwarding implementation.
	Forward TypeParam `json:"forward"`

	// NullableResult is set when interface constraints permit a null
	// default for results of this parameter.
	NullableResult bool `json:"nullableResult,omitempty"`
}

// GenericSignature is one overload served by a generic handler.
type GenericSignature struct {
	MemberID  string `json:"memberId"`
	Signature string `json:"signature"`

	Params []Param `json:"params"`
	Return TypeRef `json:"return"`

	Entry string `json:"entry"`
	Hook  string `json:"hook"`

	Callback Callback     `json:"callback"`
	Tracking Tracking     `json:"tracking"`
	Default  DefaultValue `json:"default"`

	OutDefaults []OutDefault `json:"outDefaults,omitempty"`

	Sources []string `json:"sources"`
}

// GenericHandler instruments a group of type-parameterized overloads.
// State is kept per type-argument combination behind Accessor.
type GenericHandler struct {
	Name   string `json:"name"`
	Method string `json:"method"`
	Shared bool   `json:"shared"`

	TypeParams []GenericTypeParam `json:"typeParams"`

	// Accessor is the type-parameterized lookup, e.g. Of<T>().
	Accessor string `json:"accessor"`

	// Key is the TrackPerTypeArgument tracking that identifies a record.
	Key Tracking `json:"key"`

	Signatures []GenericSignature `json:"signatures"`
}

// EventInterceptor instruments an event.
type EventInterceptor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Event    string   `json:"event"`
	Contract string   `json:"contract"`
	Sources  []string `json:"sources"`

	Shape   EventShape `json:"shape"`
	Handler TypeRef    `json:"handler"`

	// RaiseParams and RaiseReturn describe the Raise entry point.
	RaiseParams []Param `json:"raiseParams"`
	RaiseReturn TypeRef `json:"raiseReturn"`

	// Tracking records the arguments of the last raise.
	Tracking Tracking `json:"tracking"`

	// Default is produced by Raise when nothing is subscribed and the
	// handler returns a value.
	Default DefaultValue `json:"default"`
}
