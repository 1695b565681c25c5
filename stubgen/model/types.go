// Package model defines the structural description consumed by the stub
// generator and the resolved generation unit it produces.
//
// Input types (ContractDescriptor, Member, EventMember, TypeRef) are written
// by an extraction provider and never mutated afterwards. Output types
// (Unit, the interceptor models, MethodGroup, DelegationEdge) are built once
// per request and handed to a renderer as final.
package model

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic codes reported during generation.
const (
	CodeArityMismatch    = "ARITY_MISMATCH"
	CodeNoMembers        = "NO_MEMBERS"
	CodeNoConstructor    = "NO_CONSTRUCTOR"
	CodeBuiltinType      = "BUILTIN_TYPE"
	CodeUnknownContract  = "UNKNOWN_CONTRACT"
	CodeInheritanceCycle = "INHERITANCE_CYCLE"
	CodeInvalidStub      = "INVALID_STUB"
)

// Diagnostic is a generation-time issue reported to the build.
// Diagnostics never abort a batch; an error-severity diagnostic only
// suppresses the unit of the stub it belongs to.
type Diagnostic struct {
	// Code is a machine-readable identifier (see the Code* constants).
	Code string `json:"code"`

	Severity Severity `json:"severity"`

	// Stub is the stub the diagnostic belongs to.
	Stub string `json:"stub"`

	// Contract is the contract that triggered the diagnostic, if any.
	Contract string `json:"contract,omitempty"`

	Message string `json:"message"`
}

// IsError reports whether the diagnostic suppresses its stub.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// ConfigError describes the configuration error generated code raises at
// call time when a member has no override and no usable default.
type ConfigError struct {
	Contract string `json:"contract"`
	Member   string `json:"member"`
	Reason   string `json:"reason"`
}

// Configuration error reasons.
const (
	ReasonStrict        = "strict"
	ReasonUnsatisfiable = "unsatisfiable"
	ReasonNoConstructor = "no_parameterless_constructor"
)
