package model

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Text encoding for enums. JSON output and YAML/JSON manifests spell enum
// values by name ("interface", "out", "taskOf"); numeric values are also
// accepted on input.

type enum interface {
	~int
	String() string
}

func unmarshalEnum[E enum](dst *E, text []byte, count int, what string) error {
	s := strings.TrimSpace(string(text))
	for i := 0; i < count; i++ {
		if strings.EqualFold(E(i).String(), s) {
			*dst = E(i)
			return nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < count {
		*dst = E(n)
		return nil
	}
	return errors.Newf("unknown %s %q", what, s)
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *Severity) UnmarshalText(b []byte) error {
	return unmarshalEnum(s, b, 2, "severity")
}

func (k TypeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *TypeKind) UnmarshalText(b []byte) error {
	return unmarshalEnum(k, b, int(TypeCallable)+1, "type kind")
}

func (k CollectionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *CollectionKind) UnmarshalText(b []byte) error {
	return unmarshalEnum(k, b, int(CollectionSet)+1, "collection kind")
}

func (k AsyncKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *AsyncKind) UnmarshalText(b []byte) error {
	return unmarshalEnum(k, b, int(AsyncValueTaskOf)+1, "async kind")
}

func (m ParamMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (m *ParamMode) UnmarshalText(b []byte) error {
	return unmarshalEnum(m, b, int(ModeIn)+1, "parameter mode")
}

func (k MemberKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *MemberKind) UnmarshalText(b []byte) error {
	return unmarshalEnum(k, b, int(MemberMethod)+1, "member kind")
}

func (s EventShape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *EventShape) UnmarshalText(b []byte) error {
	return unmarshalEnum(s, b, int(EventCustom)+1, "event shape")
}

func (k ContractKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *ContractKind) UnmarshalText(b []byte) error {
	return unmarshalEnum(k, b, int(ContractBuiltin)+1, "contract kind")
}

func (c Classification) MarshalText() ([]byte, error) { return []byte(c.String()), nil }
func (c *Classification) UnmarshalText(b []byte) error {
	return unmarshalEnum(c, b, int(ClassUnsatisfiable)+1, "classification")
}

func (s DefaultStrategy) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *DefaultStrategy) UnmarshalText(b []byte) error {
	return unmarshalEnum(s, b, int(DefaultCallSite)+1, "default strategy")
}

func (k TrackingKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *TrackingKind) UnmarshalText(b []byte) error {
	return unmarshalEnum(k, b, int(TrackPerTypeArgument)+1, "tracking kind")
}

func (k CallbackKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *CallbackKind) UnmarshalText(b []byte) error {
	return unmarshalEnum(k, b, int(CallbackCustom)+1, "callback kind")
}

func (k ConversionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *ConversionKind) UnmarshalText(b []byte) error {
	return unmarshalEnum(k, b, int(ConvertExplicit)+1, "conversion kind")
}
