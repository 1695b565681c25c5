package interceptor

import (
	"strconv"

	"github.com/broady/stubkit/stubgen/model"
)

// Entry point, hook and callable name stems. Shared interceptors number
// them per signature: Invoke1, OnCall1, FindDelegate1.
const (
	EntryName    = "Invoke"
	HookName     = "OnCall"
	CallableStem = "Delegate"
	AccessorName = "Of"
)

// signatureSuffix numbers signatures of shared groups from 1.
func signatureSuffix(shared bool, i int) string {
	if !shared {
		return ""
	}
	return strconv.Itoa(i + 1)
}

// Method builds the interceptor of a non-generic method group. overloads
// are the group's members in group order.
func (b *Builder) Method(g model.MethodGroup, overloads []model.FlatMember) model.MethodInterceptor {
	mi := model.MethodInterceptor{
		Name:     g.Name,
		Method:   g.Method,
		Shared:   g.Shared,
		Tracking: combinedTracking(g.Params),
	}
	for i, fm := range overloads {
		m := fm.Member
		suffix := signatureSuffix(g.Shared, i)
		sig := model.MethodSignature{
			MemberID:    fm.ID,
			Signature:   m.Signature(),
			Params:      m.Params,
			Return:      m.Type,
			Entry:       EntryName + suffix,
			Hook:        HookName + suffix,
			Tracking:    model.TrackArgs(trackedArgs(m.Params, nil)),
			Default:     b.Policy.Default(m.Contract, m.Name, m.Type),
			OutDefaults: b.outDefaults(b.Policy, m.Contract, m.Name, m.Params),
			Sources:     fm.Sources,
		}
		if needsCustomCallable(m.Params, m.Type) {
			sig.Callback = model.Callback{
				Kind:   model.CallbackCustom,
				Name:   g.Name + CallableStem + suffix,
				Params: b.withReceiver(m.Params),
				Return: m.Type,
			}
		} else {
			sig.Callback = *b.action(m.Params...)
		}
		mi.Signatures = append(mi.Signatures, sig)
	}
	return mi
}

// combinedTracking tracks the union of a group's parameters, output
// parameters excluded.
func combinedTracking(params []model.CombinedParam) model.Tracking {
	var args []model.TrackedArg
	for _, p := range params {
		if p.Mode == model.ModeOut {
			continue
		}
		args = append(args, model.TrackedArg{Name: p.Name, Type: p.Type, Optional: p.Optional})
	}
	return model.TrackArgs(args)
}
