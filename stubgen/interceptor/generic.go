package interceptor

import "github.com/broady/stubkit/stubgen/model"

// Generic builds the handler of a generic method group. Every overload's
// type parameters are renamed positionally to those of the first overload
// so that one accessor serves the group.
func (b *Builder) Generic(g model.MethodGroup, overloads []model.FlatMember) model.GenericHandler {
	gh := model.GenericHandler{
		Name:     g.Name,
		Method:   g.Method,
		Shared:   g.Shared,
		Accessor: AccessorName,
	}
	if len(overloads) == 0 {
		return gh
	}

	tps := overloads[0].Member.TypeParams
	names := make([]string, len(tps))
	for i, tp := range tps {
		names[i] = tp.Name
		gh.TypeParams = append(gh.TypeParams, model.GenericTypeParam{
			Name:        tp.Name,
			Constraints: tp,
			Forward: model.TypeParam{
				Name:   tp.Name,
				Class:  tp.Class,
				Struct: tp.Struct,
			},
			NullableResult: nullableResult(tp),
		})
	}
	gh.Key = model.Tracking{Kind: model.TrackPerTypeArgument, TypeParams: names}

	for i, fm := range overloads {
		m := rename(fm.Member, names)
		policy := b.Policy.With(m.TypeParams)
		exclude := m.TypeParamSet()
		suffix := signatureSuffix(g.Shared, i)

		sig := model.GenericSignature{
			MemberID:    fm.ID,
			Signature:   m.Signature(),
			Params:      m.Params,
			Return:      m.Type,
			Entry:       EntryName + suffix,
			Hook:        HookName + suffix,
			Tracking:    model.TrackArgs(trackedArgs(m.Params, exclude)),
			Default:     policy.Default(m.Contract, m.Name, m.Type),
			OutDefaults: b.outDefaults(policy, m.Contract, m.Name, m.Params),
			Sources:     fm.Sources,
		}
		if needsCustomCallable(m.Params, m.Type) {
			sig.Callback = model.Callback{
				Kind:       model.CallbackCustom,
				Name:       g.Name + CallableStem + suffix,
				TypeParams: names,
				Params:     b.withReceiver(m.Params),
				Return:     m.Type,
			}
		} else {
			sig.Callback = *b.action(m.Params...)
		}
		gh.Signatures = append(gh.Signatures, sig)
	}
	return gh
}

// rename renames m's type parameters to names by position.
func rename(m model.Member, names []string) model.Member {
	bindings := map[string]model.TypeRef{}
	for i, tp := range m.TypeParams {
		if i < len(names) && tp.Name != names[i] {
			bindings[tp.Name] = model.ParamRef(names[i])
		}
	}
	if len(bindings) == 0 {
		return m
	}
	out := m
	out.Type = m.Type.Substitute(bindings)
	out.Params = make([]model.Param, len(m.Params))
	for i, p := range m.Params {
		p.Type = p.Type.Substitute(bindings)
		out.Params[i] = p
	}
	out.TypeParams = make([]model.TypeParam, len(m.TypeParams))
	for i, tp := range m.TypeParams {
		tp.Name = names[i]
		ifaces := make([]model.TypeRef, len(tp.Interfaces))
		for j, c := range tp.Interfaces {
			ifaces[j] = c.Substitute(bindings)
		}
		if len(ifaces) == 0 {
			ifaces = nil
		}
		tp.Interfaces = ifaces
		out.TypeParams[i] = tp
	}
	return out
}
