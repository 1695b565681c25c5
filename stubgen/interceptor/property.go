package interceptor

import "github.com/broady/stubkit/stubgen/model"

// Property builds the interceptor of a property member.
func (b *Builder) Property(fm model.FlatMember, name string) model.PropertyInterceptor {
	m := fm.Member
	pi := model.PropertyInterceptor{
		ID:        fm.ID,
		Name:      name,
		Property:  m.Name,
		Contract:  m.Contract,
		Sources:   fm.Sources,
		Type:      m.Type,
		HasGetter: m.HasGetter,
		HasSetter: m.HasSetter,
		InitOnly:  m.InitOnly,

		// Without a plain setter the contract surface cannot write the
		// slot, so it is exposed to tests directly.
		MutableStorage: !m.HasSetter || m.InitOnly,

		Default: b.Policy.Default(m.Contract, m.Name, m.Type),
	}
	if m.HasGetter {
		pi.OnGet = b.function(m.Type)
	}
	if m.HasSetter || m.InitOnly {
		value := model.Param{Name: "value", Type: m.Type}
		pi.LastSet = &model.TrackedArg{Name: value.Name, Type: value.Type}
		pi.OnSet = b.action(value)
	}
	return pi
}

// Indexer builds the interceptor of an indexer member. The key is the
// single parameter or a tuple of all of them.
func (b *Builder) Indexer(fm model.FlatMember, name string) model.IndexerInterceptor {
	m := fm.Member
	member := m.Name
	if member == "" {
		member = "this[]"
	}
	ii := model.IndexerInterceptor{
		ID:        fm.ID,
		Name:      name,
		Contract:  m.Contract,
		Sources:   fm.Sources,
		Keys:      m.Params,
		Key:       model.TrackArgs(trackedArgs(m.Params, nil)),
		Value:     m.Type,
		HasGetter: m.HasGetter,
		HasSetter: m.HasSetter,
		Storage:   true,
		Default:   b.Policy.Default(m.Contract, member, m.Type),
	}
	if m.HasGetter {
		ii.OnGet = b.function(m.Type, m.Params...)
	}
	if m.HasSetter {
		params := append(append([]model.Param(nil), m.Params...), model.Param{Name: "value", Type: m.Type})
		ii.OnSet = b.action(params...)
	}
	return ii
}
