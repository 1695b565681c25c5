// Package overload partitions same-named methods into interceptor groups.
package overload

import (
	"slices"
	"strconv"

	"github.com/broady/stubkit/stubgen/model"
)

// GenericSuffix is appended to the generic side of a split name group.
const GenericSuffix = "Generic"

// Group partitions the methods among members into groups. Name groups are
// emitted in order of first declaration. A name group mixing generic and
// non-generic overloads is split first, and each side is then checked for
// compatibility on its own: a compatible side shares one interceptor, an
// incompatible one gets an independently numbered group per overload.
func Group(members []model.FlatMember) []model.MethodGroup {
	var order []string
	byName := map[string][]model.FlatMember{}
	for _, fm := range members {
		if fm.Member.Kind != model.MemberMethod {
			continue
		}
		name := fm.Member.Name
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		byName[name] = append(byName[name], fm)
	}

	var groups []model.MethodGroup
	for _, name := range order {
		var plain, generic []model.FlatMember
		for _, fm := range byName[name] {
			if fm.Member.IsGeneric() {
				generic = append(generic, fm)
			} else {
				plain = append(plain, fm)
			}
		}
		split := len(plain) > 0 && len(generic) > 0
		groups = append(groups, partition(name, name, plain, false)...)
		genericName := name
		if split {
			genericName = name + GenericSuffix
		}
		groups = append(groups, partition(name, genericName, generic, true)...)
	}
	return groups
}

func partition(method, candidate string, overloads []model.FlatMember, generic bool) []model.MethodGroup {
	if len(overloads) == 0 {
		return nil
	}
	if AllCompatible(overloads) {
		return []model.MethodGroup{newGroup(method, candidate, generic, 0, overloads)}
	}
	groups := make([]model.MethodGroup, len(overloads))
	for i, fm := range overloads {
		groups[i] = newGroup(method, candidate+strconv.Itoa(i+1), generic, i+1, []model.FlatMember{fm})
	}
	return groups
}

func newGroup(method, candidate string, generic bool, index int, overloads []model.FlatMember) model.MethodGroup {
	g := model.MethodGroup{
		ID:        "group:" + method + "/" + candidate,
		Method:    method,
		Candidate: candidate,
		Generic:   generic,
		Shared:    len(overloads) > 1,
		Index:     index,
		Params:    CombineParams(overloads),
		Depth:     overloads[0].Depth,
	}
	for _, fm := range overloads {
		g.Members = append(g.Members, fm.ID)
		g.Depth = min(g.Depth, fm.Depth)
	}
	return g
}

// AllCompatible reports whether every pair of overloads is compatible.
func AllCompatible(overloads []model.FlatMember) bool {
	for i := range overloads {
		for j := i + 1; j < len(overloads); j++ {
			if !Compatible(overloads[i].Member, overloads[j].Member) {
				return false
			}
		}
	}
	return true
}

// Compatible reports whether a and b may share one interceptor: every
// parameter name present in both has the same type and mode, and either
// the return types match or the parameter-name sets are identical.
// Generic overloads must also declare the same number of type parameters.
func Compatible(a, b model.Member) bool {
	if len(a.TypeParams) != len(b.TypeParams) {
		return false
	}
	pa, pb := a.Positional(), b.Positional()
	for _, x := range a.Params {
		for _, y := range b.Params {
			if x.Name != y.Name {
				continue
			}
			if x.Mode != y.Mode || !x.Type.Substitute(pa).Equal(y.Type.Substitute(pb)) {
				return false
			}
		}
	}
	if a.Type.Substitute(pa).Equal(b.Type.Substitute(pb)) {
		return true
	}
	return sameNames(a.Params, b.Params)
}

func sameNames(a, b []model.Param) bool {
	if len(a) != len(b) {
		return false
	}
	na := paramNames(a)
	nb := paramNames(b)
	slices.Sort(na)
	slices.Sort(nb)
	return slices.Equal(na, nb)
}

func paramNames(ps []model.Param) []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// CombineParams returns the union of parameter names across overloads in
// first-appearance order. A parameter missing from any overload is
// Optional.
func CombineParams(overloads []model.FlatMember) []model.CombinedParam {
	var out []model.CombinedParam
	count := map[string]int{}
	for _, fm := range overloads {
		for _, p := range fm.Member.Params {
			if count[p.Name] == 0 {
				out = append(out, model.CombinedParam{Name: p.Name, Type: p.Type, Mode: p.Mode})
			}
			count[p.Name]++
		}
	}
	for i := range out {
		out[i].Optional = count[out[i].Name] < len(overloads)
	}
	return out
}
