// Package delegation detects members whose behaviour forwards to a more
// specific member of a related contract.
package delegation

import (
	"strconv"

	"github.com/broady/stubkit/stubgen/model"
)

// RelatedFunc reports whether one contract inherits from the other.
type RelatedFunc func(a, b string) bool

// Resolve returns one edge for each member that has a unique most specific
// counterpart: a same-kind, same-name, same-arity, non-generic member of a
// related contract that is at least as specific in every position and
// strictly more specific in at least one. Edges point at maximal members,
// so no target is ever a source. Edges are ordered like members.
func Resolve(members []model.FlatMember, related RelatedFunc) []model.DelegationEdge {
	buckets := map[string][]int{}
	for i, fm := range members {
		if fm.Member.IsGeneric() {
			continue
		}
		k := bucketKey(fm.Member)
		buckets[k] = append(buckets[k], i)
	}

	var edges []model.DelegationEdge
	for i, src := range members {
		if src.Member.IsGeneric() {
			continue
		}
		bucket := buckets[bucketKey(src.Member)]
		var maxima []int
		for _, j := range bucket {
			if j == i || !isRelated(src, members[j], related) || !MoreSpecific(members[j].Member, src.Member) {
				continue
			}
			if maximal(j, bucket, members, related) {
				maxima = append(maxima, j)
			}
		}
		if len(maxima) != 1 {
			continue
		}
		edges = append(edges, edge(src, members[maxima[0]]))
	}
	return edges
}

// Sources returns the set of member IDs that delegate.
func Sources(edges []model.DelegationEdge) map[string]bool {
	s := make(map[string]bool, len(edges))
	for _, e := range edges {
		s[e.Source] = true
	}
	return s
}

func maximal(j int, bucket []int, members []model.FlatMember, related RelatedFunc) bool {
	for _, k := range bucket {
		if k != j && isRelated(members[j], members[k], related) && MoreSpecific(members[k].Member, members[j].Member) {
			return false
		}
	}
	return true
}

func bucketKey(m model.Member) string {
	return m.Kind.String() + ":" + m.Name + "/" + strconv.Itoa(len(m.Params))
}

func isRelated(a, b model.FlatMember, related RelatedFunc) bool {
	for _, x := range a.Sources {
		for _, y := range b.Sources {
			if x != y && related(x, y) {
				return true
			}
		}
	}
	return false
}

// MoreSpecific reports whether b is strictly more specific than a.
// Parameters passed by reference must match exactly; accessors present on
// a must exist on b.
func MoreSpecific(b, a model.Member) bool {
	if b.Kind != a.Kind || b.Name != a.Name || len(b.Params) != len(a.Params) {
		return false
	}
	if a.HasGetter && !b.HasGetter || a.HasSetter && !b.HasSetter {
		return false
	}
	strict := false
	for i := range a.Params {
		pa, pb := a.Params[i], b.Params[i]
		if pa.Mode != pb.Mode {
			return false
		}
		if pa.Type.Equal(pb.Type) {
			continue
		}
		if pa.Mode != model.ModeValue || !pb.Type.Narrows(pa.Type) {
			return false
		}
		strict = true
	}
	if !a.Type.Equal(b.Type) {
		if !b.Type.Narrows(a.Type) {
			return false
		}
		strict = true
	}
	return strict
}

func edge(src, dst model.FlatMember) model.DelegationEdge {
	e := model.DelegationEdge{
		Source: src.ID,
		Target: dst.ID,
		Return: convert(dst.Member.Type, src.Member.Type, model.ConvertImplicit),
	}
	for i, p := range src.Member.Params {
		e.Params = append(e.Params, convert(p.Type, dst.Member.Params[i].Type, model.ConvertExplicit))
	}
	if src.Member.Kind != model.MemberMethod && src.Member.HasSetter {
		c := convert(src.Member.Type, dst.Member.Type, model.ConvertExplicit)
		e.Setter = &c
	}
	return e
}

func convert(from, to model.TypeRef, kind model.ConversionKind) model.Conversion {
	if from.Equal(to) {
		kind = model.ConvertNone
	}
	return model.Conversion{Kind: kind, From: from, To: to}
}
