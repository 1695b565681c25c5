// Package naming assigns unique interceptor names within a stub.
//
// Resolution is a single pass over the complete candidate list, so the
// chosen names depend only on the candidates and never on the order they
// were discovered in.
package naming

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/broady/stubkit/stubgen/model"
)

// IndexerName is the interceptor name of a stub's only indexer.
const IndexerName = "Indexer"

// Kind is the resolution phase of a candidate.
type Kind int

const (
	KindProperty Kind = iota
	KindIndexer
	KindGroup
	KindEvent
)

// phase returns the resolution phase: properties and indexers share the
// first phase, then method groups, then events.
func (k Kind) phase() int {
	switch k {
	case KindProperty, KindIndexer:
		return 0
	case KindGroup:
		return 1
	default:
		return 2
	}
}

// Candidate is one interceptor that needs a name.
type Candidate struct {
	// ID identifies the interceptor (member key or group ID).
	ID   string
	Kind Kind

	// Declared is the declared member name.
	Declared string

	// Name is the requested name before collision resolution.
	Name string

	Depth     int
	Contract  string
	Signature string
}

// Resolve assigns a unique name to every candidate. A requested name
// already used, or listed in reserved, is suffixed with 2, 3, ... until
// free. The returned bindings are in resolution order.
func Resolve(candidates []Candidate, reserved []string) []model.NameBinding {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, compare)

	used := make(map[string]bool, len(reserved)+len(sorted))
	for _, r := range reserved {
		used[r] = true
	}

	out := make([]model.NameBinding, 0, len(sorted))
	for _, c := range sorted {
		base := Identifier(c.Name)
		name := base
		for i := 2; used[name]; i++ {
			name = base + strconv.Itoa(i)
		}
		used[name] = true
		out = append(out, model.NameBinding{ID: c.ID, Name: name})
	}
	return out
}

func compare(a, b Candidate) int {
	return cmp.Or(
		cmp.Compare(a.Kind.phase(), b.Kind.phase()),
		cmp.Compare(a.Declared, b.Declared),
		cmp.Compare(a.Depth, b.Depth),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Contract, b.Contract),
		cmp.Compare(a.Signature, b.Signature),
		cmp.Compare(a.ID, b.ID),
	)
}

// IndexerNames returns the requested name of each indexer, keyed by member
// ID: IndexerName when there is exactly one, otherwise IndexerName
// followed by the friendly key type names.
func IndexerNames(indexers []model.FlatMember) map[string]string {
	names := make(map[string]string, len(indexers))
	if len(indexers) == 1 {
		names[indexers[0].ID] = IndexerName
		return names
	}
	for _, ix := range indexers {
		name := IndexerName
		for _, p := range ix.Member.Params {
			name += FriendlyTypeName(p.Type)
		}
		names[ix.ID] = name
	}
	return names
}

// Map turns bindings into an ID → name lookup.
func Map(bindings []model.NameBinding) map[string]string {
	m := make(map[string]string, len(bindings))
	for _, b := range bindings {
		m[b.ID] = b.Name
	}
	return m
}
