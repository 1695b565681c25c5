// Package flatten walks the inheritance graph of a stub's target contracts
// and produces one entry per member identity.
//
// Members reached through several paths (diamonds), members hidden by an
// identical redeclaration and identical members of unrelated contracts all
// collapse into a single FlatMember whose Sources list every declaring
// contract.
package flatten

import (
	"fmt"
	"slices"
	"strings"

	"github.com/broady/stubkit/stubgen/model"
)

// Result is the flattened view of one stub.
type Result struct {
	// Contracts lists every contract reached, in first-visit order.
	Contracts []string

	Members []model.FlatMember
	Events  []model.FlatEvent

	// Ancestors maps each reached contract to its transitive bases.
	Ancestors map[string]map[string]bool

	Diagnostics []model.Diagnostic
}

// Related reports whether one of a and b inherits from the other.
func (r *Result) Related(a, b string) bool {
	if a == b {
		return true
	}
	return r.Ancestors[a][b] || r.Ancestors[b][a]
}

// Flatten flattens the targets of stub. Targets missing from index are
// skipped; callers validate them beforehand. Unknown bases and inheritance
// cycles are reported as warnings and cut.
func Flatten(stub model.StubRequest, index map[string]*model.ContractDescriptor) Result {
	w := &walker{
		stub:     stub,
		index:    index,
		visited:  map[string]int{},
		onStack:  map[string]bool{},
		members:  map[string]int{},
		events:   map[string]int{},
		reported: map[string]bool{},
		result:   Result{Ancestors: map[string]map[string]bool{}},
	}
	for _, target := range stub.Targets {
		c, ok := index[target.ID]
		if !ok {
			continue
		}
		w.walk(c, TargetBindings(stub, c, target), 0)
	}
	for _, id := range w.result.Contracts {
		w.result.Ancestors[id] = Ancestors(id, index)
	}
	return w.result
}

// TargetBindings returns the type-parameter bindings of a direct target.
// Template contracts bind positionally to the stub's own type parameters;
// bound contracts bind to the reference's type arguments.
func TargetBindings(stub model.StubRequest, c *model.ContractDescriptor, ref model.ContractRef) map[string]model.TypeRef {
	if len(c.TypeParams) == 0 {
		return nil
	}
	b := make(map[string]model.TypeRef, len(c.TypeParams))
	for i, tp := range c.TypeParams {
		switch {
		case i < len(ref.TypeArgs):
			b[tp.Name] = ref.TypeArgs[i]
		case c.IsTemplate && i < len(stub.TypeParams):
			b[tp.Name] = model.ParamRef(stub.TypeParams[i].Name)
		}
	}
	return b
}

type walker struct {
	stub  model.StubRequest
	index map[string]*model.ContractDescriptor

	// visited maps a contract instance to the shallowest depth it was
	// walked at.
	visited map[string]int
	onStack map[string]bool

	members  map[string]int // member key -> index in result.Members
	events   map[string]int // event key -> index in result.Events
	reported map[string]bool

	result Result
}

func (w *walker) walk(c *model.ContractDescriptor, bindings map[string]model.TypeRef, depth int) {
	inst := instanceKey(c, bindings)
	if d, ok := w.visited[inst]; ok && d <= depth {
		return
	}
	if _, ok := w.visited[inst]; !ok && !slices.Contains(w.result.Contracts, c.ID) {
		w.result.Contracts = append(w.result.Contracts, c.ID)
	}
	w.visited[inst] = depth
	w.onStack[c.ID] = true
	defer delete(w.onStack, c.ID)

	for _, m := range c.Members {
		m.Contract = c.ID
		w.addMember(m.Substitute(bindings), depth)
	}
	for _, e := range c.Events {
		e.Contract = c.ID
		w.addEvent(e.Substitute(bindings), depth)
	}

	for _, base := range c.Bases {
		bc, ok := w.index[base.ID]
		if !ok {
			w.warn(model.CodeUnknownContract, base.ID,
				fmt.Sprintf("base contract %q of %q is not described", base.ID, c.ID))
			continue
		}
		if w.onStack[base.ID] {
			w.warn(model.CodeInheritanceCycle, base.ID,
				fmt.Sprintf("inheritance cycle through %q and %q", c.ID, base.ID))
			continue
		}
		w.walk(bc, baseBindings(bc, base, bindings), depth+1)
	}
}

func (w *walker) addMember(m model.Member, depth int) {
	key := m.Key()
	i, ok := w.members[key]
	if !ok {
		w.members[key] = len(w.result.Members)
		w.result.Members = append(w.result.Members, model.FlatMember{
			ID:      key,
			Member:  m,
			Depth:   depth,
			Sources: []string{m.Contract},
		})
		return
	}
	fm := &w.result.Members[i]
	if !slices.Contains(fm.Sources, m.Contract) {
		fm.Sources = append(fm.Sources, m.Contract)
	}
	kept := fm.Member
	if depth < fm.Depth {
		fm.Depth = depth
		fm.Member = m
	}
	fm.Member = mergeAccessors(fm.Member, kept, m)
}

// mergeAccessors returns into with the accessors of a and b combined, so
// the collapsed member satisfies every declaration. A plain setter
// supersedes an init-only one.
func mergeAccessors(into, a, b model.Member) model.Member {
	if into.Kind == model.MemberMethod {
		return into
	}
	plainSetter := func(m model.Member) bool { return m.HasSetter && !m.InitOnly }
	into.HasGetter = a.HasGetter || b.HasGetter
	into.HasSetter = a.HasSetter || b.HasSetter
	into.InitOnly = (a.InitOnly || b.InitOnly) && !plainSetter(a) && !plainSetter(b)
	return into
}

func (w *walker) addEvent(e model.EventMember, depth int) {
	key := e.Key()
	i, ok := w.events[key]
	if !ok {
		w.events[key] = len(w.result.Events)
		w.result.Events = append(w.result.Events, model.FlatEvent{
			ID:      key,
			Event:   e,
			Depth:   depth,
			Sources: []string{e.Contract},
		})
		return
	}
	fe := &w.result.Events[i]
	if !slices.Contains(fe.Sources, e.Contract) {
		fe.Sources = append(fe.Sources, e.Contract)
	}
	if depth < fe.Depth {
		fe.Depth = depth
		fe.Event = e
	}
}

func (w *walker) warn(code, contract, msg string) {
	k := code + "\x00" + contract + "\x00" + msg
	if w.reported[k] {
		return
	}
	w.reported[k] = true
	w.result.Diagnostics = append(w.result.Diagnostics, model.Diagnostic{
		Code:     code,
		Severity: model.SeverityWarning,
		Stub:     w.stub.Name,
		Contract: contract,
		Message:  msg,
	})
}

// baseBindings binds the base contract's type parameters to the base
// reference's arguments, expressed in the deriving contract's bindings.
func baseBindings(base *model.ContractDescriptor, ref model.ContractRef, outer map[string]model.TypeRef) map[string]model.TypeRef {
	if len(base.TypeParams) == 0 {
		return nil
	}
	b := make(map[string]model.TypeRef, len(base.TypeParams))
	for i, tp := range base.TypeParams {
		if i < len(ref.TypeArgs) {
			b[tp.Name] = ref.TypeArgs[i].Substitute(outer)
		}
	}
	return b
}

// instanceKey identifies a contract together with its type bindings.
func instanceKey(c *model.ContractDescriptor, bindings map[string]model.TypeRef) string {
	if len(c.TypeParams) == 0 {
		return c.ID
	}
	args := make([]string, len(c.TypeParams))
	for i, tp := range c.TypeParams {
		if t, ok := bindings[tp.Name]; ok {
			args[i] = t.String()
		} else {
			args[i] = tp.Name
		}
	}
	return c.ID + "<" + strings.Join(args, ", ") + ">"
}

// Ancestors returns the transitive bases of id. Unknown bases are
// included by ID; cycles terminate.
func Ancestors(id string, index map[string]*model.ContractDescriptor) map[string]bool {
	seen := map[string]bool{}
	var visit func(string)
	visit = func(cur string) {
		c, ok := index[cur]
		if !ok {
			return
		}
		for _, b := range c.Bases {
			if seen[b.ID] {
				continue
			}
			seen[b.ID] = true
			visit(b.ID)
		}
	}
	visit(id)
	delete(seen, id)
	return seen
}
