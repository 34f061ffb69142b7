// Package recognizer lowers a DFA with arbitrary state values into a dense
// table over integer state ids. The table is the contract between
// determinization and every code generation backend.
package recognizer

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/KromDaniel/regdfa/internal/automaton"
	"github.com/KromDaniel/regdfa/internal/dfa"
)

// Edge is a key of the dense transition table.
type Edge[I comparable] struct {
	State  int
	Symbol I
}

// Branch is one outgoing transition of a state.
type Branch[I comparable] struct {
	Symbol I
	Target int
}

// Table is a DFA over the dense state ids 0..NumStates-1.
type Table[I comparable] struct {
	start     int
	accept    []int
	acceptSet mapset.Set[int]
	next      map[Edge[I]]int
	order     []Edge[I]
	numStates int
}

// FromDFA re-indexes d. Ids are handed out in first-seen order while the
// transition function is scanned (source before target); the start state
// and accept states that appear in no transition get the next free ids.
func FromDFA[S comparable, I comparable](d *dfa.DFA[S, I]) *Table[I] {
	ids := make(map[S]int)
	id := func(s S) int {
		if v, ok := ids[s]; ok {
			return v
		}
		v := len(ids)
		ids[s] = v
		return v
	}

	t := &Table[I]{
		next:      make(map[Edge[I]]int, d.NumTransitions()),
		acceptSet: mapset.NewThreadUnsafeSet[int](),
	}
	for e, to := range d.Transitions() {
		key := Edge[I]{State: id(e.From), Symbol: e.Symbol}
		t.next[key] = id(to)
		t.order = append(t.order, key)
	}
	t.start = id(d.Start())
	for _, s := range d.AcceptStates() {
		if t.acceptSet.Add(id(s)) {
			t.accept = append(t.accept, id(s))
		}
	}
	slices.Sort(t.accept)
	t.numStates = len(ids)
	return t
}

// Start returns the start id.
func (t *Table[I]) Start() int {
	return t.start
}

// Accept returns the accept ids in ascending order.
func (t *Table[I]) Accept() []int {
	return slices.Clone(t.accept)
}

// IsAccepting reports whether id is an accept id.
func (t *Table[I]) IsAccepting(id int) bool {
	return t.acceptSet.Contains(id)
}

// NumStates returns the number of dense ids.
func (t *Table[I]) NumStates() int {
	return t.numStates
}

// NumTransitions returns the size of the flat transition table.
func (t *Table[I]) NumTransitions() int {
	return len(t.order)
}

// Next returns the target of (state, symbol).
func (t *Table[I]) Next(state int, symbol I) (int, bool) {
	to, ok := t.next[Edge[I]{State: state, Symbol: symbol}]
	return to, ok
}

// Branches groups transitions by source id. Both the returned source ids
// and the branches of each source keep the table's scan order.
func (t *Table[I]) Branches() ([]int, map[int][]Branch[I]) {
	var sources []int
	groups := make(map[int][]Branch[I])
	for _, e := range t.order {
		if _, ok := groups[e.State]; !ok {
			sources = append(sources, e.State)
		}
		groups[e.State] = append(groups[e.State], Branch[I]{Symbol: e.Symbol, Target: t.next[e]})
	}
	return sources, groups
}

// Run simulates the table the way a generated program does.
func (t *Table[I]) Run(input []I) automaton.Trace[int] {
	state := t.start
	states := make([]int, 0, len(input)+1)
	for _, symbol := range input {
		states = append(states, state)
		next, ok := t.next[Edge[I]{State: state, Symbol: symbol}]
		if !ok {
			return automaton.Halt(states)
		}
		state = next
	}
	states = append(states, state)
	return automaton.NewTrace(t.IsAccepting(state), states)
}

// Match reports whether input is accepted.
func (t *Table[I]) Match(input []I) bool {
	return t.Run(input).Accept()
}
