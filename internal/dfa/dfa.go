// Package dfa implements deterministic finite automata over arbitrary
// comparable state and symbol types.
package dfa

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/KromDaniel/regdfa/internal/automaton"
)

// ErrNondeterministic is returned when a transition would give a second
// target to an existing (state, symbol) pair.
var ErrNondeterministic = errors.New("dfa: conflicting transition")

// Edge is the key of the transition function.
type Edge[S comparable, I comparable] struct {
	From   S
	Symbol I
}

// DFA is a deterministic automaton. Unmapped (state, symbol) pairs reject.
// Transitions and accept states remember their insertion order so that
// everything derived from a DFA (dense tables, generated programs) is
// reproducible.
type DFA[S comparable, I comparable] struct {
	start       S
	accept      mapset.Set[S]
	acceptOrder []S
	transitions map[Edge[S, I]]S
	order       []Edge[S, I]
}

// New creates a DFA with the given start state and no transitions.
func New[S comparable, I comparable](start S) *DFA[S, I] {
	return &DFA[S, I]{
		start:       start,
		accept:      mapset.NewThreadUnsafeSet[S](),
		transitions: make(map[Edge[S, I]]S),
	}
}

// AddAccept marks states as accepting.
func (d *DFA[S, I]) AddAccept(states ...S) {
	for _, s := range states {
		if d.accept.Add(s) {
			d.acceptOrder = append(d.acceptOrder, s)
		}
	}
}

// AddTransition sets the target of (from, symbol). Re-adding the same
// target is a no-op; a different target fails with ErrNondeterministic.
func (d *DFA[S, I]) AddTransition(from S, symbol I, to S) error {
	key := Edge[S, I]{From: from, Symbol: symbol}
	if existing, ok := d.transitions[key]; ok {
		if existing == to {
			return nil
		}
		return fmt.Errorf("%w: (%v, %v) -> %v already maps to %v", ErrNondeterministic, from, symbol, to, existing)
	}
	d.transitions[key] = to
	d.order = append(d.order, key)
	return nil
}

// Start returns the start state.
func (d *DFA[S, I]) Start() S {
	return d.start
}

// IsAccepting reports whether s is an accept state.
func (d *DFA[S, I]) IsAccepting(s S) bool {
	return d.accept.Contains(s)
}

// AcceptStates returns the accept states in insertion order.
func (d *DFA[S, I]) AcceptStates() []S {
	return slices.Clone(d.acceptOrder)
}

// Step returns the target of (from, symbol).
func (d *DFA[S, I]) Step(from S, symbol I) (S, bool) {
	to, ok := d.transitions[Edge[S, I]{From: from, Symbol: symbol}]
	return to, ok
}

// Transitions iterates the transition function in insertion order.
func (d *DFA[S, I]) Transitions() iter.Seq2[Edge[S, I], S] {
	return func(yield func(Edge[S, I], S) bool) {
		for _, e := range d.order {
			if !yield(e, d.transitions[e]) {
				return
			}
		}
	}
}

// NumTransitions returns the size of the transition function.
func (d *DFA[S, I]) NumTransitions() int {
	return len(d.order)
}

// States returns every state mentioned by the automaton: the start state,
// then sources and targets in transition order, then accept-only states.
func (d *DFA[S, I]) States() []S {
	seen := mapset.NewThreadUnsafeSet[S]()
	var states []S
	visit := func(s S) {
		if seen.Add(s) {
			states = append(states, s)
		}
	}
	visit(d.start)
	for e, to := range d.Transitions() {
		visit(e.From)
		visit(to)
	}
	for _, s := range d.acceptOrder {
		visit(s)
	}
	return states
}

// Prune returns a copy restricted to the states reachable from the start.
func (d *DFA[S, I]) Prune() *DFA[S, I] {
	out := make(map[S][]Edge[S, I])
	for _, e := range d.order {
		out[e.From] = append(out[e.From], e)
	}

	reachable := mapset.NewThreadUnsafeSet(d.start)
	queue := []S{d.start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, e := range out[s] {
			if to := d.transitions[e]; reachable.Add(to) {
				queue = append(queue, to)
			}
		}
	}

	pruned := New[S, I](d.start)
	for _, e := range d.order {
		if reachable.Contains(e.From) {
			pruned.transitions[e] = d.transitions[e]
			pruned.order = append(pruned.order, e)
		}
	}
	for _, s := range d.acceptOrder {
		if reachable.Contains(s) {
			pruned.AddAccept(s)
		}
	}
	return pruned
}

// Run walks the transition function over input. The current state is
// recorded before each symbol is consumed. An unmapped pair stops the walk
// and yields a halted, non-accepting trace.
func (d *DFA[S, I]) Run(input []I) automaton.Trace[S] {
	state := d.start
	states := make([]S, 0, len(input)+1)
	for _, symbol := range input {
		states = append(states, state)
		next, ok := d.transitions[Edge[S, I]{From: state, Symbol: symbol}]
		if !ok {
			return automaton.Halt(states)
		}
		state = next
	}
	states = append(states, state)
	return automaton.NewTrace(d.IsAccepting(state), states)
}
