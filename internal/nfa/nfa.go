// Package nfa implements nondeterministic finite automata with epsilon
// transitions: the Thompson combinators, epsilon closure, simulation,
// lowering of parsed patterns and subset construction.
package nfa

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/KromDaniel/regdfa/internal/automaton"
)

// ErrConsumed is the panic value raised when an automaton is reused after
// being passed to a combinator.
var ErrConsumed = errors.New("nfa: automaton already consumed by a combinator")

// Label is a transition label: epsilon or an input symbol.
type Label[I comparable] struct {
	symbol  I
	epsilon bool
}

// Epsilon returns the empty-move label.
func Epsilon[I comparable]() Label[I] {
	return Label[I]{epsilon: true}
}

// Symbol returns a label consuming i.
func Symbol[I comparable](i I) Label[I] {
	return Label[I]{symbol: i}
}

// IsEpsilon reports whether the label consumes no input.
func (l Label[I]) IsEpsilon() bool {
	return l.epsilon
}

// Symbol returns the consumed symbol; ok is false for epsilon.
func (l Label[I]) Symbol() (symbol I, ok bool) {
	return l.symbol, !l.epsilon
}

func (l Label[I]) String() string {
	if l.epsilon {
		return "ε"
	}
	if r, ok := any(l.symbol).(rune); ok {
		return string(r)
	}
	return fmt.Sprint(l.symbol)
}

// Key is the domain of the transition relation.
type Key[S comparable, I comparable] struct {
	State S
	Label Label[I]
}

// NFA is a nondeterministic automaton. A key of the transition relation may
// map to any number of states and the graph may be cyclic.
//
// Labels leaving each state are kept in insertion order so that closures,
// determinization and everything downstream are reproducible.
type NFA[S comparable, I comparable] struct {
	start       S
	accept      mapset.Set[S]
	acceptOrder []S
	transitions map[Key[S, I]]mapset.Set[S]
	targets     map[Key[S, I]][]S
	out         map[S][]Label[I]
	sources     []S
	consumed    bool
}

// New creates an automaton with the given start and accept states.
func New[S comparable, I comparable](start S, accept ...S) *NFA[S, I] {
	n := &NFA[S, I]{
		start:       start,
		accept:      mapset.NewThreadUnsafeSet[S](),
		transitions: make(map[Key[S, I]]mapset.Set[S]),
		targets:     make(map[Key[S, I]][]S),
		out:         make(map[S][]Label[I]),
	}
	n.AddAccept(accept...)
	return n
}

// AddAccept marks states as accepting.
func (n *NFA[S, I]) AddAccept(states ...S) {
	for _, s := range states {
		if n.accept.Add(s) {
			n.acceptOrder = append(n.acceptOrder, s)
		}
	}
}

// AddTransition adds edges from state to every target under label.
func (n *NFA[S, I]) AddTransition(from S, label Label[I], to ...S) {
	key := Key[S, I]{State: from, Label: label}
	set, ok := n.transitions[key]
	if !ok {
		set = mapset.NewThreadUnsafeSet[S]()
		n.transitions[key] = set
		if _, known := n.out[from]; !known {
			n.sources = append(n.sources, from)
		}
		n.out[from] = append(n.out[from], label)
	}
	for _, t := range to {
		if set.Add(t) {
			n.targets[key] = append(n.targets[key], t)
		}
	}
}

// Start returns the start state.
func (n *NFA[S, I]) Start() S {
	return n.start
}

// IsAccepting reports whether s is an accept state.
func (n *NFA[S, I]) IsAccepting(s S) bool {
	return n.accept.Contains(s)
}

// AcceptStates returns the accept states in insertion order.
func (n *NFA[S, I]) AcceptStates() []S {
	return slices.Clone(n.acceptOrder)
}

// Labels returns the labels leaving state in insertion order.
func (n *NFA[S, I]) Labels(state S) []Label[I] {
	return n.out[state]
}

// Successors returns the direct targets of (state, label).
func (n *NFA[S, I]) Successors(state S, label Label[I]) mapset.Set[S] {
	if set, ok := n.transitions[Key[S, I]{State: state, Label: label}]; ok {
		return set.Clone()
	}
	return mapset.NewThreadUnsafeSet[S]()
}

// Edges iterates the transition relation in insertion order: grouped by
// source state, then by label, then by target.
func (n *NFA[S, I]) Edges() iter.Seq2[Key[S, I], []S] {
	return func(yield func(Key[S, I], []S) bool) {
		for _, from := range n.sources {
			for _, label := range n.out[from] {
				key := Key[S, I]{State: from, Label: label}
				if !yield(key, slices.Clone(n.targets[key])) {
					return
				}
			}
		}
	}
}

// NumTransitions returns the number of (state, label, target) edges.
func (n *NFA[S, I]) NumTransitions() int {
	total := 0
	for _, set := range n.transitions {
		total += set.Cardinality()
	}
	return total
}

// States returns the state universe: every state appearing as a source or a
// destination of the transition relation, plus the start and accept states,
// in first-seen order.
func (n *NFA[S, I]) States() []S {
	seen := mapset.NewThreadUnsafeSet[S]()
	var states []S
	visit := func(s S) {
		if seen.Add(s) {
			states = append(states, s)
		}
	}
	visit(n.start)
	for key, targets := range n.Edges() {
		visit(key.State)
		for _, t := range targets {
			visit(t)
		}
	}
	for _, s := range n.acceptOrder {
		visit(s)
	}
	return states
}

// Closure returns the epsilon closure of seed: every state reachable from
// it through epsilon edges alone, seed included. The walk uses an explicit
// worklist, so epsilon cycles are fine.
func (n *NFA[S, I]) Closure(seed mapset.Set[S]) mapset.Set[S] {
	closure := seed.Clone()
	worklist := seed.ToSlice()
	eps := Epsilon[I]()
	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		targets, ok := n.transitions[Key[S, I]{State: s, Label: eps}]
		if !ok {
			continue
		}
		for _, t := range targets.ToSlice() {
			if closure.Add(t) {
				worklist = append(worklist, t)
			}
		}
	}
	return closure
}

// move returns the direct symbol successors of every state in set.
func (n *NFA[S, I]) move(set mapset.Set[S], label Label[I]) mapset.Set[S] {
	next := mapset.NewThreadUnsafeSet[S]()
	set.Each(func(s S) bool {
		if targets, ok := n.transitions[Key[S, I]{State: s, Label: label}]; ok {
			next.Append(targets.ToSlice()...)
		}
		return false
	})
	return next
}

// Run simulates the automaton on input. The trace records the current
// state set before each symbol and the final set after the last one.
func (n *NFA[S, I]) Run(input []I) automaton.Trace[mapset.Set[S]] {
	current := n.Closure(mapset.NewThreadUnsafeSet(n.start))
	sets := make([]mapset.Set[S], 0, len(input)+1)
	for _, symbol := range input {
		sets = append(sets, current)
		current = n.Closure(n.move(current, Symbol(symbol)))
	}
	sets = append(sets, current)
	return automaton.NewTrace(n.intersectsAccept(current), sets)
}

// Match reports whether input is accepted.
func (n *NFA[S, I]) Match(input []I) bool {
	return n.Run(input).Accept()
}

func (n *NFA[S, I]) intersectsAccept(set mapset.Set[S]) bool {
	found := false
	set.Each(func(s S) bool {
		found = n.accept.Contains(s)
		return found
	})
	return found
}

// merge moves other's transitions into n. State ids are assumed disjoint.
func (n *NFA[S, I]) merge(other *NFA[S, I]) {
	for key, targets := range other.Edges() {
		n.AddTransition(key.State, key.Label, targets...)
	}
}

func (n *NFA[S, I]) consume() {
	if n.consumed {
		panic(ErrConsumed)
	}
	n.consumed = true
}

// Concat links every accept state of a to b's start with an epsilon edge.
// The result starts at a's start and accepts b's accept states.
// Both operands are consumed and must not be used afterwards.
func Concat[S comparable, I comparable](a, b *NFA[S, I]) *NFA[S, I] {
	a.consume()
	b.consume()

	result := New[S, I](a.start)
	result.merge(a)
	for _, s := range a.acceptOrder {
		result.AddTransition(s, Epsilon[I](), b.start)
	}
	result.merge(b)
	result.AddAccept(b.acceptOrder...)
	release(a, b)
	return result
}

// Union adds start with epsilon edges to both operands' starts. The result
// accepts the accept states of both. Both operands are consumed.
func Union[S comparable, I comparable](a, b *NFA[S, I], start S) *NFA[S, I] {
	a.consume()
	b.consume()

	result := New[S, I](start)
	result.AddTransition(start, Epsilon[I](), a.start, b.start)
	result.merge(a)
	result.merge(b)
	result.AddAccept(a.acceptOrder...)
	result.AddAccept(b.acceptOrder...)
	release(a, b)
	return result
}

// Star wraps a in a Kleene loop. start gets epsilon edges to a's start and
// to accept (the zero-iteration bypass); every accept state of a loops back
// to start. The result accepts only accept. The operand is consumed.
func Star[S comparable, I comparable](a *NFA[S, I], start, accept S) *NFA[S, I] {
	a.consume()

	result := New[S, I](start, accept)
	result.AddTransition(start, Epsilon[I](), a.start, accept)
	result.merge(a)
	for _, s := range a.acceptOrder {
		result.AddTransition(s, Epsilon[I](), start)
	}
	release(a)
	return result
}

// release drops the internals of consumed operands.
func release[S comparable, I comparable](nfas ...*NFA[S, I]) {
	for _, n := range nfas {
		n.transitions = nil
		n.targets = nil
		n.out = nil
		n.sources = nil
		n.accept = mapset.NewThreadUnsafeSet[S]()
		n.acceptOrder = nil
	}
}
