// Package automaton holds the pieces shared by every automaton simulator.
package automaton

// Trace records one simulation: the verdict and the state (or state-set)
// snapshots taken before each consumed symbol, plus the final one.
//
// A halted trace comes from a walk that stopped early because no transition
// existed for the current (state, symbol) pair. It is never accepting and
// holds fewer snapshots than a full walk over the same input.
type Trace[S any] struct {
	accept bool
	halted bool
	states []S
}

// NewTrace creates a completed trace.
func NewTrace[S any](accept bool, states []S) Trace[S] {
	return Trace[S]{accept: accept, states: states}
}

// Halt creates a trace for a walk that stopped on unmatched input.
func Halt[S any](states []S) Trace[S] {
	return Trace[S]{halted: true, states: states}
}

// Push appends a snapshot.
func (t *Trace[S]) Push(state S) {
	t.states = append(t.states, state)
}

// Accept reports whether the input was accepted.
func (t Trace[S]) Accept() bool {
	return t.accept
}

// Halted reports whether the walk stopped before consuming all input.
func (t Trace[S]) Halted() bool {
	return t.halted
}

// States returns the recorded snapshots in visit order.
func (t Trace[S]) States() []S {
	return t.states
}

// Len returns the number of snapshots.
func (t Trace[S]) Len() int {
	return len(t.states)
}

// Last returns the last snapshot, if any.
func (t Trace[S]) Last() (S, bool) {
	if len(t.states) == 0 {
		var zero S
		return zero, false
	}
	return t.states[len(t.states)-1], true
}

// Runner is implemented by every simulator: NFA, DFA and the dense table.
type Runner[I any, S any] interface {
	Run(input []I) Trace[S]
}

// Symbols splits a string into the rune symbols fed to an automaton.
func Symbols(s string) []rune {
	return []rune(s)
}
