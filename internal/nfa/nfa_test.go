package nfa

import (
	"slices"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edge struct {
	from    int
	label   string
	targets []int
}

// snapshot flattens an automaton into comparable, order-independent parts.
func snapshot(n *NFA[int, rune]) (int, []int, []edge) {
	accept := n.AcceptStates()
	slices.Sort(accept)

	var edges []edge
	for key, targets := range n.Edges() {
		slices.Sort(targets)
		edges = append(edges, edge{from: key.State, label: key.Label.String(), targets: targets})
	}
	slices.SortFunc(edges, func(a, b edge) int {
		if a.from != b.from {
			return a.from - b.from
		}
		if a.label < b.label {
			return -1
		}
		if a.label > b.label {
			return 1
		}
		return 0
	})
	return n.Start(), accept, edges
}

func requireSameNFA(t *testing.T, want, got *NFA[int, rune]) {
	t.Helper()
	ws, wa, we := snapshot(want)
	gs, ga, ge := snapshot(got)
	require.Equal(t, ws, gs, "start")
	require.Equal(t, wa, ga, "accept states")
	require.Equal(t, we, ge, "transitions")
}

func single(from int, c rune, to int) *NFA[int, rune] {
	n := New[int, rune](from, to)
	n.AddTransition(from, Symbol(c), to)
	return n
}

func TestRunNondeterministic(t *testing.T) {
	n := New[int, rune](1, 4, 5)
	n.AddTransition(1, Epsilon[rune](), 2, 3, 6)
	n.AddTransition(2, Symbol('a'), 4)
	n.AddTransition(3, Symbol('b'), 5)
	n.AddTransition(6, Symbol('c'), 5)

	assert.True(t, n.Match([]rune("a")))
	assert.True(t, n.Match([]rune("b")))
	assert.True(t, n.Match([]rune("c")))
	assert.False(t, n.Match([]rune("ab")))
	assert.False(t, n.Match(nil))
}

func TestRunTrace(t *testing.T) {
	n := single(0, 'a', 1)

	tr := n.Run([]rune("a"))
	require.True(t, tr.Accept())
	require.Equal(t, 2, tr.Len())
	assert.True(t, tr.States()[0].Equal(mapset.NewThreadUnsafeSet(0)))
	assert.True(t, tr.States()[1].Equal(mapset.NewThreadUnsafeSet(1)))

	tr = n.Run([]rune("ba"))
	assert.False(t, tr.Accept())
	assert.False(t, tr.Halted(), "an NFA walk always consumes the whole input")
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, 0, tr.States()[2].Cardinality())
}

func TestConcat(t *testing.T) {
	got := Concat(single(1, 'a', 2), single(3, 'b', 4))

	want := New[int, rune](1, 4)
	want.AddTransition(1, Symbol('a'), 2)
	want.AddTransition(2, Epsilon[rune](), 3)
	want.AddTransition(3, Symbol('b'), 4)

	requireSameNFA(t, want, got)
}

func TestUnion(t *testing.T) {
	got := Union(single(1, 'a', 2), single(3, 'b', 4), 0)

	want := New[int, rune](0, 2, 4)
	want.AddTransition(0, Epsilon[rune](), 1, 3)
	want.AddTransition(1, Symbol('a'), 2)
	want.AddTransition(3, Symbol('b'), 4)

	requireSameNFA(t, want, got)
}

func TestStar(t *testing.T) {
	got := Star(single(1, 'a', 2), 0, 3)

	want := New[int, rune](0, 3)
	want.AddTransition(0, Epsilon[rune](), 1, 3)
	want.AddTransition(1, Symbol('a'), 2)
	want.AddTransition(2, Epsilon[rune](), 0)

	requireSameNFA(t, want, got)
}

func TestCombinatorsConsumeOperands(t *testing.T) {
	a := single(0, 'a', 1)
	b := single(2, 'b', 3)
	_ = Concat(a, b)

	assert.PanicsWithValue(t, ErrConsumed, func() { Star(a, 4, 5) })
	assert.PanicsWithValue(t, ErrConsumed, func() { Union(single(6, 'c', 7), b, 8) })

	same := single(0, 'a', 1)
	assert.PanicsWithValue(t, ErrConsumed, func() { Concat(same, same) })
}

func TestConcatSemantics(t *testing.T) {
	// (a|b) followed by c*
	left := Union(single(0, 'a', 1), single(2, 'b', 3), 4)
	right := Star(single(5, 'c', 6), 7, 8)
	n := Concat(left, right)

	for _, in := range []string{"a", "b", "ac", "bccc"} {
		assert.True(t, n.Match([]rune(in)), in)
	}
	for _, in := range []string{"", "c", "ab", "ca", "acb"} {
		assert.False(t, n.Match([]rune(in)), in)
	}
}

func TestStarSemantics(t *testing.T) {
	ab := Concat(single(0, 'a', 1), single(2, 'b', 3))
	n := Star(ab, 4, 5)

	for _, in := range []string{"", "ab", "abab", "ababab"} {
		assert.True(t, n.Match([]rune(in)), in)
	}
	for _, in := range []string{"a", "b", "aba", "ba", "abb"} {
		assert.False(t, n.Match([]rune(in)), in)
	}
}

func TestClosureWithCycle(t *testing.T) {
	n := New[int, rune](0, 3)
	n.AddTransition(0, Epsilon[rune](), 1)
	n.AddTransition(1, Epsilon[rune](), 2)
	n.AddTransition(2, Epsilon[rune](), 0, 3)
	n.AddTransition(3, Symbol('x'), 4)
	n.AddTransition(4, Epsilon[rune](), 5)

	got := n.Closure(mapset.NewThreadUnsafeSet(1))
	assert.True(t, got.Equal(mapset.NewThreadUnsafeSet(0, 1, 2, 3)), got.String())

	got = n.Closure(mapset.NewThreadUnsafeSet(4))
	assert.True(t, got.Equal(mapset.NewThreadUnsafeSet(4, 5)), got.String())

	assert.Equal(t, 0, n.Closure(mapset.NewThreadUnsafeSet[int]()).Cardinality())
}

func TestStatesUniverse(t *testing.T) {
	n := New[int, rune](0, 9)
	n.AddTransition(0, Symbol('a'), 2, 1)
	n.AddTransition(1, Epsilon[rune](), 3)

	assert.Equal(t, []int{0, 2, 1, 3, 9}, n.States())
	assert.Equal(t, 3, n.NumTransitions())
}

func TestSuccessorsAndLabels(t *testing.T) {
	n := New[int, rune](0)
	n.AddTransition(0, Symbol('b'), 1)
	n.AddTransition(0, Epsilon[rune](), 2)
	n.AddTransition(0, Symbol('a'), 3)
	n.AddTransition(0, Symbol('b'), 4)

	labels := n.Labels(0)
	require.Len(t, labels, 3)
	assert.Equal(t, "b", labels[0].String())
	assert.True(t, labels[1].IsEpsilon())
	assert.Equal(t, "a", labels[2].String())

	assert.True(t, n.Successors(0, Symbol('b')).Equal(mapset.NewThreadUnsafeSet(1, 4)))
	assert.Equal(t, 0, n.Successors(9, Symbol('b')).Cardinality())

	sym, ok := labels[2].Symbol()
	assert.True(t, ok)
	assert.Equal(t, 'a', sym)
	_, ok = labels[1].Symbol()
	assert.False(t, ok)
}
