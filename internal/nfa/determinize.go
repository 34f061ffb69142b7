package nfa

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/constraints"

	"github.com/KromDaniel/regdfa/internal/dfa"
	"github.com/KromDaniel/regdfa/internal/powerset"
)

// ErrStateSpaceExplosion is returned when subset construction would exceed
// its configured bound.
var ErrStateSpaceExplosion = errors.New("nfa: state space explosion")

// Strategy selects how subsets are discovered during determinization.
type Strategy int

const (
	// StrategyReachable only builds subsets reachable from the start closure.
	StrategyReachable Strategy = iota
	// StrategyPowerSet enumerates every subset of the state universe.
	StrategyPowerSet
)

// Default limits for Determinize.
const (
	DefaultMaxStates   = 10000
	DefaultMaxUniverse = 16
	// MaxUniverse is the largest universe StrategyPowerSet will enumerate,
	// whatever Options.MaxUniverse asks for.
	MaxUniverse = 20
)

func (s Strategy) String() string {
	switch s {
	case StrategyReachable:
		return "reachable"
	case StrategyPowerSet:
		return "powerset"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a strategy name to its value. The empty name selects
// StrategyReachable.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "reachable":
		return StrategyReachable, nil
	case "powerset":
		return StrategyPowerSet, nil
	default:
		return 0, fmt.Errorf("unknown determinization strategy %q", name)
	}
}

// Options bounds subset construction. Zero fields take the defaults.
type Options struct {
	Strategy Strategy
	// MaxStates caps the DFA states built by StrategyReachable.
	MaxStates int
	// MaxUniverse caps the NFA state universe enumerated by StrategyPowerSet.
	// Values above the package-level MaxUniverse are clamped to it.
	MaxUniverse int
}

func (o Options) withDefaults() Options {
	if o.MaxStates <= 0 {
		o.MaxStates = DefaultMaxStates
	}
	if o.MaxUniverse <= 0 {
		o.MaxUniverse = DefaultMaxUniverse
	}
	if o.MaxUniverse > MaxUniverse {
		o.MaxUniverse = MaxUniverse
	}
	return o
}

// Determinize converts n into an equivalent DFA by subset construction.
// Each DFA state is the canonical SetState of a subset of n's states; the
// start state is the epsilon closure of n's start.
func Determinize[S constraints.Integer, I comparable](n *NFA[S, I], opts Options) (*dfa.DFA[dfa.SetState[S], I], error) {
	opts = opts.withDefaults()
	switch opts.Strategy {
	case StrategyReachable:
		return determinizeReachable(n, opts.MaxStates)
	case StrategyPowerSet:
		return determinizePowerSet(n, opts.MaxUniverse)
	default:
		return nil, fmt.Errorf("unknown determinization strategy %v", opts.Strategy)
	}
}

// step is one outgoing DFA transition of a subset.
type step[S constraints.Integer, I comparable] struct {
	symbol I
	target mapset.Set[S]
}

// steps computes, for every symbol leaving the closure, the closure of the
// union of its direct successors. Symbols come in ascending state order,
// then label insertion order.
func steps[S constraints.Integer, I comparable](n *NFA[S, I], closure mapset.Set[S]) []step[S, I] {
	members := closure.ToSlice()
	slices.Sort(members)

	var symbols []I
	seen := make(map[I]struct{})
	for _, s := range members {
		for _, label := range n.Labels(s) {
			symbol, ok := label.Symbol()
			if !ok {
				continue
			}
			if _, dup := seen[symbol]; !dup {
				seen[symbol] = struct{}{}
				symbols = append(symbols, symbol)
			}
		}
	}

	out := make([]step[S, I], 0, len(symbols))
	for _, symbol := range symbols {
		target := n.Closure(n.move(closure, Symbol(symbol)))
		out = append(out, step[S, I]{symbol: symbol, target: target})
	}
	return out
}

func setState[S constraints.Integer](set mapset.Set[S]) dfa.SetState[S] {
	return dfa.NewSetState(set.ToSlice()...)
}

func determinizeReachable[S constraints.Integer, I comparable](n *NFA[S, I], maxStates int) (*dfa.DFA[dfa.SetState[S], I], error) {
	startSet := n.Closure(mapset.NewThreadUnsafeSet(n.start))
	start := setState(startSet)
	d := dfa.New[dfa.SetState[S], I](start)

	sets := map[dfa.SetState[S]]mapset.Set[S]{start: startSet}
	worklist := []dfa.SetState[S]{start}
	for len(worklist) > 0 {
		current := worklist[0]
		worklist = worklist[1:]
		members := sets[current]

		if n.intersectsAccept(members) {
			d.AddAccept(current)
		}
		for _, st := range steps(n, members) {
			target := setState(st.target)
			if _, known := sets[target]; !known {
				if len(sets) >= maxStates {
					return nil, fmt.Errorf("%w: more than %d DFA states", ErrStateSpaceExplosion, maxStates)
				}
				sets[target] = st.target
				worklist = append(worklist, target)
			}
			if err := d.AddTransition(current, st.symbol, target); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// determinizePowerSet enumerates all 2^|U| subsets of the state universe U.
// A subset accepts when its own members (not its closure) meet the accept
// set; its transitions are computed from its closure. Subsets that are not
// reachable from the start state stay in the result; use DFA.Prune to drop
// them.
func determinizePowerSet[S constraints.Integer, I comparable](n *NFA[S, I], maxUniverse int) (*dfa.DFA[dfa.SetState[S], I], error) {
	universe := n.States()
	if len(universe) > maxUniverse {
		return nil, fmt.Errorf("%w: state universe of %d exceeds %d (2^%d subsets)",
			ErrStateSpaceExplosion, len(universe), maxUniverse, len(universe))
	}
	slices.Sort(universe)

	start := setState(n.Closure(mapset.NewThreadUnsafeSet(n.start)))
	d := dfa.New[dfa.SetState[S], I](start)

	for _, subset := range powerset.Of(universe) {
		members := mapset.NewThreadUnsafeSet(subset...)
		current := dfa.NewSetState(subset...)

		if n.intersectsAccept(members) {
			d.AddAccept(current)
		}
		for _, st := range steps(n, n.Closure(members)) {
			if err := d.AddTransition(current, st.symbol, setState(st.target)); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}
