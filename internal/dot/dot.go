// Package dot renders automata in Graphviz DOT format for inspection.
package dot

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/KromDaniel/regdfa/internal/dfa"
	"github.com/KromDaniel/regdfa/internal/nfa"
)

// StartNode is the invisible node whose edge marks the start state.
const StartNode = "__start"

const (
	shapeState  = "circle"
	shapeAccept = "doublecircle"
	shapeStart  = "point"
)

// FromNFA renders n as a directed graph named "nfa". Epsilon edges are
// labelled "ε".
func FromNFA[S comparable, I comparable](n *nfa.NFA[S, I]) (string, error) {
	b, err := newBuilder("nfa")
	if err != nil {
		return "", err
	}
	for _, s := range n.States() {
		if err := b.state(NodeName(s), n.IsAccepting(s)); err != nil {
			return "", err
		}
	}
	if err := b.start(NodeName(n.Start())); err != nil {
		return "", err
	}
	for key, targets := range n.Edges() {
		for _, to := range targets {
			if err := b.edge(NodeName(key.State), NodeName(to), key.Label.String()); err != nil {
				return "", err
			}
		}
	}
	return b.g.String(), nil
}

// FromDFA renders d as a directed graph named "dfa".
func FromDFA[S comparable, I comparable](d *dfa.DFA[S, I]) (string, error) {
	b, err := newBuilder("dfa")
	if err != nil {
		return "", err
	}
	for _, s := range d.States() {
		if err := b.state(NodeName(s), d.IsAccepting(s)); err != nil {
			return "", err
		}
	}
	if err := b.start(NodeName(d.Start())); err != nil {
		return "", err
	}
	for e, to := range d.Transitions() {
		if err := b.edge(NodeName(e.From), NodeName(to), symbolLabel(e.Symbol)); err != nil {
			return "", err
		}
	}
	return b.g.String(), nil
}

// NodeName is the quoted DOT identifier used for state s.
func NodeName[S any](s S) string {
	return strconv.Quote(fmt.Sprint(s))
}

func symbolLabel[I any](symbol I) string {
	if r, ok := any(symbol).(rune); ok {
		return string(r)
	}
	return fmt.Sprint(symbol)
}

type builder struct {
	name string
	g    *gographviz.Graph
}

func newBuilder(name string) (*builder, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(name); err != nil {
		return nil, fmt.Errorf("failed to name graph: %w", err)
	}
	if err := g.SetDir(true); err != nil {
		return nil, fmt.Errorf("failed to make graph directed: %w", err)
	}
	if err := g.AddAttr(name, string(gographviz.RankDir), "LR"); err != nil {
		return nil, fmt.Errorf("failed to set rankdir: %w", err)
	}
	return &builder{name: name, g: g}, nil
}

func (b *builder) state(name string, accepting bool) error {
	shape := shapeState
	if accepting {
		shape = shapeAccept
	}
	if err := b.g.AddNode(b.name, name, map[string]string{string(gographviz.Shape): shape}); err != nil {
		return fmt.Errorf("failed to add state %s: %w", name, err)
	}
	return nil
}

func (b *builder) start(target string) error {
	if err := b.g.AddNode(b.name, StartNode, map[string]string{string(gographviz.Shape): shapeStart}); err != nil {
		return fmt.Errorf("failed to add start marker: %w", err)
	}
	if err := b.g.AddEdge(StartNode, target, true, nil); err != nil {
		return fmt.Errorf("failed to mark start state %s: %w", target, err)
	}
	return nil
}

func (b *builder) edge(from, to, label string) error {
	attrs := map[string]string{string(gographviz.Label): strconv.Quote(label)}
	if err := b.g.AddEdge(from, to, true, attrs); err != nil {
		return fmt.Errorf("failed to add edge %s -> %s: %w", from, to, err)
	}
	return nil
}
