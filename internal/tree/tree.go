// Package tree provides the labeled tree used to represent parsed patterns.
package tree

import (
	"fmt"
	"strings"
)

// Tree is a token with an ordered list of child subtrees.
// Child order is significant: for binary operators the first child is the
// left operand. A subtree may be referenced by more than one parent; trees
// are never mutated after construction.
type Tree[T comparable] struct {
	token    T
	children []*Tree[T]
}

// New creates a tree node. A node without children is a leaf.
func New[T comparable](token T, children ...*Tree[T]) *Tree[T] {
	var kids []*Tree[T]
	if len(children) > 0 {
		kids = make([]*Tree[T], len(children))
		copy(kids, children)
	}
	return &Tree[T]{token: token, children: kids}
}

// Token returns the node token.
func (t *Tree[T]) Token() T {
	return t.token
}

// Children returns the ordered children. The returned slice must not be modified.
func (t *Tree[T]) Children() []*Tree[T] {
	return t.children
}

// Child returns the i-th child.
func (t *Tree[T]) Child(i int) *Tree[T] {
	return t.children[i]
}

// Arity returns the number of children.
func (t *Tree[T]) Arity() int {
	return len(t.children)
}

// IsLeaf reports whether the node has no children.
func (t *Tree[T]) IsLeaf() bool {
	return len(t.children) == 0
}

// Equal reports structural equality: same tokens, same shape, same child order.
func (t *Tree[T]) Equal(other *Tree[T]) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.token != other.token || len(t.children) != len(other.children) {
		return false
	}
	for i := range t.children {
		if !t.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// Walk visits the tree in pre-order. Returning false from fn skips the
// children of the visited node.
func (t *Tree[T]) Walk(fn func(node *Tree[T], depth int) bool) {
	type frame struct {
		node  *Tree[T]
		depth int
	}
	stack := []frame{{node: t}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.node == nil || !fn(f.node, f.depth) {
			continue
		}
		for i := len(f.node.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.children[i], depth: f.depth + 1})
		}
	}
}

// Size returns the number of nodes in the tree.
func (t *Tree[T]) Size() int {
	n := 0
	t.Walk(func(*Tree[T], int) bool {
		n++
		return true
	})
	return n
}

// String renders the tree as an S-expression, e.g. "(concat a (star b))".
func (t *Tree[T]) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Tree[T]) write(sb *strings.Builder) {
	if t.IsLeaf() {
		fmt.Fprint(sb, t.token)
		return
	}
	sb.WriteByte('(')
	fmt.Fprint(sb, t.token)
	for _, c := range t.children {
		sb.WriteByte(' ')
		c.write(sb)
	}
	sb.WriteByte(')')
}
