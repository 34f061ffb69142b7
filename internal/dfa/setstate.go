package dfa

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// memberWidth is the encoded size of one member.
const memberWidth = 8

// SetState identifies a set of NFA states used as a single DFA state.
//
// The value holds the canonical encoding of its members (sorted, without
// duplicates, each as 8 big-endian bytes), so two SetStates compare equal
// with == exactly when they hold the same members, whatever order they were
// built from. That makes SetState usable as a map key, and Hash is derived
// from the same encoding. The zero value is the empty set.
type SetState[S constraints.Integer] struct {
	key string
}

// NewSetState builds the canonical set of members.
func NewSetState[S constraints.Integer](members ...S) SetState[S] {
	if len(members) == 0 {
		return SetState[S]{}
	}
	sorted := slices.Clone(members)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	b := make([]byte, 0, len(sorted)*memberWidth)
	for _, m := range sorted {
		b = binary.BigEndian.AppendUint64(b, uint64(m))
	}
	return SetState[S]{key: string(b)}
}

// at decodes the i-th member. Converting back to S truncates to S's width,
// which restores the original value for every integer type.
func (s SetState[S]) at(i int) S {
	return S(binary.BigEndian.Uint64([]byte(s.key[i*memberWidth : (i+1)*memberWidth])))
}

// Members returns the members in ascending order.
func (s SetState[S]) Members() []S {
	n := s.Len()
	if n == 0 {
		return nil
	}
	members := make([]S, n)
	for i := range members {
		members[i] = s.at(i)
	}
	return members
}

// Len returns the number of members.
func (s SetState[S]) Len() int {
	return len(s.key) / memberWidth
}

// Contains reports whether v is a member.
func (s SetState[S]) Contains(v S) bool {
	lo, hi := 0, s.Len()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch m := s.at(mid); {
		case m == v:
			return true
		case m < v:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}

// Equal reports set equality.
func (s SetState[S]) Equal(other SetState[S]) bool {
	return s.key == other.key
}

// Hash returns a hash of the canonical member order. Equal sets hash equally.
func (s SetState[S]) Hash() uint64 {
	return xxhash.Sum64String(s.key)
}

// String renders the set as "{1,2,3}".
func (s SetState[S]) String() string {
	members := s.Members()
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = fmt.Sprint(m)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
