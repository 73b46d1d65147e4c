// Package state implements the relational state representation ("DBState"):
// for each predicate, an ordered set of tuples plus a nullary bitset.
// Tuples within a relation are kept unique and in a canonical sorted order
// so that semantically equal states compare equal.
package state

import (
	"fmt"
	"sort"
	"strings"
)

// GroundAtom is an ordered sequence of object indices, e.g. the arguments of
// a ground predicate instance such as (on b1 b2).
type GroundAtom []int

func cloneTuple(t GroundAtom) GroundAtom {
	out := make(GroundAtom, len(t))
	copy(out, t)
	return out
}

func compareTuples(a, b GroundAtom) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func equalTuples(a, b GroundAtom) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Relation holds the ground tuples of a single non-nullary predicate,
// maintained as a sorted, duplicate-free slice.
type Relation struct {
	PredicateIndex int
	Tuples         []GroundAtom
}

func NewRelation(predicateIndex int) *Relation {
	return &Relation{PredicateIndex: predicateIndex}
}

// Insert adds tuple if not already present, keeping Tuples sorted. Reports
// whether the tuple was newly added.
func (r *Relation) Insert(tuple GroundAtom) bool {
	i := sort.Search(len(r.Tuples), func(i int) bool {
		return compareTuples(r.Tuples[i], tuple) >= 0
	})
	if i < len(r.Tuples) && equalTuples(r.Tuples[i], tuple) {
		return false
	}
	r.Tuples = append(r.Tuples, nil)
	copy(r.Tuples[i+1:], r.Tuples[i:])
	r.Tuples[i] = cloneTuple(tuple)
	return true
}

// Remove deletes tuple if present. Reports whether it was present.
func (r *Relation) Remove(tuple GroundAtom) bool {
	i := sort.Search(len(r.Tuples), func(i int) bool {
		return compareTuples(r.Tuples[i], tuple) >= 0
	})
	if i >= len(r.Tuples) || !equalTuples(r.Tuples[i], tuple) {
		return false
	}
	r.Tuples = append(r.Tuples[:i], r.Tuples[i+1:]...)
	return true
}

func (r *Relation) Contains(tuple GroundAtom) bool {
	i := sort.Search(len(r.Tuples), func(i int) bool {
		return compareTuples(r.Tuples[i], tuple) >= 0
	})
	return i < len(r.Tuples) && equalTuples(r.Tuples[i], tuple)
}

func (r *Relation) Clone() *Relation {
	out := &Relation{PredicateIndex: r.PredicateIndex, Tuples: make([]GroundAtom, len(r.Tuples))}
	for i, t := range r.Tuples {
		out.Tuples[i] = cloneTuple(t)
	}
	return out
}

// DBState is the full relational representation of a planning state: one
// Relation per predicate (empty if the predicate currently has no tuples)
// plus a bitset for nullary (arity-0) predicates.
type DBState struct {
	Relations []*Relation
	Nullary   []bool
}

// New allocates a DBState with an (initially empty) relation for each of
// numPredicates predicates.
func New(numPredicates int) *DBState {
	s := &DBState{
		Relations: make([]*Relation, numPredicates),
		Nullary:   make([]bool, numPredicates),
	}
	for i := range s.Relations {
		s.Relations[i] = NewRelation(i)
	}
	return s
}

func (s *DBState) Clone() *DBState {
	out := &DBState{
		Relations: make([]*Relation, len(s.Relations)),
		Nullary:   make([]bool, len(s.Nullary)),
	}
	copy(out.Nullary, s.Nullary)
	for i, r := range s.Relations {
		out.Relations[i] = r.Clone()
	}
	return out
}

func (s *DBState) SetNullary(predicateIndex int, value bool) {
	s.Nullary[predicateIndex] = value
}

func (s *DBState) InsertTuple(predicateIndex int, tuple GroundAtom) bool {
	return s.Relations[predicateIndex].Insert(tuple)
}

func (s *DBState) RemoveTuple(predicateIndex int, tuple GroundAtom) bool {
	return s.Relations[predicateIndex].Remove(tuple)
}

// Equal reports whether two states carry the same tuples and nullary bits.
// Because relations are kept canonically sorted this is a straightforward
// structural comparison.
func (s *DBState) Equal(other *DBState) bool {
	if len(s.Relations) != len(other.Relations) || len(s.Nullary) != len(other.Nullary) {
		return false
	}
	for i := range s.Nullary {
		if s.Nullary[i] != other.Nullary[i] {
			return false
		}
	}
	for i, r := range s.Relations {
		o := other.Relations[i]
		if len(r.Tuples) != len(o.Tuples) {
			return false
		}
		for j := range r.Tuples {
			if !equalTuples(r.Tuples[j], o.Tuples[j]) {
				return false
			}
		}
	}
	return true
}

// String renders the state as "(pred [args])...(nullaryIdx)...", matching
// the debug format used throughout the planner's fixtures and tests.
func (s *DBState) String() string {
	var b strings.Builder
	for _, r := range s.Relations {
		for _, t := range r.Tuples {
			fmt.Fprintf(&b, "(%d %s)", r.PredicateIndex, formatTuple(t))
		}
	}
	for i, on := range s.Nullary {
		if on {
			fmt.Fprintf(&b, "(%d)", i)
		}
	}
	return b.String()
}

func formatTuple(t GroundAtom) string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
