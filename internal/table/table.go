// Package table implements the relational table and join primitives:
// tuple tables with column labels, selection from a DBState, projection,
// semi-join, and hash join. These are the building blocks the
// full-reducer successor generator (internal/successor) composes into the
// applicability query.
package table

import (
	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/task"
)

// Table is a sequence of integer tuples with a parallel label vector. A
// label >= 0 names a free schema parameter; a negative label -(i+1) marks a
// column already bound to object i (kept only for Cartesian-product
// bookkeeping — such columns never need to be matched against anything
// since they carry no variable).
type Table struct {
	Tuples [][]int
	Labels []int
}

// Empty is the canonical short-circuit value: any join against it, or any
// further processing of it, stays empty. An empty operand short-circuits
// subsequent joins to empty.
var Empty = Table{}

func (t Table) IsEmpty() bool {
	return len(t.Tuples) == 0
}

func labelForConstant(objectIndex int) int {
	return -(objectIndex + 1)
}

func isConstantLabel(label int) bool {
	return label < 0
}

func objectFromConstantLabel(label int) int {
	return -label - 1
}

// SelectFromState builds the Table of tuples of the relation named by
// atom's predicate that agree with atom on every constant position and
// satisfy the implied equality when a free parameter repeats within the
// atom. Negated atoms are not handled here; callers check
// negative (non-nullary) preconditions directly against the state
// using NegatedHolds, since PDDL negative preconditions are only ever
// used for membership tests, never joined.
func SelectFromState(atom task.SchemaAtom, s *state.DBState) Table {
	relation := s.Relations[atom.PredicateIndex]
	labels := make([]int, len(atom.Arguments))
	for i, arg := range atom.Arguments {
		if arg.IsConstant() {
			labels[i] = labelForConstant(arg.Value)
		} else {
			labels[i] = arg.Value
		}
	}

	var out Table
	out.Labels = labels
tupleLoop:
	for _, tuple := range relation.Tuples {
		// Each free variable appearing more than once in this atom must be
		// bound to the same object in every matching tuple.
		seenAt := map[int]int{}
		for i, arg := range atom.Arguments {
			if arg.IsConstant() {
				if tuple[i] != arg.Value {
					continue tupleLoop
				}
				continue
			}
			if first, ok := seenAt[arg.Value]; ok {
				if tuple[first] != tuple[i] {
					continue tupleLoop
				}
			} else {
				seenAt[arg.Value] = i
			}
		}
		row := make([]int, len(tuple))
		copy(row, tuple)
		out.Tuples = append(out.Tuples, row)
	}
	return out
}

// NegatedHolds reports whether the ground atom produced by substituting
// instantiation into atom's Free positions is absent from (for a negative
// precondition) or present in (for a positive one) the given relation.
func NegatedHolds(atom task.SchemaAtom, instantiation []int, s *state.DBState) bool {
	ground := atom.Ground(instantiation)
	present := s.Relations[atom.PredicateIndex].Contains(state.GroundAtom(ground))
	if atom.Negated {
		return !present
	}
	return present
}

// ComputeMatchingColumns returns, for each pair of equal non-constant
// labels shared between a and b, the (columnInA, columnInB) index pair.
func ComputeMatchingColumns(a, b Table) [][2]int {
	var pairs [][2]int
	for i, la := range a.Labels {
		if isConstantLabel(la) {
			continue
		}
		for j, lb := range b.Labels {
			if la == lb {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

func columnSet(pairs [][2]int, index int) map[int]bool {
	set := map[int]bool{}
	for _, p := range pairs {
		set[p[index]] = true
	}
	return set
}
