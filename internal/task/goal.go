package task

import "github.com/wbrown/janus-lift/internal/state"

// GoalAtom is one non-nullary positive conjunct of the goal. Negative
// non-nullary goal atoms are rejected at task construction: the
// parser/builder must refuse them before a GoalAtom is ever built.
type GoalAtom struct {
	PredicateIndex int
	Arguments      []int // ground object indices
}

// Goal is a conjunction of ground literals: positive non-nullary atoms plus
// positive/negative nullary predicate indices.
type Goal struct {
	Atoms                []GoalAtom
	PositiveNullaryGoals []int
	NegativeNullaryGoals []int
}

// IsSatisfied reports whether s satisfies every conjunct of g.
func (g Goal) IsSatisfied(s *state.DBState) bool {
	for _, atom := range g.Atoms {
		if !s.Relations[atom.PredicateIndex].Contains(state.GroundAtom(atom.Arguments)) {
			return false
		}
	}
	for _, p := range g.PositiveNullaryGoals {
		if !s.Nullary[p] {
			return false
		}
	}
	for _, p := range g.NegativeNullaryGoals {
		if s.Nullary[p] {
			return false
		}
	}
	return true
}
