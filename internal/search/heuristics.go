package search

import (
	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/task"
)

// GoalCounting counts unsatisfied goal conjuncts: the cheapest heuristic
// the CLI exposes, with no grounding machinery behind it at all.
type GoalCounting struct {
	goal task.Goal
}

func NewGoalCounting(t *task.Task) *GoalCounting {
	return &GoalCounting{goal: t.Goal}
}

func (h *GoalCounting) Evaluate(s *state.DBState) float64 {
	count := 0.0
	for _, atom := range h.goal.Atoms {
		if !s.Relations[atom.PredicateIndex].Contains(state.GroundAtom(atom.Arguments)) {
			count++
		}
	}
	for _, predIdx := range h.goal.PositiveNullaryGoals {
		if !s.Nullary[predIdx] {
			count++
		}
	}
	for _, predIdx := range h.goal.NegativeNullaryGoals {
		if s.Nullary[predIdx] {
			count++
		}
	}
	return count
}

// Zero is the admissible-but-uninformative heuristic used as a baseline.
// Under GBFS every node then ties at h=0, so expansion order is whatever
// the open list's heap yields for equal keys, not breadth order.
type Zero struct{}

func (Zero) Evaluate(*state.DBState) float64 { return 0 }
