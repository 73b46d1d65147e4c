package relax

import (
	"math"

	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/task"
)

// Heuristic is a compiled, reusable delete-relaxation heuristic for one
// Task: the Program is translated and normalized once
// and every subsequent call re-grounds it against a fresh state (§4.4.3).
type Heuristic struct {
	task             *task.Task
	program          *Program
	grounder         *Grounder
	staticPredicates map[int]bool
	kind             HeuristicType
}

// NewHeuristic builds a Heuristic of the given kind for t. kind must be one
// of Hadd, Hmax, or Hff.
func NewHeuristic(t *task.Task, kind HeuristicType) *Heuristic {
	static := t.StaticPredicates()
	p := Translate(t)
	p.GenerateStaticFacts(t, static)
	p.AddGoalRule(t.Goal)
	Normalize(p)
	return &Heuristic{
		task:             t,
		program:          p,
		grounder:         NewGrounder(p),
		staticPredicates: static,
		kind:             kind,
	}
}

// Evaluate computes the heuristic value for s, returning math.Inf(1) if the
// goal is unreachable even in the delete relaxation. A negative nullary
// goal that does not hold in s makes the task dead regardless of what the
// monotone fixpoint would say, since the fixpoint can only accumulate
// positive nullary facts and never forgets one.
func (h *Heuristic) Evaluate(s *state.DBState) float64 {
	for _, predIdx := range h.task.Goal.NegativeNullaryGoals {
		if s.Nullary[predIdx] {
			return math.Inf(1)
		}
	}
	res := h.grounder.Ground(s, h.task, h.staticPredicates, h.kind)
	return res.Value
}

// RelaxedPlan computes h_ff together with the FF relaxed plan, the
// multiset of action schema indices whose delete-relaxed application
// justifies the returned cost. Only meaningful when the Heuristic was
// built with kind Hff; otherwise the returned plan is empty.
func (h *Heuristic) RelaxedPlan(s *state.DBState) (float64, []int) {
	for _, predIdx := range h.task.Goal.NegativeNullaryGoals {
		if s.Nullary[predIdx] {
			return math.Inf(1), nil
		}
	}
	res := h.grounder.Ground(s, h.task, h.staticPredicates, h.kind)
	return res.Value, res.RelaxedPlan
}
