package successor

import (
	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/task"
)

// GenerateSuccessor applies action's schema effects to s, returning a new
// state. Add always wins over a delete of the same ground atom within one
// action: deletes are applied first, then every add, so an atom both added
// and deleted by the same action ends up present.
func (g *Generator) GenerateSuccessor(s *state.DBState, a task.Action) *state.DBState {
	schema := &g.t.ActionSchemas[a.Index]
	next := s.Clone()

	for _, eff := range schema.Effects {
		if eff.Negated {
			ground := eff.Ground(a.Instantiation)
			next.RemoveTuple(eff.PredicateIndex, state.GroundAtom(ground))
		}
	}
	for _, eff := range schema.Effects {
		if !eff.Negated {
			ground := eff.Ground(a.Instantiation)
			next.InsertTuple(eff.PredicateIndex, state.GroundAtom(ground))
		}
	}

	for p, on := range schema.PositiveNullaryEffects {
		if on {
			next.SetNullary(p, true)
		}
	}
	for p, off := range schema.NegativeNullaryEffects {
		if off && !schema.PositiveNullaryEffects[p] {
			next.SetNullary(p, false)
		}
	}

	return next
}
