// Package task is the in-memory representation of a parsed PDDL planning
// problem: typed objects, predicates, action schemas,
// the initial relational state, and the goal. A Task is immutable after
// construction.
package task

import "github.com/wbrown/janus-lift/internal/state"

type Task struct {
	DomainName  string
	ProblemName string

	TypeNames []string
	Objects   []Object
	Predicates []Predicate

	ActionSchemas []ActionSchema
	Goal          Goal
	InitialState  *state.DBState

	// NullaryPredicates marks which predicate indices have arity 0.
	NullaryPredicates map[int]bool
}

// ObjectsPerType groups object indices by every type index they satisfy,
// which the state packer (internal/statepack) uses to build its per-type
// hash-index bijections.
func (t *Task) ObjectsPerType() [][]int {
	out := make([][]int, len(t.TypeNames))
	for _, obj := range t.Objects {
		for _, ty := range obj.Types {
			out[ty] = append(out[ty], obj.Index)
		}
	}
	return out
}

// StaticPredicates returns the set of predicate indices that no schema
// effect ever mentions. A static predicate's relation never changes across
// any reachable state.
func (t *Task) StaticPredicates() map[int]bool {
	mentioned := map[int]bool{}
	for _, schema := range t.ActionSchemas {
		for _, eff := range schema.Effects {
			mentioned[eff.PredicateIndex] = true
		}
		for p, has := range schema.PositiveNullaryEffects {
			if has {
				mentioned[p] = true
			}
		}
		for p, has := range schema.NegativeNullaryEffects {
			if has {
				mentioned[p] = true
			}
		}
	}
	static := map[int]bool{}
	for _, pred := range t.Predicates {
		if !mentioned[pred.Index] {
			static[pred.Index] = true
		}
	}
	return static
}
