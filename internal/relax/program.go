package relax

import (
	"github.com/wbrown/janus-lift/internal/task"
)

// GoalPredicate is a fresh predicate index, one past every real predicate
// (auxiliary predicates are numbered after it), standing for "the goal is
// satisfied".
type Program struct {
	Rules        []Rule
	StaticFacts  []Atom
	GoalPredicate int

	nextAuxPredicate int
}

// NewAuxPredicate allocates a fresh artificial predicate index, used by the
// normalization transformations (split/project/binarize) to name the
// intermediate relations they introduce.
func (p *Program) NewAuxPredicate() int {
	idx := p.nextAuxPredicate
	p.nextAuxPredicate++
	return idx
}

// Translate builds the unnormalized weighted Datalog program from t,
// already in the fused "effect :- preconditions" shape: there is no need
// to materialize a
// separate applicable_a(...) predicate and then immediately fuse it away,
// so this implementation builds the fused rule directly, which is
// behaviourally identical to translating-then-fusing.
//
// Negative preconditions are dropped (sound for delete relaxation);
// negative nullary preconditions are likewise dropped rather than
// propagated through auxiliary predicates.
func Translate(t *task.Task) *Program {
	p := &Program{nextAuxPredicate: len(t.Predicates) + 1}
	p.GoalPredicate = len(t.Predicates)

	for i := range t.ActionSchemas {
		schema := &t.ActionSchemas[i]
		conditions := schemaConditions(schema)
		if len(conditions) == 0 {
			// An unconditional schema has no body to ground against; it is
			// always free, so its effects are facts at cost equal to the
			// schema's weight rather than rules.
			for _, eff := range schema.Effects {
				if eff.Negated {
					continue
				}
				p.StaticFacts = append(p.StaticFacts, schemaAtomToGround(eff, nil))
			}
			continue
		}

		for _, eff := range schema.Effects {
			if eff.Negated {
				continue
			}
			p.Rules = append(p.Rules, Rule{
				Effect:      schemaAtomToVariableAtom(eff),
				Conditions:  cloneAtoms(conditions),
				Weight:      1.0,
				Kind:        KindGeneric,
				SchemaIndex: schema.Index,
			})
		}
		for predIdx, on := range schema.PositiveNullaryEffects {
			if !on {
				continue
			}
			p.Rules = append(p.Rules, Rule{
				Effect:      Atom{Predicate: predIdx},
				Conditions:  cloneAtoms(conditions),
				Weight:      1.0,
				Kind:        KindGeneric,
				SchemaIndex: schema.Index,
			})
		}
	}

	return p
}

// schemaConditions builds the uniform condition-atom list for a schema:
// every positive non-nullary precondition (as a Variable/Object atom) plus
// every required positive nullary predicate (as a zero-arity atom).
func schemaConditions(schema *task.ActionSchema) []Atom {
	var conds []Atom
	for _, pre := range schema.Preconditions {
		if pre.Negated {
			continue
		}
		conds = append(conds, schemaAtomToVariableAtom(pre))
	}
	for predIdx, required := range schema.PositiveNullaryPreconditions {
		if required {
			conds = append(conds, Atom{Predicate: predIdx})
		}
	}
	return conds
}

func schemaAtomToVariableAtom(a task.SchemaAtom) Atom {
	args := make([]Term, len(a.Arguments))
	for i, arg := range a.Arguments {
		if arg.IsConstant() {
			args[i] = Obj(arg.Value)
		} else {
			args[i] = Var(arg.Value)
		}
	}
	return Atom{Predicate: a.PredicateIndex, Args: args}
}

func schemaAtomToGround(a task.SchemaAtom, instantiation []int) Atom {
	ground := a.Ground(instantiation)
	args := make([]Term, len(ground))
	for i, v := range ground {
		args[i] = Obj(v)
	}
	return Atom{Predicate: a.PredicateIndex, Args: args}
}

func cloneAtoms(atoms []Atom) []Atom {
	out := make([]Atom, len(atoms))
	copy(out, atoms)
	return out
}

// AddGoalRule adds the final rule for the goal predicate: a product/join
// rule (depending on whether the goal's own atoms share variables, which
// for a ground goal is moot since there are no variables at all) whose body
// is every positive goal atom plus positive nullary goal predicates,
// expressed as ground conditions. Negative nullary
// goals are not representable in a monotone delete-relaxation fixpoint and
// are checked directly against the concrete state by the caller before
// grounding (internal/relax.Heuristic).
func (p *Program) AddGoalRule(g task.Goal) {
	var conds []Atom
	for _, atom := range g.Atoms {
		args := make([]Term, len(atom.Arguments))
		for i, v := range atom.Arguments {
			args[i] = Obj(v)
		}
		conds = append(conds, Atom{Predicate: atom.PredicateIndex, Args: args})
	}
	for _, predIdx := range g.PositiveNullaryGoals {
		conds = append(conds, Atom{Predicate: predIdx})
	}
	if len(conds) == 0 {
		// Empty goal: always satisfied at cost 0.
		p.StaticFacts = append(p.StaticFacts, Atom{Predicate: p.GoalPredicate})
		return
	}
	p.Rules = append(p.Rules, Rule{
		Effect:      Atom{Predicate: p.GoalPredicate, Artificial: true},
		Conditions:  conds,
		Weight:      0,
		Kind:        KindGeneric,
		SchemaIndex: -1,
		IsGoal:      true,
	})
}

// GenerateStaticFacts turns every tuple of a static predicate's relation in
// the initial state into a zero-cost fact.
func (p *Program) GenerateStaticFacts(t *task.Task, staticPredicates map[int]bool) {
	for predIdx := range staticPredicates {
		for _, tuple := range t.InitialState.Relations[predIdx].Tuples {
			args := make([]Term, len(tuple))
			for i, v := range tuple {
				args[i] = Obj(v)
			}
			p.StaticFacts = append(p.StaticFacts, Atom{Predicate: predIdx, Args: args})
		}
	}
}
