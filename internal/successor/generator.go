package successor

import (
	"fmt"

	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/table"
	"github.com/wbrown/janus-lift/internal/task"
)

// Strategy selects between the two CLI-exposed generator strategies
// ("-g/--generator {full-reducer, naive-join}").
type Strategy int

const (
	FullReducer Strategy = iota
	NaiveJoin
)

func StrategyFromName(name string) (Strategy, error) {
	switch name {
	case "full-reducer", "":
		return FullReducer, nil
	case "naive-join":
		return NaiveJoin, nil
	default:
		return 0, fmt.Errorf("unknown successor generator %q", name)
	}
}

// Generator is the precompiled, per-task successor generator: one
// schemaPlan per action schema, built once at startup and reused for every
// applicability query during search.
type Generator struct {
	t      *task.Task
	plans  []*schemaPlan
}

func New(t *task.Task, strategy Strategy) *Generator {
	plans := make([]*schemaPlan, len(t.ActionSchemas))
	for i := range t.ActionSchemas {
		schema := &t.ActionSchemas[i]
		if strategy == NaiveJoin {
			plans[i] = compileNaive(schema)
		} else {
			plans[i] = compileFullReducer(schema)
		}
	}
	return &Generator{t: t, plans: plans}
}

// ApplicableActions enumerates every ground action of the given schema
// applicable in s.
func (g *Generator) ApplicableActions(s *state.DBState, schemaIndex int) []task.Action {
	return g.applicable(s, schemaIndex, nil)
}

// ApplicableFromPartial restricts the query to actions whose instantiation
// extends prefix.
func (g *Generator) ApplicableFromPartial(s *state.DBState, schemaIndex int, prefix []int) []task.Action {
	return g.applicable(s, schemaIndex, prefix)
}

func (g *Generator) applicable(s *state.DBState, schemaIndex int, prefix []int) []task.Action {
	schema := &g.t.ActionSchemas[schemaIndex]
	plan := g.plans[schemaIndex]

	if !nullaryPreconditionsHold(schema, s) {
		return nil
	}

	if plan.isGround {
		if g.groundActionApplicable(schema, s) {
			return []task.Action{{Index: schemaIndex, Instantiation: nil}}
		}
		return nil
	}

	tables := make([]table.Table, len(plan.positivePreconditions))
	for i, pre := range plan.positivePreconditions {
		tables[i] = table.SelectFromState(pre, s)
		if len(prefix) > 0 {
			restrictToPrefix(&tables[i], pre, prefix)
		}
		if tables[i].IsEmpty() {
			return nil
		}
	}

	for _, pair := range plan.reducerProgram {
		if table.SemiJoin(&tables[pair[0]], tables[pair[1]]) == 0 {
			return nil
		}
	}

	if len(plan.joinOrder) == 0 {
		return nil
	}
	result := tables[plan.joinOrder[0]]
	for _, idx := range plan.joinOrder[1:] {
		table.HashJoin(&result, tables[idx])
		if result.IsEmpty() {
			return nil
		}
	}

	rows := table.ReorderToParameterPositions(result, len(schema.Parameters))

	var actions []task.Action
	for _, inst := range rows {
		if len(prefix) > 0 {
			match := true
			for i, v := range prefix {
				if inst[i] != v {
					match = false
					break
				}
			}
			if !match {
				continue
			}
		}
		if !negativePreconditionsHold(schema, inst, s) {
			continue
		}
		actions = append(actions, task.Action{Index: schemaIndex, Instantiation: inst})
	}
	return actions
}

// restrictToPrefix drops rows of t whose column for a parameter fixed by
// prefix disagrees with the prefix's bound value.
func restrictToPrefix(t *table.Table, atom task.SchemaAtom, prefix []int) {
	var boundCols []int
	var boundVals []int
	for col, label := range t.Labels {
		if label >= 0 && label < len(prefix) {
			boundCols = append(boundCols, col)
			boundVals = append(boundVals, prefix[label])
		}
	}
	if len(boundCols) == 0 {
		return
	}
	kept := t.Tuples[:0]
	for _, row := range t.Tuples {
		ok := true
		for i, col := range boundCols {
			if row[col] != boundVals[i] {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, row)
		}
	}
	t.Tuples = kept
}

func nullaryPreconditionsHold(schema *task.ActionSchema, s *state.DBState) bool {
	for p, required := range schema.PositiveNullaryPreconditions {
		if required && !s.Nullary[p] {
			return false
		}
	}
	for p, forbidden := range schema.NegativeNullaryPreconditions {
		if forbidden && s.Nullary[p] {
			return false
		}
	}
	return true
}

func negativePreconditionsHold(schema *task.ActionSchema, inst []int, s *state.DBState) bool {
	for _, pre := range schema.Preconditions {
		if !pre.Negated {
			continue
		}
		if !table.NegatedHolds(pre, inst, s) {
			return false
		}
	}
	return true
}

func (g *Generator) groundActionApplicable(schema *task.ActionSchema, s *state.DBState) bool {
	for _, pre := range schema.Preconditions {
		ground := pre.Ground(nil)
		present := s.Relations[pre.PredicateIndex].Contains(state.GroundAtom(ground))
		if present == pre.Negated {
			return false
		}
	}
	return true
}
