// Package validate replays a plan through the successor generator and
// checks final goal satisfaction. A validation failure after a successful
// search is an internal invariant violation, not a normal search outcome —
// callers should treat it accordingly.
package validate

import (
	"fmt"

	"github.com/wbrown/janus-lift/internal/state"
	"github.com/wbrown/janus-lift/internal/successor"
	"github.com/wbrown/janus-lift/internal/task"
)

// Failure names the step and intermediate state a replay failed at, so the
// caller can log both before exiting non-zero. Task is kept
// alongside Action so callers (and Error) can render the action by name
// without threading a *task.Task through separately.
type Failure struct {
	StepIndex int
	Task      *task.Task
	Action    task.Action
	State     *state.DBState
	Reason    string
}

func (f *Failure) Error() string {
	if f.Task == nil || f.Action.IsNone() {
		return fmt.Sprintf("plan validation failed at step %d: %s", f.StepIndex, f.Reason)
	}
	return fmt.Sprintf("plan validation failed at step %d (%s): %s", f.StepIndex, f.Action.String(f.Task), f.Reason)
}

// Validate replays plan from t.InitialState through gen, failing fast on
// the first inapplicable action, and finally checks the goal.
func Validate(t *task.Task, gen *successor.Generator, plan task.Plan) (*state.DBState, *Failure) {
	cur := t.InitialState.Clone()

	for i, a := range plan.Steps {
		if !actionApplicable(t, cur, a) {
			return cur, &Failure{StepIndex: i, Task: t, Action: a, State: cur, Reason: "action not applicable in current state"}
		}
		cur = gen.GenerateSuccessor(cur, a)
	}

	if !t.Goal.IsSatisfied(cur) {
		return cur, &Failure{StepIndex: len(plan.Steps), Task: t, Action: task.NoAction, State: cur, Reason: "final state does not satisfy goal"}
	}
	return cur, nil
}

// actionApplicable checks a's preconditions directly against cur, rather
// than re-deriving it through the generator's join machinery, since a is
// already a concrete ground Action.
func actionApplicable(t *task.Task, cur *state.DBState, a task.Action) bool {
	schema := &t.ActionSchemas[a.Index]
	for p, required := range schema.PositiveNullaryPreconditions {
		if required && !cur.Nullary[p] {
			return false
		}
	}
	for p, forbidden := range schema.NegativeNullaryPreconditions {
		if forbidden && cur.Nullary[p] {
			return false
		}
	}
	for _, pre := range schema.Preconditions {
		ground := pre.Ground(a.Instantiation)
		present := cur.Relations[pre.PredicateIndex].Contains(state.GroundAtom(ground))
		if present == pre.Negated {
			return false
		}
	}
	return true
}
